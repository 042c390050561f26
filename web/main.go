package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-ambient-occlusion/pkg/config"
	"github.com/df07/go-ambient-occlusion/pkg/output"
	"github.com/df07/go-ambient-occlusion/web/server"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Environment file to load")
	addr := flag.String("addr", "", "Address to serve on (overrides AO_SERVER_ADDRESS)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.ServerAddress = *addr
	}

	var uploader server.Uploader
	if cfg.S3.Enabled() {
		s3Uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		uploader = s3Uploader
		log.Printf("Uploading renders to bucket %s", cfg.S3.Bucket)
	}

	webServer := server.NewServer(cfg, uploader)

	log.Printf("Ambient Occlusion Web Server")
	log.Printf("POST scenes to http://localhost%s/api/render", cfg.ServerAddress)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
