// Package config loads renderer settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the web server. Command line
// flags override these values.
type Config struct {
	Width         int    // AO_WIDTH
	Height        int    // AO_HEIGHT
	Samples       int    // AO_SAMPLES, 0 uses the scene's recommendation
	Mode          string // AO_MODE
	Workers       int    // AO_WORKERS, 0 uses the CPU count
	TileSize      int    // AO_TILE_SIZE
	Seed          int64  // AO_SEED
	OutputDir     string // AO_OUTPUT_DIR
	SceneDir      string // AO_SCENE_DIR, searched for JSON scene files
	ServerAddress string // AO_SERVER_ADDRESS
	S3            S3Config
}

// S3Config holds object storage credentials for uploading renders
type S3Config struct {
	AccessKey string // S3_ACCESS_KEY
	SecretKey string // S3_SECRET_KEY
	Endpoint  string // S3_ENDPOINT
	Region    string // S3_REGION
	Bucket    string // S3_BUCKET
	CDNURL    string // CDN_URL
}

// Enabled reports whether uploads have somewhere to go
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Width:         900,
		Height:        700,
		Samples:       0,
		Mode:          "ao-normal",
		Workers:       0,
		TileSize:      64,
		Seed:          42,
		OutputDir:     "output",
		SceneDir:      "scenes",
		ServerAddress: ":8080",
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// Load reads envFile into the process environment (a missing file is not
// an error, and variables already set win) and then builds a Config from
// the environment on top of Default.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	var err error

	if cfg.Width, err = getEnvInt("AO_WIDTH", cfg.Width); err != nil {
		return nil, err
	}
	if cfg.Height, err = getEnvInt("AO_HEIGHT", cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Samples, err = getEnvInt("AO_SAMPLES", cfg.Samples); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("AO_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.TileSize, err = getEnvInt("AO_TILE_SIZE", cfg.TileSize); err != nil {
		return nil, err
	}
	seed, err := getEnvInt("AO_SEED", int(cfg.Seed))
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)

	cfg.Mode = getEnv("AO_MODE", cfg.Mode)
	cfg.OutputDir = getEnv("AO_OUTPUT_DIR", cfg.OutputDir)
	cfg.SceneDir = getEnv("AO_SCENE_DIR", cfg.SceneDir)
	cfg.ServerAddress = getEnv("AO_SERVER_ADDRESS", cfg.ServerAddress)

	cfg.S3 = S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", cfg.S3.Region),
		Bucket:    os.Getenv("S3_BUCKET"),
		CDNURL:    os.Getenv("CDN_URL"),
	}

	return cfg, nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
