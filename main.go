package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-ambient-occlusion/pkg/config"
	"github.com/df07/go-ambient-occlusion/pkg/output"
	"github.com/df07/go-ambient-occlusion/pkg/renderer"
	"github.com/df07/go-ambient-occlusion/pkg/scene"
)

// options holds the command line flags
type options struct {
	scene    string
	width    int
	height   int
	samples  int
	mode     string
	workers  int
	tileSize int
	seed     int64
	out      string
	format   string
	thumb    uint
	upload   bool
	envFile  string
	help     bool
	explicit map[string]bool // flags given on the command line
}

func parseFlags(args []string) (*options, error) {
	defaults := config.Default()
	opts := &options{}

	fs := flag.NewFlagSet("ambient-occlusion", flag.ContinueOnError)
	fs.StringVar(&opts.scene, "scene", scene.DefaultPreset, "Built-in scene, file:<name> from the scene directory, or path to a JSON scene description")
	fs.IntVar(&opts.width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.samples, "samples", defaults.Samples, "Ambient occlusion samples per pixel (0 = scene default)")
	fs.StringVar(&opts.mode, "mode", defaults.Mode, "Shading mode: 'ao-normal', 'ao' or 'normal'")
	fs.IntVar(&opts.workers, "workers", defaults.Workers, "Number of parallel workers (0 = auto)")
	fs.IntVar(&opts.tileSize, "tile", defaults.TileSize, "Tile size in pixels")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for hemisphere sampling")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.format, "format", "png", "Output format when -out is not given: 'png', 'jpg' or 'bmp'")
	fs.UintVar(&opts.thumb, "thumb", 0, "Also write a thumbnail with this maximum side length")
	fs.BoolVar(&opts.upload, "upload", false, "Upload the render to the configured S3 bucket")
	fs.StringVar(&opts.envFile, "env", ".env", "Environment file to load")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.explicit[f.Name] = true
	})

	if opts.help {
		printHelp(fs)
	}
	return opts, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Ambient Occlusion Raytracer")
	fmt.Println("Usage: ambient-occlusion [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes(config.Default().SceneDir)
	if err != nil {
		fmt.Printf("  (scene listing failed: %v)\n", err)
	}
	for _, group := range scenes.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("    %-16s %s (%d spheres)\n", info.ID, info.Description, info.Spheres)
		}
	}
	fmt.Println()
	fmt.Println("Settings can also come from AO_* and S3_* environment variables; flags win.")
}

// applyFlags overrides environment settings with flags given explicitly
func applyFlags(cfg *config.Config, opts *options) {
	if opts.explicit["width"] {
		cfg.Width = opts.width
	}
	if opts.explicit["height"] {
		cfg.Height = opts.height
	}
	if opts.explicit["samples"] {
		cfg.Samples = opts.samples
	}
	if opts.explicit["mode"] {
		cfg.Mode = opts.mode
	}
	if opts.explicit["workers"] {
		cfg.Workers = opts.workers
	}
	if opts.explicit["tile"] {
		cfg.TileSize = opts.tileSize
	}
	if opts.explicit["seed"] {
		cfg.Seed = opts.seed
	}
}

// renderConfig converts settings into a renderer configuration
func renderConfig(cfg *config.Config) (renderer.Config, error) {
	mode, err := renderer.ParseMode(cfg.Mode)
	if err != nil {
		return renderer.Config{}, err
	}

	return renderer.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		AOSamples:  cfg.Samples,
		Mode:       mode,
		TileSize:   cfg.TileSize,
		NumWorkers: cfg.Workers,
		Seed:       cfg.Seed,
	}, nil
}

// createScene resolves a JSON file path, or a scene ID looked up in sceneDir
func createScene(sceneDir, sceneType string) (*scene.Description, error) {
	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		return scene.LoadDescription(sceneType)
	}
	return scene.Resolve(sceneDir, sceneType)
}

// createOutputDir returns output/<scene name>, where the name of a JSON
// scene is its file name without extension
func createOutputDir(root, sceneType string) string {
	name := filepath.Base(strings.TrimPrefix(sceneType, "file:"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join(root, name)
}

// printSystemInfo logs the host the render runs on
func printSystemInfo() {
	cpuInfo, err := cpu.Info()
	if err != nil || len(cpuInfo) == 0 {
		log.Printf("CPU information unavailable: %v", err)
	} else {
		log.Printf("CPU: %s (%d logical cores, %.2f GHz)", cpuInfo[0].ModelName, len(cpuInfo), cpuInfo[0].Mhz/1000)
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("Memory information unavailable: %v", err)
		return
	}
	log.Printf("RAM: %d GB total, %d GB available", memInfo.Total>>30, memInfo.Available>>30)
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)

	rc, err := renderConfig(cfg)
	if err != nil {
		return err
	}

	desc, err := createScene(cfg.SceneDir, opts.scene)
	if err != nil {
		return fmt.Errorf("error creating scene: %w", err)
	}
	log.Printf("Using scene %s with %d spheres", desc.Name, len(desc.Spheres))

	fb, stats, err := renderer.RenderDescription(ctx, desc, rc, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}
	log.Printf("Coverage %.1f%% across %d tiles on %d workers", 100*stats.Coverage(), stats.Tiles, stats.Workers)

	filename := opts.out
	if filename == "" {
		format, err := output.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		outputDir := createOutputDir(cfg.OutputDir, opts.scene)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s%s", timestamp, format.Extension()))
	}

	img := output.Upright(fb)
	if err := output.Save(filename, img); err != nil {
		return err
	}
	log.Printf("Render saved as %s", filename)

	if opts.thumb > 0 {
		ext := filepath.Ext(filename)
		thumbName := strings.TrimSuffix(filename, ext) + "_thumb" + ext
		if err := output.Save(thumbName, output.Thumbnail(img, opts.thumb)); err != nil {
			return err
		}
		log.Printf("Thumbnail saved as %s", thumbName)
	}

	if opts.upload {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return err
		}
		format, err := output.FormatFromFilename(filename)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := output.Encode(&buf, img, format); err != nil {
			return err
		}
		key := fmt.Sprintf("renders/%s%s", uuid.New().String(), format.Extension())
		url, err := uploader.Upload(ctx, buf.Bytes(), key, format.ContentType())
		if err != nil {
			return err
		}
		log.Printf("Uploaded render to %s", url)
	}

	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.help {
		return
	}

	log.Printf("Starting Ambient Occlusion Raytracer...")
	printSystemInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}
