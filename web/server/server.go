package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-ambient-occlusion/pkg/config"
	"github.com/df07/go-ambient-occlusion/pkg/output"
	"github.com/df07/go-ambient-occlusion/pkg/renderer"
	"github.com/df07/go-ambient-occlusion/pkg/scene"
)

// Request limits
const (
	minDimension = 2
	maxDimension = 4096
	maxSamples   = 4096
)

// Uploader stores encoded renders and returns their public URL
type Uploader interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// Server handles web requests for the ambient occlusion renderer
type Server struct {
	config   *config.Config
	uploader Uploader
	consoles *ConsoleHistory
	echo     *echo.Echo
}

// NewServer creates a new web server. A nil uploader disables upload requests.
func NewServer(cfg *config.Config, uploader Uploader) *Server {
	s := &Server{
		config:   cfg,
		uploader: uploader,
		consoles: NewConsoleHistory(maxConsoleHistory),
		echo:     echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.POST("/api/render", s.handleRender)
	s.echo.GET("/api/console/:id", s.handleConsole)

	return s
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the configured address until the server fails
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.ServerAddress)
	if err := s.echo.Start(s.config.ServerAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// RenderRequest represents a render request from the client. Zero values
// fall back to the server configuration.
type RenderRequest struct {
	Scene       string             `json:"scene"`                 // Scene ID as listed by /api/scenes
	Description *scene.Description `json:"description,omitempty"` // Inline scene, wins over Scene
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Samples     int                `json:"samples"` // 0 uses the scene's recommendation
	Mode        string             `json:"mode"`
	Seed        *int64             `json:"seed,omitempty"`
	Format      string             `json:"format"`    // png, jpg or bmp
	Thumbnail   uint               `json:"thumbnail"` // Maximum side length, 0 for full size
	Upload      bool               `json:"upload"`    // Store in S3 and return URLs instead of bytes
}

// Stats represents render statistics
type Stats struct {
	TotalPixels   int     `json:"totalPixels"`
	PrimaryHits   int     `json:"primaryHits"`
	OcclusionRays int     `json:"occlusionRays"`
	Coverage      float64 `json:"coverage"`
	Tiles         int     `json:"tiles"`
	Workers       int     `json:"workers"`
	ElapsedMs     int64   `json:"elapsedMs"`
}

// RenderResponse is returned for uploaded renders
type RenderResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Stats        Stats  `json:"stats"`
}

// HealthResponse describes the server and its host
type HealthResponse struct {
	Status     string `json:"status"`
	Workers    int    `json:"workers"`
	CPU        string `json:"cpu,omitempty"`
	TotalRAMGB uint64 `json:"totalRamGb,omitempty"`
	Uploads    bool   `json:"uploads"`
}

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// handleHealth provides a health check with host information
func (s *Server) handleHealth(c echo.Context) error {
	resp := HealthResponse{
		Status:  "ok",
		Workers: runtime.NumCPU(),
		Uploads: s.uploader != nil,
	}
	if s.config.Workers > 0 {
		resp.Workers = s.config.Workers
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		resp.CPU = cpuInfo[0].ModelName
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		resp.TotalRAMGB = memInfo.Total >> 30
	}

	return c.JSON(http.StatusOK, resp)
}

// handleScenes lists the built-in scenes and the scene directory
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListAllScenes(s.config.SceneDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleConsole returns the log output of a finished render
func (s *Server) handleConsole(c echo.Context) error {
	id := c.Param("id")
	msgs, ok := s.consoles.Get(id)
	if !ok {
		return errorJSON(c, http.StatusNotFound, fmt.Errorf("no console output for render %s", id))
	}
	if msgs == nil {
		msgs = []ConsoleMessage{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// handleRender renders a scene and returns either the encoded image or,
// for upload requests, the URLs it was stored under
func (s *Server) handleRender(c echo.Context) error {
	req := new(RenderRequest)
	if err := c.Bind(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
	}

	rc, err := s.renderConfig(req)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	format, err := output.ParseFormat(req.Format)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	if req.Upload && s.uploader == nil {
		return errorJSON(c, http.StatusServiceUnavailable, output.ErrUploadNotConfigured)
	}

	desc := req.Description
	if desc == nil {
		name := req.Scene
		if name == "" {
			name = scene.DefaultPreset
		}
		if desc, err = scene.Resolve(s.config.SceneDir, name); err != nil {
			if errors.Is(err, scene.ErrUnknownScene) {
				return errorJSON(c, http.StatusNotFound, err)
			}
			return errorJSON(c, http.StatusBadRequest, err)
		}
	}

	renderID := uuid.New().String()
	c.Response().Header().Set("X-Render-Id", renderID)

	consoleChan := make(chan ConsoleMessage, 32)
	logger := NewWebLogger(renderID, consoleChan)
	logger.Printf("Rendering %s (%d spheres)\n", desc.Name, len(desc.Spheres))

	fb, stats, renderErr := renderer.RenderDescription(c.Request().Context(), desc, rc, logger)
	if renderErr != nil {
		logger.Printf("Render failed: %v\n", renderErr)
	}
	close(consoleChan)
	s.consoles.Collect(renderID, consoleChan)

	if renderErr != nil {
		return errorJSON(c, renderStatus(renderErr), renderErr)
	}

	img := output.Upright(fb)
	if req.Thumbnail > 0 && !req.Upload {
		img = output.Thumbnail(img, req.Thumbnail)
	}

	data, err := encode(img, format)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	respStats := Stats{
		TotalPixels:   stats.TotalPixels,
		PrimaryHits:   stats.PrimaryHits,
		OcclusionRays: stats.OcclusionRays,
		Coverage:      stats.Coverage(),
		Tiles:         stats.Tiles,
		Workers:       stats.Workers,
		ElapsedMs:     stats.Duration.Milliseconds(),
	}

	if !req.Upload {
		c.Response().Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(respStats.ElapsedMs, 10))
		return c.Blob(http.StatusOK, format.ContentType(), data)
	}

	ctx := c.Request().Context()
	resp := RenderResponse{ID: renderID, Stats: respStats}

	key := fmt.Sprintf("renders/%s%s", renderID, format.Extension())
	if resp.URL, err = s.uploader.Upload(ctx, data, key, format.ContentType()); err != nil {
		return errorJSON(c, http.StatusBadGateway, err)
	}

	if req.Thumbnail > 0 {
		thumb, err := encode(output.Thumbnail(img, req.Thumbnail), format)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		key := fmt.Sprintf("renders/%s_thumb%s", renderID, format.Extension())
		if resp.ThumbnailURL, err = s.uploader.Upload(ctx, thumb, key, format.ContentType()); err != nil {
			return errorJSON(c, http.StatusBadGateway, err)
		}
	}

	log.Printf("Render %s uploaded to %s in %v", renderID, resp.URL, time.Duration(respStats.ElapsedMs)*time.Millisecond)
	return c.JSON(http.StatusOK, resp)
}

// renderConfig merges the request over the server configuration
func (s *Server) renderConfig(req *RenderRequest) (renderer.Config, error) {
	width, height := s.config.Width, s.config.Height
	if req.Width != 0 {
		width = req.Width
	}
	if req.Height != 0 {
		height = req.Height
	}
	if width < minDimension || width > maxDimension || height < minDimension || height > maxDimension {
		return renderer.Config{}, fmt.Errorf("%w: width and height must be between %d and %d, got %dx%d",
			renderer.ErrInvalidDimensions, minDimension, maxDimension, width, height)
	}

	samples := s.config.Samples
	if req.Samples != 0 {
		samples = req.Samples
	}
	if samples < 0 || samples > maxSamples {
		return renderer.Config{}, fmt.Errorf("%w: samples must be between 1 and %d, got %d",
			renderer.ErrInvalidSamples, maxSamples, samples)
	}

	modeName := s.config.Mode
	if req.Mode != "" {
		modeName = req.Mode
	}
	mode, err := renderer.ParseMode(modeName)
	if err != nil {
		return renderer.Config{}, err
	}

	seed := s.config.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	return renderer.Config{
		Width:      width,
		Height:     height,
		AOSamples:  samples,
		Mode:       mode,
		TileSize:   s.config.TileSize,
		NumWorkers: s.config.Workers,
		Seed:       seed,
	}, nil
}

// renderStatus maps render errors to HTTP status codes
func renderStatus(err error) int {
	switch {
	case errors.Is(err, scene.ErrDegenerateCamera),
		errors.Is(err, scene.ErrInvalidSphere),
		errors.Is(err, renderer.ErrInvalidDimensions),
		errors.Is(err, renderer.ErrInvalidSamples),
		errors.Is(err, renderer.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func encode(img image.Image, format output.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
