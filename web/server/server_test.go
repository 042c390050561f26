package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-ambient-occlusion/pkg/config"
	"github.com/df07/go-ambient-occlusion/pkg/scene"
)

// fakeUploader records uploads in memory
type fakeUploader struct {
	keys  []string
	types []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	return "https://cdn.example.com/" + key, nil
}

func testServer(uploader Uploader) *Server {
	cfg := config.Default()
	cfg.SceneDir = "testdata/scenes"
	cfg.Width = 16
	cfg.Height = 12
	cfg.Workers = 2
	cfg.TileSize = 8
	return NewServer(cfg, uploader)
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := testServer(nil)
	rec := doRequest(s, http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.Status != "ok" || resp.Workers != 2 || resp.Uploads {
		t.Errorf("Unexpected health response %+v", resp)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(testServer(nil), http.MethodGet, "/api/scenes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(scenes.Groups) != 2 {
		t.Fatalf("Expected built-in and file groups, got %d", len(scenes.Groups))
	}
	if len(scenes.Groups[0].Scenes) != len(scene.ListPresets()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(scene.ListPresets()), len(scenes.Groups[0].Scenes))
	}
	if files := scenes.Groups[1].Scenes; len(files) != 1 || files[0].ID != "file:pair" {
		t.Errorf("Unexpected scene files %+v", files)
	}
}

func TestHandleRender_Image(t *testing.T) {
	s := testServer(nil)
	rec := doRequest(s, http.MethodPost, "/api/render", `{"scene": "single", "samples": 4}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if size := img.Bounds().Size(); size.X != 16 || size.Y != 12 {
		t.Errorf("Expected 16x12 image, got %v", size)
	}

	renderID := rec.Header().Get("X-Render-Id")
	if renderID == "" {
		t.Fatal("Expected a render ID header")
	}

	console := doRequest(s, http.MethodGet, "/api/console/"+renderID, "")
	if console.Code != http.StatusOK {
		t.Fatalf("Expected console output, got %d", console.Code)
	}
	var msgs []ConsoleMessage
	if err := json.Unmarshal(console.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(msgs) == 0 {
		t.Error("Expected render log messages")
	}
}

func TestHandleRender_SceneFile(t *testing.T) {
	rec := doRequest(testServer(nil), http.MethodPost, "/api/render", `{"scene": "file:pair", "width": 8, "height": 6}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRender_InlineDescription(t *testing.T) {
	desc := scene.NewSingleSphereScene()
	body, err := json.Marshal(map[string]interface{}{
		"description": desc,
		"width":       8,
		"height":      8,
		"format":      "bmp",
		"mode":        "normal",
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	rec := doRequest(testServer(nil), http.MethodPost, "/api/render", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Expected image/bmp, got %s", ct)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown scene", `{"scene": "teapot"}`, http.StatusNotFound},
		{"missing scene file", `{"scene": "file:teapot"}`, http.StatusNotFound},
		{"too narrow", `{"scene": "single", "width": 1}`, http.StatusBadRequest},
		{"too large", `{"scene": "single", "width": 5000}`, http.StatusBadRequest},
		{"negative samples", `{"scene": "single", "samples": -1}`, http.StatusBadRequest},
		{"bad mode", `{"scene": "single", "mode": "phong"}`, http.StatusBadRequest},
		{"bad format", `{"scene": "single", "format": "gif"}`, http.StatusBadRequest},
		{"upload disabled", `{"scene": "single", "upload": true}`, http.StatusServiceUnavailable},
		{"degenerate camera", `{"description": {"camera": {"width": 1, "far": 1}, "spheres": []}, "samples": 1}`, http.StatusBadRequest},
		{"malformed json", `{"scene":`, http.StatusBadRequest},
	}

	s := testServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/render", tt.body)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRender_Upload(t *testing.T) {
	uploader := &fakeUploader{}
	s := testServer(uploader)

	rec := doRequest(s, http.MethodPost, "/api/render", `{"scene": "single", "upload": true, "thumbnail": 4, "format": "jpg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.ID == "" || !strings.HasSuffix(resp.URL, resp.ID+".jpg") {
		t.Errorf("Unexpected upload response %+v", resp)
	}
	if !strings.HasSuffix(resp.ThumbnailURL, resp.ID+"_thumb.jpg") {
		t.Errorf("Unexpected thumbnail URL %s", resp.ThumbnailURL)
	}
	if resp.Stats.TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, resp.Stats.TotalPixels)
	}
	if len(uploader.keys) != 2 || uploader.types[0] != "image/jpeg" {
		t.Errorf("Unexpected uploads %v %v", uploader.keys, uploader.types)
	}
}

func TestHandleRender_UploadFailure(t *testing.T) {
	s := testServer(&fakeUploader{err: errors.New("bucket missing")})

	rec := doRequest(s, http.MethodPost, "/api/render", `{"scene": "single", "upload": true}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", rec.Code)
	}
}

func TestHandleConsole_Unknown(t *testing.T) {
	rec := doRequest(testServer(nil), http.MethodGet, "/api/console/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
