package scene

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSceneFile(t *testing.T, dir, name string, desc *Description) string {
	t.Helper()
	data, err := json.Marshal(desc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"sphere-grid", "Sphere Grid"},
		{"ground_and_spheres", "Ground And Spheres"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	named := NewClusterScene()
	named.Name = "Resting Spheres"
	named.Details = "Three spheres on a ground sphere"
	named.Group = "Examples"
	namedPath := writeSceneFile(t, dir, "resting.json", named)

	unnamed := NewSingleSphereScene()
	unnamed.Name = ""
	unnamedPath := writeSceneFile(t, dir, "lonely_sphere.json", unnamed)

	info, err := ParseSceneMetadata(namedPath)
	if err != nil {
		t.Fatalf("ParseSceneMetadata() error: %v", err)
	}
	expected := SceneInfo{
		ID:          "file:resting",
		DisplayName: "Resting Spheres",
		Description: "Three spheres on a ground sphere",
		Group:       "Examples",
		Type:        TypeFile,
		FilePath:    namedPath,
		Spheres:     4,
	}
	if info != expected {
		t.Errorf("ParseSceneMetadata() = %+v, want %+v", info, expected)
	}

	info, err = ParseSceneMetadata(unnamedPath)
	if err != nil {
		t.Fatalf("ParseSceneMetadata() error: %v", err)
	}
	if info.DisplayName != "Lonely Sphere" || info.Group != fileGroup {
		t.Errorf("Expected fallbacks from the file name, got %+v", info)
	}

	bad := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ParseSceneMetadata(bad); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestListSceneFiles(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected an empty slice for a missing directory, got %v", scenes)
	}

	dir := t.TempDir()
	writeSceneFile(t, dir, "b-scene.json", &Description{Camera: NewSingleSphereScene().Camera})
	writeSceneFile(t, dir, "a-scene.json", &Description{Camera: NewSingleSphereScene().Camera})
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	scenes, err = ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "A Scene" || scenes[1].DisplayName != "B Scene" {
		t.Errorf("Expected scenes sorted by display name, got %q and %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "extra.json", NewSingleSphereScene())

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtins := response.Groups[0]
	if builtins.Name != builtinGroup {
		t.Errorf("Expected %s first, got %s", builtinGroup, builtins.Name)
	}
	expectedScenes := []string{"cluster", "single", "spheregrid"}
	if len(builtins.Scenes) != len(expectedScenes) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(builtins.Scenes), len(expectedScenes))
	}
	for i, id := range expectedScenes {
		if builtins.Scenes[i].ID != id || builtins.Scenes[i].Type != TypeBuiltin {
			t.Errorf("Built-in scene %d = %+v, want ID %s", i, builtins.Scenes[i], id)
		}
	}

	files := response.Groups[1]
	if files.Name != fileGroup || len(files.Scenes) != 1 || files.Scenes[0].ID != "file:extra" {
		t.Errorf("Unexpected file group %+v", files)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "extra.json", NewClusterScene())

	desc, err := Resolve(dir, "single")
	if err != nil || len(desc.Spheres) != 1 {
		t.Errorf("Resolve(single) = %v, %v", desc, err)
	}

	desc, err = Resolve(dir, "file:extra")
	if err != nil || len(desc.Spheres) != 4 {
		t.Errorf("Resolve(file:extra) = %v, %v", desc, err)
	}

	for _, id := range []string{"file:missing", "file:", "teapot", "file:../extra/missing"} {
		if _, err := Resolve(dir, id); !errors.Is(err, ErrUnknownScene) {
			t.Errorf("Resolve(%q): expected ErrUnknownScene, got %v", id, err)
		}
	}
}
