package scene

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-spheres", "Mirror Spheres"},
		{"dish_bowl", "Dish Bowl"},
		{"my-custom-scene", "My Custom Scene"},
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

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete.json",
			content: dishJSON,
			expected: SceneInfo{
				ID:          "json:complete",
				Name:        "dish",
				Description: "A dish under a lamp",
				Group:       "Tests",
				Type:        "json",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"lights": [{"origin": [0, 0, 5]}]}`,
			expected: SceneInfo{
				ID:    "json:no_metadata",
				Name:  "No Metadata", // From filename
				Group: "Scene Files",
				Type:  "json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_InvalidFile(t *testing.T) {
	if _, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Error("ParseSceneMetadata() on a missing file returned nil error")
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.json", `{"name": "Bravo"}`)
	writeSceneFile(t, dir, "a.json", `{"name": "Alpha"}`)
	writeSceneFile(t, dir, "broken.json", `{`)
	writeSceneFile(t, dir, "notes.txt", `ignored`)

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	// The broken file is skipped and the rest sorted by name
	if len(scenes) != 2 {
		t.Fatalf("ListSceneFiles() returned %d scenes, want 2", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Bravo" {
		t.Errorf("scene order = %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "dish.json", dishJSON)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("ListAllScenes() returned %d groups, want 2", len(response.Groups))
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("first group = %q, want Built-in Scenes", response.Groups[0].Name)
	}

	expectedScenes := []string{"default", "plane", "mirror-spheres", "paraboloid"}
	sceneIDs := make(map[string]bool)
	for _, s := range response.Groups[0].Scenes {
		sceneIDs[s.ID] = true
	}
	for _, id := range expectedScenes {
		if !sceneIDs[id] {
			t.Errorf("Missing expected built-in scene: %s", id)
		}
	}

	fileGroup := response.Groups[1]
	if fileGroup.Name != "Tests" || len(fileGroup.Scenes) != 1 || fileGroup.Scenes[0].ID != "json:dish" {
		t.Errorf("file group = %+v", fileGroup)
	}
}

func TestCreate(t *testing.T) {
	path := writeSceneFile(t, t.TempDir(), "dish.json", dishJSON)

	tests := []struct {
		name     string
		wantName string
	}{
		{"default", "default"},
		{"plane", "plane"},
		{"mirror-spheres", "mirror-spheres"},
		{"paraboloid", "paraboloid"},
		{path, "dish"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			s, err := Create(tt.name)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", tt.name, err)
			}
			if s.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", s.Name, tt.wantName)
			}
		})
	}
}

func TestCreate_Unknown(t *testing.T) {
	_, err := Create("cornell-box")
	if err == nil {
		t.Fatal("Create() accepted an unknown scene")
	}
	if !strings.Contains(err.Error(), "default") {
		t.Errorf("error %q should list the available scenes", err)
	}
}
