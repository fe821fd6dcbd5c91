package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info   SceneInfo
	create func(...geometry.CameraConfig) *Scene
}

var builtins = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Three spheres and a red panel over an aqua floor", Group: builtinGroup, Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "plane", Name: "Plane", Description: "Ground plane seen from above under one light", Group: builtinGroup, Type: "builtin"}, NewPlaneScene},
	{SceneInfo{ID: "mirror-spheres", Name: "Mirror Spheres", Description: "Row of reflective spheres in front of a wall", Group: builtinGroup, Type: "builtin"}, NewMirrorSpheresScene},
	{SceneInfo{ID: "paraboloid", Name: "Paraboloid", Description: "Spheres inside a wide lit bowl", Group: builtinGroup, Type: "builtin"}, NewParaboloidScene},
}

// BuiltinScenes returns the metadata of the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// findScenesDir returns the first scenes directory found next to the working directory
func findScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListSceneFiles scans dir for JSON scenes. An empty dir searches the default locations.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		dir = findScenesDir()
		if dir == "" {
			return []SceneInfo{}, nil
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %v", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       "json:" + base,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     "json",
		FilePath: filePath,
	}

	f, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return info, err
	}
	if cfg.Name != "" {
		info.Name = cfg.Name
	}
	info.Description = cfg.Description
	if cfg.Group != "" {
		info.Group = cfg.Group
	}
	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %v", err)
	}
	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return response, nil
}

// Create builds a scene by built-in ID, "json:<name>" ID from the scenes directory, or
// path to a .json file
func Create(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.create(cameraOverrides...), nil
		}
	}

	if strings.HasPrefix(name, "json:") {
		dir := findScenesDir()
		if dir == "" {
			return nil, fmt.Errorf("unknown scene %q: no scenes directory", name)
		}
		return LoadSceneFile(filepath.Join(dir, strings.TrimPrefix(name, "json:")+".json"), cameraOverrides...)
	}

	if strings.HasSuffix(name, ".json") {
		return LoadSceneFile(name, cameraOverrides...)
	}

	ids := make([]string, len(builtins))
	for i, b := range builtins {
		ids[i] = b.info.ID
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s, or a .json file)", name, strings.Join(ids, ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-spheres" -> "Mirror Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
