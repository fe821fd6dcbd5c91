package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	minResolution = 16
	maxResolution = 2000
	maxDepthLimit = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are discovered in scenesDir; an empty
// string searches the usual locations.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir, mux: http.NewServeMux()}

	s.mux.Handle("/", http.FileServer(http.Dir("static/")))
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// RenderRequest represents a render or inspect request from the client. Negative shading
// values and a zero resolution keep the scene's own settings.
type RenderRequest struct {
	Scene        string  `json:"scene"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Ambient      float64 `json:"ambient"`
	Diffuse      float64 `json:"diffuse"`
	Specular     float64 `json:"specular"`
	Reflection   float64 `json:"reflection"`
	MaxDepth     int     `json:"maxDepth"`
	AntiAliasing *bool   `json:"antiAliasing,omitempty"`
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cam := sceneObj.CameraConfig
	sc := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": req.Scene,
		"name":  sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":        cam.Width,
			"height":       cam.Height,
			"ambient":      sc.Ambient,
			"diffuse":      sc.Diffuse,
			"specular":     sc.Specular,
			"shininess":    sc.Shininess,
			"reflection":   sc.Reflection,
			"maxDepth":     sc.MaxDepth,
			"antiAliasing": sc.AntiAliasing,
		},
		"primitiveCount": sceneObj.PrimitiveCount(),
		"lightCount":     len(sceneObj.Lights),
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minResolution, "max": maxResolution},
			"height":     map[string]int{"min": minResolution, "max": maxResolution},
			"maxDepth":   map[string]int{"min": 0, "max": maxDepthLimit},
			"ambient":    map[string]float64{"min": 0, "max": 1},
			"diffuse":    map[string]float64{"min": 0, "max": 1},
			"specular":   map[string]float64{"min": 0, "max": 1},
			"reflection": map[string]float64{"min": 0, "max": 1},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene name and resolution shared by all scene endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	q := r.URL.Query()
	req.Scene = q.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseResolution(q, "width"); err != nil {
		return err
	}
	if req.Height, err = parseResolution(q, "height"); err != nil {
		return err
	}
	return nil
}

// parseShadingParams parses the optional shading overrides of a render request
func (s *Server) parseShadingParams(r *http.Request, req *RenderRequest) error {
	q := r.URL.Query()
	var err error
	if req.Ambient, err = parseFloatParam(q, "ambient", -1, 0, 1); err != nil {
		return err
	}
	if req.Diffuse, err = parseFloatParam(q, "diffuse", -1, 0, 1); err != nil {
		return err
	}
	if req.Specular, err = parseFloatParam(q, "specular", -1, 0, 1); err != nil {
		return err
	}
	if req.Reflection, err = parseFloatParam(q, "reflection", -1, 0, 1); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(q, "maxDepth", -1, 0, maxDepthLimit); err != nil {
		return err
	}
	if value := q.Get("antiAliasing"); value != "" {
		aa, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid antiAliasing: %s", value)
		}
		req.AntiAliasing = &aa
	}
	return nil
}

// parseResolution parses an optional image dimension; zero keeps the scene's own
func parseResolution(values url.Values, key string) (int, error) {
	if values.Get(key) == "" {
		return 0, nil
	}
	return parseIntParam(values, key, 0, minResolution, maxResolution)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene at the requested resolution. Only built-in IDs
// and "json:<name>" IDs listed in the scenes directory are served. File scenes are
// clamped to the server limits.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{Width: req.Width, Height: req.Height}

	for _, info := range scene.BuiltinScenes() {
		if info.ID == req.Scene {
			return scene.Create(req.Scene, overrides)
		}
	}

	name, ok := strings.CutPrefix(req.Scene, "json:")
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", req.Scene)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid scene name %q", req.Scene)
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID != req.Scene {
			continue
		}
		sceneObj, err := scene.LoadSceneFile(info.FilePath, overrides)
		if err != nil {
			return nil, err
		}
		clampToLimits(sceneObj)
		return sceneObj, nil
	}
	return nil, fmt.Errorf("unknown scene %q", req.Scene)
}

// clampToLimits scales the resolution down to maxResolution, keeping the aspect ratio,
// and caps the recursion depth at maxDepthLimit
func clampToLimits(sceneObj *scene.Scene) {
	cam := sceneObj.CameraConfig
	if longest := max(cam.Width, cam.Height); longest > maxResolution {
		cam.Width = max(1, cam.Width*maxResolution/longest)
		cam.Height = max(1, cam.Height*maxResolution/longest)
		sceneObj.SetCamera(cam)
	}
	if sceneObj.SamplingConfig.MaxDepth > maxDepthLimit {
		sceneObj.SamplingConfig.MaxDepth = maxDepthLimit
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
