package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// CameraCfg is the JSON form of geometry.CameraConfig. Absent fields keep the defaults,
// so an explicit zero position or rotation is honored.
type CameraCfg struct {
	Position *core.Vec3 `json:"position,omitempty"`
	Euler    *core.Vec3 `json:"euler,omitempty"`
	Width    *int       `json:"width,omitempty"`
	Height   *int       `json:"height,omitempty"`
	HFov     *float32   `json:"hfov,omitempty"`
}

// Apply overlays the fields present in the file onto base
func (c CameraCfg) Apply(base geometry.CameraConfig) geometry.CameraConfig {
	if c.Position != nil {
		base.Position = *c.Position
	}
	if c.Euler != nil {
		base.Euler = *c.Euler
	}
	if c.Width != nil {
		base.Width = *c.Width
	}
	if c.Height != nil {
		base.Height = *c.Height
	}
	if c.HFov != nil {
		base.HFov = *c.HFov
	}
	return base
}

// SamplingCfg is the JSON form of SamplingConfig. Absent fields keep the defaults.
type SamplingCfg struct {
	Ambient      *float32 `json:"ambient,omitempty"`
	Diffuse      *float32 `json:"diffuse,omitempty"`
	Specular     *float32 `json:"specular,omitempty"`
	Shininess    *float32 `json:"shininess,omitempty"`
	Reflection   *float32 `json:"reflection,omitempty"`
	MaxDepth     *int     `json:"maxDepth,omitempty"`
	AntiAliasing *bool    `json:"antiAliasing,omitempty"`
}

// Config is the on-disk scene description
type Config struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Group       string                `json:"group,omitempty"`
	Camera      CameraCfg      `json:"camera"`
	Sampling    SamplingCfg    `json:"sampling"`
	Spheres     []Sphere       `json:"spheres,omitempty"`
	Planes      []Plane        `json:"planes,omitempty"`
	Rectangles  []RectangleCfg `json:"rectangles,omitempty"`
	Paraboloids []Paraboloid   `json:"paraboloids,omitempty"`
	Lights      []Light        `json:"lights,omitempty"`
}

// RectangleCfg is the JSON form of Rectangle. A missing orientation keeps the normal
// along U×V, matching AddRectangle.
type RectangleCfg struct {
	Origin      core.Vec3 `json:"origin"`
	U           core.Vec3 `json:"u"`
	V           core.Vec3 `json:"v"`
	Color       core.Vec3 `json:"color"`
	Orientation *float32  `json:"orientation,omitempty"`
}

// Rectangle returns the scene record
func (c RectangleCfg) Rectangle() Rectangle {
	r := Rectangle{Origin: c.Origin, U: c.U, V: c.V, Color: c.Color, Orientation: 1}
	if c.Orientation != nil {
		r.Orientation = *c.Orientation
	}
	return r
}

// Apply overlays the fields present in the file onto base
func (c SamplingCfg) Apply(base SamplingConfig) SamplingConfig {
	if c.Ambient != nil {
		base.Ambient = *c.Ambient
	}
	if c.Diffuse != nil {
		base.Diffuse = *c.Diffuse
	}
	if c.Specular != nil {
		base.Specular = *c.Specular
	}
	if c.Shininess != nil {
		base.Shininess = *c.Shininess
	}
	if c.Reflection != nil {
		base.Reflection = *c.Reflection
	}
	if c.MaxDepth != nil {
		base.MaxDepth = *c.MaxDepth
	}
	if c.AntiAliasing != nil {
		base.AntiAliasing = *c.AntiAliasing
	}
	return base
}

// Build validates the config and constructs the scene. Missing camera fields fall back to
// the default camera, rectangles without orientations keep U×V and paraboloids without
// orientations open upward with outward normals.
func (c Config) Build(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := c.Camera.Apply(geometry.DefaultCameraConfig())
	s := newScene(c.Name, cameraConfig, cameraOverrides)
	s.SamplingConfig = c.Sampling.Apply(s.SamplingConfig)
	if s.SamplingConfig.MaxDepth < 0 {
		return nil, fmt.Errorf("sampling: maxDepth must be >= 0, got %d", s.SamplingConfig.MaxDepth)
	}

	s.Spheres = append(s.Spheres, c.Spheres...)
	s.Planes = append(s.Planes, c.Planes...)
	for _, r := range c.Rectangles {
		s.Rectangles = append(s.Rectangles, r.Rectangle())
	}
	s.Lights = append(s.Lights, c.Lights...)
	for _, p := range c.Paraboloids {
		if p.Orientation == 0 {
			p.Orientation = 1
		}
		if p.NormalOrient == 0 {
			p.NormalOrient = 1
		}
		s.Paraboloids = append(s.Paraboloids, p)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseConfig decodes a scene description, rejecting unknown keys
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode scene: %w", err)
	}
	return cfg, nil
}

// LoadSceneFile reads and builds a JSON scene. The file name is used when the file
// does not name the scene.
func LoadSceneFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s, err := cfg.Build(cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
