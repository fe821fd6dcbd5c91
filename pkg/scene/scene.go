package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ParaboloidShellOffset is the axial distance between an authored paraboloid and its twin
const ParaboloidShellOffset = 1e-3

// Sphere is an authored sphere record. Colors are 0-255 per channel.
type Sphere struct {
	Origin core.Vec3 `json:"origin"`
	Radius float32   `json:"radius"`
	Color  core.Vec3 `json:"color"`
}

// Plane is an infinite plane through Origin. Normal need not be unit length.
type Plane struct {
	Origin core.Vec3 `json:"origin"`
	Normal core.Vec3 `json:"normal"`
	Color  core.Vec3 `json:"color"`
}

// Rectangle spans Origin + α·U + β·V for α, β in (0,1).
// Orientation 1 keeps the normal along U×V, 0 flips it.
type Rectangle struct {
	Origin      core.Vec3 `json:"origin"`
	U           core.Vec3 `json:"u"`
	V           core.Vec3 `json:"v"`
	Color       core.Vec3 `json:"color"`
	Orientation float32   `json:"orientation"`
}

// Paraboloid is an infinite elliptic paraboloid opening along Orientation·z. Its vertex
// sits Height above Origin.
type Paraboloid struct {
	Origin       core.Vec3 `json:"origin"`
	A            float32   `json:"a"`
	B            float32   `json:"b"`
	Color        core.Vec3 `json:"color"`
	Orientation  float32   `json:"orientation"`
	Height       float32   `json:"height"`
	NormalOrient float32   `json:"normalOrient"`
}

// Twin returns the inner shell that gives the cup its thickness
func (p Paraboloid) Twin() Paraboloid {
	twin := p
	twin.Origin[2] += p.Orientation * ParaboloidShellOffset
	twin.NormalOrient = -p.NormalOrient
	return twin
}

// Light is a point light
type Light struct {
	Origin core.Vec3 `json:"origin"`
}

// SamplingConfig holds the shading coefficients and pixel sampling for a scene
type SamplingConfig struct {
	Ambient      float32 `json:"ambient"`      // Fraction of the base color always added
	Diffuse      float32 `json:"diffuse"`      // Lambert coefficient
	Specular     float32 `json:"specular"`     // Blinn-Phong coefficient
	Shininess    float32 `json:"shininess"`    // Blinn-Phong exponent
	Reflection   float32 `json:"reflection"`   // Mirror weight per bounce
	MaxDepth     int     `json:"maxDepth"`     // Number of bounces per primary ray
	AntiAliasing bool    `json:"antiAliasing"` // 2x2 stratified supersampling
}

// DefaultSamplingConfig returns the shading coefficients used by the default scene
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Ambient:      0.0,
		Diffuse:      0.6,
		Specular:     0.6,
		Shininess:    30,
		Reflection:   0.3,
		MaxDepth:     2,
		AntiAliasing: true,
	}
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
	Spheres        []Sphere
	Planes         []Plane
	Rectangles     []Rectangle
	Paraboloids    []Paraboloid
	Lights         []Light
}

// newScene applies camera overrides to base and returns an empty scene
func newScene(name string, base geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) *Scene {
	cameraConfig := base
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(base, cameraOverrides[0])
	}
	return &Scene{
		Name:           name,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddSphere appends a sphere record
func (s *Scene) AddSphere(origin core.Vec3, radius float32, color core.Vec3) {
	s.Spheres = append(s.Spheres, Sphere{Origin: origin, Radius: radius, Color: color})
}

// AddPlane appends a plane record
func (s *Scene) AddPlane(origin, normal, color core.Vec3) {
	s.Planes = append(s.Planes, Plane{Origin: origin, Normal: normal, Color: color})
}

// AddRectangle appends a rectangle whose normal follows U×V
func (s *Scene) AddRectangle(origin, u, v, color core.Vec3) {
	s.Rectangles = append(s.Rectangles, Rectangle{Origin: origin, U: u, V: v, Color: color, Orientation: 1})
}

// AddParaboloid appends an outward-facing paraboloid
func (s *Scene) AddParaboloid(origin core.Vec3, a, b float32, color core.Vec3, orientation, height float32) {
	s.Paraboloids = append(s.Paraboloids, Paraboloid{
		Origin: origin, A: a, B: b, Color: color,
		Orientation: orientation, Height: height, NormalOrient: 1,
	})
}

// AddLight appends a point light
func (s *Scene) AddLight(origin core.Vec3) {
	s.Lights = append(s.Lights, Light{Origin: origin})
}

// SetCamera replaces the camera config and rebuilds the camera
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// PrimitiveCount returns the number of packed primitives, paraboloid twins included
func (s *Scene) PrimitiveCount() int {
	return len(s.Spheres) + len(s.Planes) + len(s.Rectangles) + 2*len(s.Paraboloids)
}

// Validate reports every malformed record. The error names the offending primitive.
func (s *Scene) Validate() error {
	var errs []error
	add := func(kind string, i int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s %d: %s", kind, i, fmt.Sprintf(format, args...)))
	}

	cam := s.CameraConfig
	if cam.Width <= 0 || cam.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera: resolution must be positive, got %dx%d", cam.Width, cam.Height))
	}
	if !(cam.HFov > 0 && cam.HFov < 180) {
		errs = append(errs, fmt.Errorf("camera: hfov must be in (0, 180), got %g", cam.HFov))
	}
	if !core.IsFinite(cam.Position) || !core.IsFinite(cam.Euler) {
		errs = append(errs, errors.New("camera: non-finite position or euler angles"))
	}

	for i, sp := range s.Spheres {
		if !finite(sp.Origin, sp.Color) || !finiteScalar(sp.Radius) {
			add("sphere", i, "non-finite value")
			continue
		}
		if sp.Radius <= 0 {
			add("sphere", i, "radius must be positive, got %g", sp.Radius)
		}
		if !validColor(sp.Color) {
			add("sphere", i, "color %v outside [0, 255]", sp.Color)
		}
	}

	for i, p := range s.Planes {
		if !finite(p.Origin, p.Normal, p.Color) {
			add("plane", i, "non-finite value")
			continue
		}
		if p.Normal.Len() == 0 {
			add("plane", i, "normal must be non-zero")
		}
		if !validColor(p.Color) {
			add("plane", i, "color %v outside [0, 255]", p.Color)
		}
	}

	for i, r := range s.Rectangles {
		if !finite(r.Origin, r.U, r.V, r.Color) || !finiteScalar(r.Orientation) {
			add("rectangle", i, "non-finite value")
			continue
		}
		if r.U.Cross(r.V).Len() == 0 {
			add("rectangle", i, "edges u and v are parallel or zero")
		}
		if r.Orientation != 0 && r.Orientation != 1 {
			add("rectangle", i, "orientation must be 0 or 1, got %g", r.Orientation)
		}
		if !validColor(r.Color) {
			add("rectangle", i, "color %v outside [0, 255]", r.Color)
		}
	}

	for i, p := range s.Paraboloids {
		if !finite(p.Origin, p.Color) || !finiteScalar(p.A) || !finiteScalar(p.B) ||
			!finiteScalar(p.Height) || !finiteScalar(p.Orientation) || !finiteScalar(p.NormalOrient) {
			add("paraboloid", i, "non-finite value")
			continue
		}
		if p.A == 0 || p.B == 0 {
			add("paraboloid", i, "a and b must be non-zero, got a=%g b=%g", p.A, p.B)
		}
		if p.Orientation != 1 && p.Orientation != -1 {
			add("paraboloid", i, "orientation must be +1 or -1, got %g", p.Orientation)
		}
		if p.NormalOrient != 1 && p.NormalOrient != -1 {
			add("paraboloid", i, "normalOrient must be +1 or -1, got %g", p.NormalOrient)
		}
		if !validColor(p.Color) {
			add("paraboloid", i, "color %v outside [0, 255]", p.Color)
		}
	}

	for i, l := range s.Lights {
		if !core.IsFinite(l.Origin) {
			add("light", i, "non-finite origin")
		}
	}

	return errors.Join(errs...)
}

// Buffers validates the scene and packs it into column-major buffers.
// Plane normals are normalized and each paraboloid is followed by its twin.
func (s *Scene) Buffers() (*core.SceneBuffers, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", s.Name, err)
	}

	sb := &core.SceneBuffers{
		Spheres:     core.NewBuffer(core.SphereRows, len(s.Spheres)),
		Planes:      core.NewBuffer(core.PlaneRows, len(s.Planes)),
		Rectangles:  core.NewBuffer(core.RectRows, len(s.Rectangles)),
		Paraboloids: core.NewBuffer(core.ParabRows, 2*len(s.Paraboloids)),
		Lights:      core.NewBuffer(core.LightRows, len(s.Lights)),
	}

	for i, sp := range s.Spheres {
		sb.Spheres.SetVec3(core.SphereOrigin, i, sp.Origin)
		sb.Spheres.Set(core.SphereRadius, i, sp.Radius)
		sb.Spheres.SetVec3(core.SphereColor, i, sp.Color)
	}

	for i, p := range s.Planes {
		sb.Planes.SetVec3(core.PlaneOrigin, i, p.Origin)
		sb.Planes.SetVec3(core.PlaneNormal, i, core.Normalize(p.Normal))
		sb.Planes.SetVec3(core.PlaneColor, i, p.Color)
	}

	for i, r := range s.Rectangles {
		sb.Rectangles.SetVec3(core.RectOrigin, i, r.Origin)
		sb.Rectangles.SetVec3(core.RectU, i, r.U)
		sb.Rectangles.SetVec3(core.RectV, i, r.V)
		sb.Rectangles.SetVec3(core.RectColor, i, r.Color)
		sb.Rectangles.Set(core.RectOrientation, i, r.Orientation)
	}

	for i, p := range s.Paraboloids {
		packParaboloid(&sb.Paraboloids, 2*i, p)
		packParaboloid(&sb.Paraboloids, 2*i+1, p.Twin())
	}

	for i, l := range s.Lights {
		sb.Lights.SetVec3(core.LightOrigin, i, l.Origin)
	}

	return sb, nil
}

func packParaboloid(b *core.Buffer, col int, p Paraboloid) {
	b.SetVec3(core.ParabOrigin, col, p.Origin)
	b.Set(core.ParabA, col, p.A)
	b.Set(core.ParabB, col, p.B)
	b.SetVec3(core.ParabColor, col, p.Color)
	b.Set(core.ParabOrientation, col, p.Orientation)
	b.Set(core.ParabHeight, col, p.Height)
	b.Set(core.ParabNormalOrient, col, p.NormalOrient)
}

func finite(vs ...core.Vec3) bool {
	for _, v := range vs {
		if !core.IsFinite(v) {
			return false
		}
	}
	return true
}

func finiteScalar(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func validColor(c core.Vec3) bool {
	for _, ch := range c {
		if ch < 0 || ch > 255 {
			return false
		}
	}
	return true
}
