package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func validScene() *Scene {
	s := newScene("test", geometry.DefaultCameraConfig(), nil)
	s.AddSphere(core.NewVec3(0, 0, 1), 1, Red)
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), Aqua)
	s.AddRectangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), Green)
	s.AddParaboloid(core.NewVec3(0, 0, 0), 1, 1, Yellow, 1, 1)
	s.AddLight(core.NewVec3(0, 0, 10))
	return s
}

func TestValidate_AcceptsValidScene(t *testing.T) {
	if err := validScene().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name    string
		mutate  func(s *Scene)
		wantMsg string
	}{
		{"zero radius", func(s *Scene) { s.Spheres[0].Radius = 0 }, "sphere 0"},
		{"negative radius", func(s *Scene) { s.Spheres[0].Radius = -1 }, "radius must be positive"},
		{"color above 255", func(s *Scene) { s.Spheres[0].Color = core.NewVec3(256, 0, 0) }, "outside [0, 255]"},
		{"nan sphere origin", func(s *Scene) { s.Spheres[0].Origin = core.NewVec3(nan, 0, 0) }, "non-finite"},
		{"zero plane normal", func(s *Scene) { s.Planes[0].Normal = core.Vec3{} }, "plane 0"},
		{"parallel rectangle edges", func(s *Scene) { s.Rectangles[0].V = core.NewVec3(2, 0, 0) }, "rectangle 0"},
		{"rectangle orientation", func(s *Scene) { s.Rectangles[0].Orientation = 2 }, "orientation must be 0 or 1"},
		{"paraboloid zero a", func(s *Scene) { s.Paraboloids[0].A = 0 }, "paraboloid 0"},
		{"paraboloid orientation", func(s *Scene) { s.Paraboloids[0].Orientation = 0 }, "orientation must be +1 or -1"},
		{"paraboloid normal orient", func(s *Scene) { s.Paraboloids[0].NormalOrient = 0.5 }, "normalOrient"},
		{"infinite light", func(s *Scene) { s.Lights[0].Origin = core.NewVec3(float32(math.Inf(1)), 0, 0) }, "light 0"},
		{"zero width", func(s *Scene) { s.CameraConfig.Width = 0 }, "resolution"},
		{"hfov too wide", func(s *Scene) { s.CameraConfig.HFov = 180 }, "hfov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScene()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() = %q, want message containing %q", err, tt.wantMsg)
			}
			if _, err := s.Buffers(); err == nil {
				t.Error("Buffers() accepted an invalid scene")
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	s := validScene()
	s.Spheres[0].Radius = 0
	s.Planes[0].Normal = core.Vec3{}

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "sphere 0") || !strings.Contains(err.Error(), "plane 0") {
		t.Errorf("Validate() = %q, want both sphere and plane named", err)
	}
}

func TestBuffers_Layout(t *testing.T) {
	s := validScene()
	s.Planes[0].Normal = core.NewVec3(0, 0, 2)

	sb, err := s.Buffers()
	if err != nil {
		t.Fatalf("Buffers() error: %v", err)
	}

	if sb.Spheres.Rows != core.SphereRows || sb.Spheres.Cols != 1 {
		t.Errorf("spheres buffer = %dx%d, want %dx1", sb.Spheres.Rows, sb.Spheres.Cols, core.SphereRows)
	}
	if got := sb.Spheres.At(core.SphereRadius, 0); got != 1 {
		t.Errorf("sphere radius = %v, want 1", got)
	}
	if got := sb.Spheres.Vec3(core.SphereColor, 0); got != Red {
		t.Errorf("sphere color = %v, want %v", got, Red)
	}

	// Plane normals are normalized at packing
	if got := sb.Planes.Vec3(core.PlaneNormal, 0); got != core.NewVec3(0, 0, 1) {
		t.Errorf("plane normal = %v, want (0,0,1)", got)
	}
	if s.Planes[0].Normal != core.NewVec3(0, 0, 2) {
		t.Error("Buffers() modified the authored plane record")
	}

	if got := sb.Rectangles.At(core.RectOrientation, 0); got != 1 {
		t.Errorf("rectangle orientation = %v, want 1", got)
	}
	if sb.Lights.Cols != 1 || sb.Lights.Vec3(core.LightOrigin, 0) != core.NewVec3(0, 0, 10) {
		t.Errorf("light buffer = %+v", sb.Lights)
	}
}

func TestBuffers_ParaboloidTwin(t *testing.T) {
	tests := []struct {
		name        string
		orientation float32
	}{
		{"opening up", 1},
		{"opening down", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene("twin", geometry.DefaultCameraConfig(), nil)
			s.AddParaboloid(core.NewVec3(1, 2, 3), 0.5, 0.7, Yellow, tt.orientation, 2)

			sb, err := s.Buffers()
			if err != nil {
				t.Fatalf("Buffers() error: %v", err)
			}
			if sb.Paraboloids.Cols != 2 {
				t.Fatalf("paraboloid columns = %d, want 2", sb.Paraboloids.Cols)
			}

			outer := sb.Paraboloids.Vec3(core.ParabOrigin, 0)
			inner := sb.Paraboloids.Vec3(core.ParabOrigin, 1)
			if outer != core.NewVec3(1, 2, 3) {
				t.Errorf("authored origin = %v, want (1,2,3)", outer)
			}
			wantZ := 3 + tt.orientation*ParaboloidShellOffset
			if inner[0] != 1 || inner[1] != 2 || math.Abs(float64(inner[2]-wantZ)) > 1e-6 {
				t.Errorf("twin origin = %v, want (1,2,%v)", inner, wantZ)
			}

			if got := sb.Paraboloids.At(core.ParabNormalOrient, 0); got != 1 {
				t.Errorf("authored normal orient = %v, want 1", got)
			}
			if got := sb.Paraboloids.At(core.ParabNormalOrient, 1); got != -1 {
				t.Errorf("twin normal orient = %v, want -1", got)
			}
			for _, row := range []int{core.ParabA, core.ParabB, core.ParabOrientation, core.ParabHeight} {
				if sb.Paraboloids.At(row, 0) != sb.Paraboloids.At(row, 1) {
					t.Errorf("row %d differs between shell and twin", row)
				}
			}
		})
	}
}

func TestPrimitiveCount(t *testing.T) {
	s := validScene()
	// sphere + plane + rectangle + paraboloid and its twin
	if got := s.PrimitiveCount(); got != 5 {
		t.Errorf("PrimitiveCount() = %d, want 5", got)
	}

	sb, err := s.Buffers()
	if err != nil {
		t.Fatalf("Buffers() error: %v", err)
	}
	if sb.PrimitiveCount() != s.PrimitiveCount() {
		t.Errorf("buffer count %d != scene count %d", sb.PrimitiveCount(), s.PrimitiveCount())
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if len(s.Spheres) != 3 || len(s.Planes) != 1 || len(s.Rectangles) != 1 || len(s.Lights) != 2 {
		t.Errorf("default scene has %d spheres, %d planes, %d rectangles, %d lights",
			len(s.Spheres), len(s.Planes), len(s.Rectangles), len(s.Lights))
	}
	if s.CameraConfig != geometry.DefaultCameraConfig() {
		t.Errorf("camera = %+v, want default", s.CameraConfig)
	}
	if s.SamplingConfig != DefaultSamplingConfig() {
		t.Errorf("sampling = %+v, want default", s.SamplingConfig)
	}
}

func TestDefaultScene_CameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{Width: 64, Height: 48})

	if s.CameraConfig.Width != 64 || s.CameraConfig.Height != 48 {
		t.Errorf("resolution = %dx%d, want 64x48", s.CameraConfig.Width, s.CameraConfig.Height)
	}
	if s.CameraConfig.Position != geometry.DefaultCameraConfig().Position {
		t.Error("override replaced the camera position")
	}
	if s.Camera.Config() != s.CameraConfig {
		t.Error("camera was not rebuilt from the merged config")
	}
}

func TestBuiltinScenes_Pack(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", info.ID, err)
			}
			if _, err := s.Buffers(); err != nil {
				t.Errorf("Buffers() error: %v", err)
			}
			if len(s.Lights) == 0 {
				t.Error("built-in scene has no lights")
			}
		})
	}
}
