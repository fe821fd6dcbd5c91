package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewPlaneScene creates a single ground plane seen from straight above with one light
// overhead. Every pixel hits the plane, so the image shows only the diffuse falloff.
func NewPlaneScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene("plane", geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		Euler:    core.NewVec3(0, -90, 0),
		Width:    400,
		Height:   400,
		HFov:     60,
	}, cameraOverrides)

	s.SamplingConfig.Ambient = 0.1
	s.SamplingConfig.Diffuse = 0.55
	s.SamplingConfig.Specular = 0
	s.SamplingConfig.Reflection = 0
	s.SamplingConfig.AntiAliasing = false

	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), Gray)
	s.AddLight(core.NewVec3(0, 0, 10))
	return s
}

// NewMirrorSpheresScene creates a row of spheres over a white floor with strong
// reflections and a deep bounce budget
func NewMirrorSpheresScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene("mirror-spheres", geometry.CameraConfig{
		Position: core.NewVec3(-8, 0, 3),
		Euler:    core.NewVec3(0, -15, 0),
		Width:    800,
		Height:   600,
		HFov:     60,
	}, cameraOverrides)

	s.SamplingConfig.Ambient = 0.05
	s.SamplingConfig.Reflection = 0.6
	s.SamplingConfig.MaxDepth = 5

	colors := []core.Vec3{Red, Yellow, Green, Aqua, Blue}
	for i, c := range colors {
		y := float32(i-len(colors)/2) * 2.2
		s.AddSphere(core.NewVec3(0, y, 1), 1, c)
	}

	// Back wall facing the camera
	s.AddRectangle(core.NewVec3(4, -6, 0), core.NewVec3(0, 12, 0), core.NewVec3(0, 0, 6), White)

	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), White)
	s.AddLight(core.NewVec3(-4, 3, 8))
	s.AddLight(core.NewVec3(-4, -3, 8))
	return s
}

// NewParaboloidScene places the camera, lights and a few spheres inside a wide bowl that
// replaces the ground
func NewParaboloidScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene("paraboloid", geometry.CameraConfig{
		Position: core.NewVec3(-5, 0, 4),
		Euler:    core.NewVec3(0, -25, 0),
		Width:    800,
		Height:   600,
		HFov:     60,
	}, cameraOverrides)

	s.SamplingConfig.Ambient = 0.1
	s.SamplingConfig.Reflection = 0.4
	s.SamplingConfig.MaxDepth = 3

	s.AddParaboloid(core.NewVec3(0, 0, 0), 3, 3, Yellow, 1, 0)

	s.AddSphere(core.NewVec3(1, -1.5, 1.2), 0.7, Blue)
	s.AddSphere(core.NewVec3(1.5, 1.2, 1.4), 0.8, Red)
	s.AddSphere(core.NewVec3(-0.5, 0, 0.5), 0.4, Green)

	s.AddLight(core.NewVec3(0, 3, 5))
	s.AddLight(core.NewVec3(-2, -2, 6))
	return s
}
