package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Palette used by the built-in scenes, 0-255 per channel
var (
	Red    = core.NewVec3(255, 0, 0)
	Green  = core.NewVec3(0, 255, 0)
	Blue   = core.NewVec3(0, 0, 255)
	Aqua   = core.NewVec3(0, 255, 255)
	Yellow = core.NewVec3(255, 255, 0)
	White  = core.NewVec3(255, 255, 255)
	Gray   = core.NewVec3(128, 128, 128)
)

// NewDefaultScene creates three spheres over an aqua ground plane and a red panel, lit by
// two lights on either side
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene("default", geometry.DefaultCameraConfig(), cameraOverrides)

	s.AddLight(core.NewVec3(0.5, 5.75, 5))
	s.AddLight(core.NewVec3(0.5, -5.75, 5))

	s.AddSphere(core.NewVec3(1, -1, 0.5), 0.5, Blue)
	s.AddSphere(core.NewVec3(1, 1.5, 1), 1, Green)
	s.AddSphere(core.NewVec3(-2, 0, 0.4), 0.4, Red)

	s.AddRectangle(core.NewVec3(-1, 2, 1), core.NewVec3(0, 0, 2), core.NewVec3(0, 4, 0), Red)

	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), Aqua)

	return s
}
