package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Sample returns the unclamped color gathered along a primary ray
	Sample(ray core.Ray) core.Vec3

	// SamplePixel averages the samples of one pixel and clamps the result to 8-bit channels
	SamplePixel(origin core.Vec3, dirs []core.Vec3) [3]uint8
}
