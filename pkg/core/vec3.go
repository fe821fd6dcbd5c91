package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a fixed-size float32 3-tuple. Colors use the same type with channels in 0-255.
type Vec3 = mgl32.Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Dot returns the dot product of two vectors
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a × b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize divides v by its Euclidean norm.
// The result is undefined (Inf/NaN components) for a zero vector; callers must never pass one.
func Normalize(v Vec3) Vec3 {
	norm := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	return Vec3{v[0] / norm, v[1] / norm, v[2] / norm}
}

// Difference returns the vector pointing from `from` to `to`
func Difference(from, to Vec3) Vec3 {
	return Vec3{to[0] - from[0], to[1] - from[1], to[2] - from[2]}
}

// LinearComb returns c1·a + c2·b
func LinearComb(a, b Vec3, c1, c2 float32) Vec3 {
	return Vec3{
		c1*a[0] + c2*b[0],
		c1*a[1] + c2*b[1],
		c1*a[2] + c2*b[2],
	}
}

// Reflect mirrors d about the unit normal n: d − 2·dot(d,n)·n
func Reflect(d, n Vec3) Vec3 {
	return LinearComb(d, n, 1.0, -2.0*Dot(d, n))
}

// ClampColor rounds x half-to-even and clamps it to [0, 255]. NaN maps to 0.
func ClampColor(x float32) uint8 {
	r := math.RoundToEven(float64(x))
	if !(r > 0) {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// ClampColorVec clamps every channel of an RGB color, keeping the channel order
func ClampColorVec(c Vec3) [3]uint8 {
	return [3]uint8{ClampColor(c[0]), ClampColor(c[1]), ClampColor(c[2])}
}

// IsFinite reports whether every component of v is a finite number
func IsFinite(v Vec3) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
