package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// IntersectSphere returns the distance along the ray to the nearest sphere surface in front
// of the origin, or core.NoHit. The direction is normalized first, so the distance is
// measured in world units. A tangent ray (discriminant exactly zero) hits at its single root;
// no epsilon widens or narrows that boundary.
func IntersectSphere(ray core.Ray, center core.Vec3, radius float32) float32 {
	dir := core.Normalize(ray.Direction)

	// Vector from sphere center to ray origin
	l := core.Difference(center, ray.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := core.Dot(dir, dir)
	b := 2 * core.Dot(l, dir)
	c := core.Dot(l, l) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return core.NoHit
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))

	// Try the closer intersection point first
	if numerator := -b - sqrtD; numerator > 0 {
		return numerator / (2 * a)
	}

	// Origin is inside the sphere: use the farther intersection point
	if numerator := -b + sqrtD; numerator > 0 {
		return numerator / (2 * a)
	}

	return core.NoHit
}

// SphereNormal points from the surface point toward the sphere center.
// The tracer flips normals that face away from the viewer, so only the axis matters here.
func SphereNormal(p core.Vec3, idx int, spheres core.Buffer) core.Vec3 {
	return core.Normalize(core.Difference(p, spheres.Vec3(core.SphereOrigin, idx)))
}

// SphereColor returns the base color of sphere idx
func SphereColor(idx int, spheres core.Buffer) core.Vec3 {
	return spheres.Vec3(core.SphereColor, idx)
}
