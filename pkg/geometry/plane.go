package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PlaneEpsilon is the smallest |dot(dir, normal)| for which a ray is not treated as parallel
const PlaneEpsilon = 1e-4

// IntersectPlane returns the distance to the infinite plane through point with the given
// unit normal, or core.NoHit for parallel rays and planes behind the origin.
func IntersectPlane(ray core.Ray, point, normal core.Vec3) float32 {
	denominator := core.Dot(ray.Direction, normal)

	// Ray is (nearly) parallel to the plane
	if math.Abs(float64(denominator)) <= PlaneEpsilon {
		return core.NoHit
	}

	t := core.Dot(core.Difference(ray.Origin, point), normal) / denominator
	if t > 0 {
		return t
	}
	return core.NoHit
}

// PlaneNormal returns the stored unit normal of plane idx
func PlaneNormal(idx int, planes core.Buffer) core.Vec3 {
	return planes.Vec3(core.PlaneNormal, idx)
}

// PlaneColor returns the base color of plane idx
func PlaneColor(idx int, planes core.Buffer) core.Vec3 {
	return planes.Vec3(core.PlaneColor, idx)
}
