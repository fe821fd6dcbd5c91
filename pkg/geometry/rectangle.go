package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RectangleEpsilon is the parallel-ray threshold for rectangles
const RectangleEpsilon = 1e-3

// IntersectRectangle intersects the ray with the parallelogram spanned by u and v at
// corner. normal must be the unit normal of that parallelogram (see RectangleNormal).
// The boundary is exclusive: only points with both edge coordinates in (0,1) hit.
func IntersectRectangle(ray core.Ray, corner, u, v, normal core.Vec3) float32 {
	denominator := core.Dot(normal, ray.Direction)
	if math.Abs(float64(denominator)) <= RectangleEpsilon {
		return core.NoHit
	}

	// Plane equation constant: n · x = d
	d := core.Dot(normal, corner)
	t := (d - core.Dot(normal, ray.Origin)) / denominator

	hitVector := core.Difference(corner, ray.At(t))

	// w = (u × v) / |u × v|² inverts the (u, v) basis
	n := core.Cross(u, v)
	w := n.Mul(1 / core.Dot(n, n))

	alpha := core.Dot(w, core.Cross(hitVector, v))
	beta := core.Dot(w, core.Cross(u, hitVector))

	if !(alpha > 0 && alpha < 1 && beta > 0 && beta < 1) {
		return core.NoHit
	}

	if t > 0 {
		return t
	}
	return core.NoHit
}

// RectangleNormal returns normalize(u × v), negated when the orientation flag is 0
func RectangleNormal(idx int, rects core.Buffer) core.Vec3 {
	n := core.Normalize(core.Cross(rects.Vec3(core.RectU, idx), rects.Vec3(core.RectV, idx)))
	if rects.At(core.RectOrientation, idx) == 0 {
		return n.Mul(-1)
	}
	return n
}

// RectangleColor returns the base color of rectangle idx
func RectangleColor(idx int, rects core.Buffer) core.Vec3 {
	return rects.Vec3(core.RectColor, idx)
}
