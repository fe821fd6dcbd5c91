package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ParaboloidEpsilon is the magnitude below which the quadratic (and then linear)
// coefficient of the ray-paraboloid equation is treated as zero.
const ParaboloidEpsilon = 1e-6

// Paraboloid surfaces are described relative to their origin o by
//
//	F(p) = s·(dx²/a² + dy²/b²) − (dz − h) = 0,  d = p − o
//
// where s ∈ {+1,−1} is the orientation (opening toward +z or −z) and h the height offset
// of the vertex. F < 0 on the side the paraboloid opens to when s = +1.

// IntersectParaboloid solves F(o + t·dir) = 0 for the smallest positive t, or returns
// core.NoHit. The equation is quadratic in t; when the quadratic coefficient vanishes
// (ray parallel to the axis) the linear root is used.
func IntersectParaboloid(ray core.Ray, origin core.Vec3, a, b, orientation, height float32) float32 {
	ia := float64(1 / (a * a))
	ib := float64(1 / (b * b))
	s := float64(orientation)

	d := core.Difference(origin, ray.Origin)
	dx, dy, dz := float64(d[0]), float64(d[1]), float64(d[2])
	rx, ry, rz := float64(ray.Direction[0]), float64(ray.Direction[1]), float64(ray.Direction[2])

	qa := s * (rx*rx*ia + ry*ry*ib)
	qb := s*2*(dx*rx*ia+dy*ry*ib) - rz
	qc := s*(dx*dx*ia+dy*dy*ib) - (dz - float64(height))

	if math.Abs(qa) < ParaboloidEpsilon {
		if math.Abs(qb) < ParaboloidEpsilon {
			return core.NoHit
		}
		return positiveOrNoHit(-qc / qb)
	}

	discriminant := qb*qb - 4*qa*qc
	if discriminant < 0 {
		return core.NoHit
	}

	// Numerically stable root pair
	sqrtD := math.Sqrt(discriminant)
	q := -0.5 * (qb + math.Copysign(sqrtD, qb))
	if q == 0 {
		return core.NoHit
	}
	t0, t1 := q/qa, qc/q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t0 > 0 {
		return float32(t0)
	}
	return positiveOrNoHit(t1)
}

func positiveOrNoHit(t float64) float32 {
	if t > 0 {
		return float32(t)
	}
	return core.NoHit
}

// ParaboloidValue evaluates the implicit function F of paraboloid idx at p
func ParaboloidValue(idx int, p core.Vec3, parabs core.Buffer) float32 {
	d := core.Difference(parabs.Vec3(core.ParabOrigin, idx), p)
	a := parabs.At(core.ParabA, idx)
	b := parabs.At(core.ParabB, idx)
	s := parabs.At(core.ParabOrientation, idx)
	h := parabs.At(core.ParabHeight, idx)
	return s*(d[0]*d[0]/(a*a)+d[1]*d[1]/(b*b)) - (d[2] - h)
}

// ParaboloidNormal is the normalized gradient of F scaled by the normal-orientation flag.
// With n_orient = +1 it points to the convex (outer) side of the shell.
func ParaboloidNormal(p core.Vec3, idx int, parabs core.Buffer) core.Vec3 {
	d := core.Difference(parabs.Vec3(core.ParabOrigin, idx), p)
	a := parabs.At(core.ParabA, idx)
	b := parabs.At(core.ParabB, idx)
	s := parabs.At(core.ParabOrientation, idx)
	gradient := core.Vec3{
		2 * s * d[0] / (a * a),
		2 * s * d[1] / (b * b),
		-1,
	}
	return core.Normalize(gradient).Mul(parabs.At(core.ParabNormalOrient, idx))
}

// ParaboloidColor returns the base color of paraboloid idx
func ParaboloidColor(idx int, parabs core.Buffer) core.Vec3 {
	return parabs.Vec3(core.ParabColor, idx)
}

// LightIsInsideShell reports whether light lies in the opening of paraboloid idx, i.e. on
// the same side of the surface as the axis point one unit past the vertex. That point has
// F = −s, so the test reduces to s·F(light) < 0.
func LightIsInsideShell(idx int, light core.Vec3, parabs core.Buffer) bool {
	s := parabs.At(core.ParabOrientation, idx)
	return s*ParaboloidValue(idx, light, parabs) < 0
}
