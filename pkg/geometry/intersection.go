package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// GetIntersection returns the nearest primitive hit by the ray within core.MaxDistance.
// Kinds are scanned in the fixed order spheres, planes, rectangles, paraboloids and a later
// candidate only wins when strictly closer, so ties resolve to the earlier scan position.
func GetIntersection(ray core.Ray, sb *core.SceneBuffers) core.Hit {
	hit := core.Miss()
	closest := core.MaxDistance

	for idx := 0; idx < sb.Spheres.Len(); idx++ {
		t := IntersectSphere(ray, sb.Spheres.Vec3(core.SphereOrigin, idx), sb.Spheres.At(core.SphereRadius, idx))
		if closest > t && t > 0 {
			closest = t
			hit = core.Hit{T: t, Index: idx, Kind: core.KindSphere}
		}
	}

	for idx := 0; idx < sb.Planes.Len(); idx++ {
		t := IntersectPlane(ray, sb.Planes.Vec3(core.PlaneOrigin, idx), sb.Planes.Vec3(core.PlaneNormal, idx))
		if closest > t && t > 0 {
			closest = t
			hit = core.Hit{T: t, Index: idx, Kind: core.KindPlane}
		}
	}

	for idx := 0; idx < sb.Rectangles.Len(); idx++ {
		rects := sb.Rectangles
		t := IntersectRectangle(ray,
			rects.Vec3(core.RectOrigin, idx),
			rects.Vec3(core.RectU, idx),
			rects.Vec3(core.RectV, idx),
			RectangleNormal(idx, rects))
		if closest > t && t > 0 {
			closest = t
			hit = core.Hit{T: t, Index: idx, Kind: core.KindRectangle}
		}
	}

	for idx := 0; idx < sb.Paraboloids.Len(); idx++ {
		parabs := sb.Paraboloids
		t := IntersectParaboloid(ray,
			parabs.Vec3(core.ParabOrigin, idx),
			parabs.At(core.ParabA, idx),
			parabs.At(core.ParabB, idx),
			parabs.At(core.ParabOrientation, idx),
			parabs.At(core.ParabHeight, idx))
		if closest > t && t > 0 {
			closest = t
			hit = core.Hit{T: t, Index: idx, Kind: core.KindParaboloid}
		}
	}

	return hit
}

// Normal returns the unoriented surface normal of the hit primitive at p.
// It returns the zero vector for a miss.
func Normal(hit core.Hit, p core.Vec3, sb *core.SceneBuffers) core.Vec3 {
	switch hit.Kind {
	case core.KindSphere:
		return SphereNormal(p, hit.Index, sb.Spheres)
	case core.KindPlane:
		return PlaneNormal(hit.Index, sb.Planes)
	case core.KindRectangle:
		return RectangleNormal(hit.Index, sb.Rectangles)
	case core.KindParaboloid:
		return ParaboloidNormal(p, hit.Index, sb.Paraboloids)
	default:
		return core.Vec3{}
	}
}

// Color returns the base color of the hit primitive, black for a miss
func Color(hit core.Hit, sb *core.SceneBuffers) core.Vec3 {
	switch hit.Kind {
	case core.KindSphere:
		return SphereColor(hit.Index, sb.Spheres)
	case core.KindPlane:
		return PlaneColor(hit.Index, sb.Planes)
	case core.KindRectangle:
		return RectangleColor(hit.Index, sb.Rectangles)
	case core.KindParaboloid:
		return ParaboloidColor(hit.Index, sb.Paraboloids)
	default:
		return core.Vec3{}
	}
}
