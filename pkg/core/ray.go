package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return LinearComb(r.Origin, r.Direction, 1.0, t)
}

// MissRay is the ray returned by a bounce that hit nothing. Both fields equal MissMarker.
var MissRay = Ray{Origin: MissMarker, Direction: MissMarker}

// IsMiss reports whether either half of the ray carries the miss marker
func (r Ray) IsMiss() bool {
	return r.Origin == MissMarker || r.Direction == MissMarker
}
