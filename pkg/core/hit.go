package core

// NoHit is the sentinel distance returned by every intersection test that misses.
const NoHit float32 = -999.0

// MaxDistance bounds the nearest-hit search; hits at or beyond it are ignored.
const MaxDistance float32 = 999.0

// MissMarker fills the next-ray fields of a bounce that found no surface.
var MissMarker = Vec3{NoHit, NoHit, NoHit}

// Kind tags the primitive type a hit refers to
type Kind uint8

const (
	KindNone Kind = iota
	KindSphere
	KindPlane
	KindRectangle
	KindParaboloid
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindRectangle:
		return "rectangle"
	case KindParaboloid:
		return "paraboloid"
	default:
		return "none"
	}
}

// Hit is the result of a nearest-intersection query: a kind tag plus the column index of
// the primitive in its buffer and the distance along the ray.
type Hit struct {
	T     float32
	Index int
	Kind  Kind
}

// Miss returns the hit record for a ray that intersects nothing
func Miss() Hit {
	return Hit{T: NoHit, Index: -1, Kind: KindNone}
}

// IsHit reports whether the record refers to a primitive
func (h Hit) IsHit() bool {
	return h.Kind != KindNone
}
