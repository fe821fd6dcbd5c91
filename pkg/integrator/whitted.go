package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Bias is the distance a shading point is pushed along the normal (and a reflected ray
// along its direction) before new rays leave the surface
const Bias = 2e-4

// Params holds the shading coefficients
type Params struct {
	Ambient    float32
	Diffuse    float32
	Specular   float32
	Shininess  float32
	Reflection float32
	MaxDepth   int // Bounces traced after the primary hit
}

// DefaultParams returns the shading coefficients of the default scene
func DefaultParams() Params {
	return Params{
		Ambient:    0.0,
		Diffuse:    0.6,
		Specular:   0.6,
		Shininess:  30,
		Reflection: 0.3,
		MaxDepth:   2,
	}
}

// Carry is the state one bounce hands to the next
type Carry struct {
	Color core.Vec3
	Kind  core.Kind
}

// Bounce is the result of tracing one ray segment
type Bounce struct {
	Color core.Vec3
	Next  core.Ray // core.MissRay when nothing was hit
	Kind  core.Kind
	Carry Carry
}

// TraceOnce shades the nearest hit along ray and prepares the mirror ray.
//
// A miss is black, except directly after a paraboloid bounce where the carried color is
// reused so rays leaving through a shell do not leave black holes.
func TraceOnce(ray core.Ray, sb *core.SceneBuffers, params Params, carry Carry) Bounce {
	hit := geometry.GetIntersection(ray, sb)
	if !hit.IsHit() {
		var color core.Vec3
		if carry.Kind == core.KindParaboloid {
			color = carry.Color
		}
		return Bounce{Color: color, Next: core.MissRay, Kind: core.KindNone, Carry: Carry{Color: color}}
	}

	p := ray.At(hit.T)
	base := geometry.Color(hit, sb)
	n := geometry.Normal(hit, p, sb)

	// Back-face correction
	flippedOnParaboloid := false
	if core.Dot(n, ray.Direction) > 0 {
		n = n.Mul(-1)
		flippedOnParaboloid = hit.Kind == core.KindParaboloid
	}

	color := base.Mul(params.Ambient)
	p = core.LinearComb(p, n, 1, Bias)
	v := core.Normalize(ray.Direction.Mul(-1))

	for i := 0; i < sb.Lights.Len(); i++ {
		light := sb.Lights.Vec3(core.LightOrigin, i)
		if shadowed(p, light, flippedOnParaboloid, sb) {
			continue
		}

		l := core.Normalize(core.Difference(p, light))
		h := core.Normalize(l.Add(v))
		diffuse := params.Diffuse * max(0, core.Dot(l, n))
		specular := params.Specular * float32(math.Pow(float64(max(0, core.Dot(h, n))), float64(params.Shininess)))
		color = core.LinearComb(color, base, 1, diffuse+specular)
	}

	r := core.Reflect(ray.Direction, n)
	next := core.NewRay(core.LinearComb(p, r, 1, Bias), r)

	return Bounce{
		Color: color,
		Next:  next,
		Kind:  hit.Kind,
		Carry: Carry{Color: color, Kind: hit.Kind},
	}
}

// shadowed reports whether something sits between p and the light. A paraboloid occluder
// is ignored when the shading point was hit from inside a shell and the light lies in that
// occluder's opening.
func shadowed(p, light core.Vec3, flippedOnParaboloid bool, sb *core.SceneBuffers) bool {
	toLight := core.Difference(p, light)
	distance := toLight.Len()
	occluder := geometry.GetIntersection(core.NewRay(p, core.Normalize(toLight)), sb)
	if !occluder.IsHit() || occluder.T >= distance {
		return false
	}
	if occluder.Kind == core.KindParaboloid && flippedOnParaboloid &&
		geometry.LightIsInsideShell(occluder.Index, light, sb.Paraboloids) {
		return false
	}
	return true
}

// Sample traces the primary ray and then exactly params.MaxDepth mirror bounces. Bounce i
// is weighted by Reflection^(i+1). Once a bounce misses, the remaining iterations are
// skipped but the loop still runs to the end.
func Sample(ray core.Ray, sb *core.SceneBuffers, params Params) core.Vec3 {
	bounce := TraceOnce(ray, sb, params, Carry{})
	acc := bounce.Color
	next, carry := bounce.Next, bounce.Carry

	for i := 0; i < params.MaxDepth; i++ {
		if next.IsMiss() {
			continue
		}
		bounce = TraceOnce(next, sb, params, carry)
		weight := float32(math.Pow(float64(params.Reflection), float64(i+1)))
		acc = core.LinearComb(acc, bounce.Color, 1, weight)
		next, carry = bounce.Next, bounce.Carry
	}

	return acc
}

// Whitted renders with ambient, Lambert and Blinn-Phong terms, hard shadows and mirror
// reflections over a packed scene
type Whitted struct {
	buffers *core.SceneBuffers
	params  Params
}

// NewWhitted creates an integrator over read-only scene buffers
func NewWhitted(sb *core.SceneBuffers, params Params) *Whitted {
	return &Whitted{buffers: sb, params: params}
}

// Params returns the shading coefficients
func (w *Whitted) Params() Params {
	return w.params
}

// Sample returns the unclamped color along ray
func (w *Whitted) Sample(ray core.Ray) core.Vec3 {
	return Sample(ray, w.buffers, w.params)
}

// SamplePixel averages one sample per direction, all sharing origin, then clamps
func (w *Whitted) SamplePixel(origin core.Vec3, dirs []core.Vec3) [3]uint8 {
	if len(dirs) == 0 {
		return [3]uint8{}
	}
	var sum core.Vec3
	for _, dir := range dirs {
		sum = sum.Add(w.Sample(core.NewRay(origin, dir)))
	}
	return core.ClampColorVec(sum.Mul(1 / float32(len(dirs))))
}
