package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// testBuffers builds scene buffers directly in the SoA layout
type testBuffers struct {
	spheres     [][]float32
	planes      [][]float32
	rectangles  [][]float32
	paraboloids [][]float32
}

func pack(rows int, records [][]float32) core.Buffer {
	buf := core.NewBuffer(rows, len(records))
	for col, rec := range records {
		for row := 0; row < rows; row++ {
			buf.Set(row, col, rec[row])
		}
	}
	return buf
}

func (tb testBuffers) build() *core.SceneBuffers {
	sb := core.EmptySceneBuffers()
	sb.Spheres = pack(core.SphereRows, tb.spheres)
	sb.Planes = pack(core.PlaneRows, tb.planes)
	sb.Rectangles = pack(core.RectRows, tb.rectangles)
	sb.Paraboloids = pack(core.ParabRows, tb.paraboloids)
	return &sb
}

func TestGetIntersection_MissReturnsSentinel(t *testing.T) {
	sb := testBuffers{
		spheres:     [][]float32{{0, 0, 0, 1, 255, 0, 0}},
		planes:      [][]float32{{0, 0, -10, 0, 0, 1, 0, 255, 0}},
		rectangles:  [][]float32{{5, 5, 5, 1, 0, 0, 0, 1, 0, 0, 0, 255, 1}},
		paraboloids: [][]float32{{0, 0, -20, 1, 1, 255, 255, 0, -1, 0, 1}},
	}.build()

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
		core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(0, 0, 2), core.Normalize(core.NewVec3(1, 1, 1))),
	}

	for _, ray := range rays {
		hit := GetIntersection(ray, sb)
		if hit != core.Miss() {
			t.Errorf("Expected miss for ray %v, got %+v", ray, hit)
		}
	}

	empty := core.EmptySceneBuffers()
	if hit := GetIntersection(rays[0], &empty); hit != core.Miss() {
		t.Errorf("Expected miss on empty scene, got %+v", hit)
	}
}

func TestGetIntersection_NearestWins(t *testing.T) {
	sb := testBuffers{
		spheres: [][]float32{
			{0, 0, -3, 1, 255, 0, 0},
			{0, 0, 0, 1, 0, 255, 0},
		},
		planes: [][]float32{{0, 0, -10, 0, 0, 1, 0, 0, 255}},
	}.build()

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit := GetIntersection(ray, sb)

	if hit.Kind != core.KindSphere || hit.Index != 1 {
		t.Fatalf("Expected sphere 1, got %s %d", hit.Kind, hit.Index)
	}
	if !approxEqual(hit.T, 4, 1e-5) {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
}

func TestGetIntersection_TiesFollowScanOrder(t *testing.T) {
	down := core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		buffers   testBuffers
		ray       core.Ray
		wantKind  core.Kind
		wantIndex int
	}{
		{
			name: "sphere beats plane",
			buffers: testBuffers{
				spheres: [][]float32{{0.5, 0.5, -1, 1, 255, 0, 0}},
				planes:  [][]float32{{0, 0, 0, 0, 0, 1, 0, 255, 0}},
			},
			ray:      down,
			wantKind: core.KindSphere,
		},
		{
			name: "plane beats rectangle",
			buffers: testBuffers{
				planes:     [][]float32{{0, 0, 0, 0, 0, 1, 0, 255, 0}},
				rectangles: [][]float32{{0, 0, 0, 1, 0, 0, 0, 1, 0, 255, 0, 0, 1}},
			},
			ray:      down,
			wantKind: core.KindPlane,
		},
		{
			name: "rectangle beats paraboloid",
			buffers: testBuffers{
				rectangles:  [][]float32{{0, 0, 0, 1, 0, 0, 0, 1, 0, 255, 0, 0, 1}},
				paraboloids: [][]float32{{0.5, 0.5, 0, 1, 1, 255, 255, 0, 1, 0, 1}},
			},
			ray:      down,
			wantKind: core.KindRectangle,
		},
		{
			name: "lower index beats higher",
			buffers: testBuffers{
				planes: [][]float32{
					{0, 0, 0, 0, 0, 1, 0, 255, 0},
					{0, 0, 0, 0, 0, 1, 255, 0, 0},
				},
			},
			ray:       down,
			wantKind:  core.KindPlane,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := GetIntersection(tt.ray, tt.buffers.build())
			if hit.Kind != tt.wantKind || hit.Index != tt.wantIndex {
				t.Errorf("Expected %s %d, got %s %d (t=%f)", tt.wantKind, tt.wantIndex, hit.Kind, hit.Index, hit.T)
			}
		})
	}
}

func TestGetIntersection_IgnoresBeyondMaxDistance(t *testing.T) {
	sb := testBuffers{
		planes: [][]float32{{0, 0, -2000, 0, 0, 1, 0, 255, 0}},
	}.build()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit := GetIntersection(ray, sb); hit.IsHit() {
		t.Errorf("Expected miss beyond max distance, got %+v", hit)
	}
}

func TestNormalAndColorDispatch(t *testing.T) {
	sb := testBuffers{
		spheres:     [][]float32{{0, 0, 0, 1, 1, 2, 3}},
		planes:      [][]float32{{0, 0, 0, 0, 1, 0, 4, 5, 6}},
		rectangles:  [][]float32{{0, 0, 0, 1, 0, 0, 0, 1, 0, 7, 8, 9, 0}},
		paraboloids: [][]float32{{0, 0, 0, 1, 1, 10, 11, 12, 1, 0, 1}},
	}.build()

	tests := []struct {
		hit    core.Hit
		point  core.Vec3
		normal core.Vec3
		color  core.Vec3
	}{
		{core.Hit{Kind: core.KindSphere}, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), core.NewVec3(1, 2, 3)},
		{core.Hit{Kind: core.KindPlane}, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(4, 5, 6)},
		{core.Hit{Kind: core.KindRectangle}, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(7, 8, 9)},
		{core.Hit{Kind: core.KindParaboloid}, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(10, 11, 12)},
		{core.Miss(), core.NewVec3(0, 0, 0), core.Vec3{}, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.hit.Kind.String(), func(t *testing.T) {
			if n := Normal(tt.hit, tt.point, sb); !vecApproxEqual(n, tt.normal, 1e-6) {
				t.Errorf("Expected normal %v, got %v", tt.normal, n)
			}
			if c := Color(tt.hit, sb); c != tt.color {
				t.Errorf("Expected color %v, got %v", tt.color, c)
			}
		})
	}
}
