package core

// Column layouts of the structure-of-arrays scene buffers. Each constant is the first row
// of an attribute; vector attributes occupy three consecutive rows.
const (
	SphereOrigin = 0
	SphereRadius = 3
	SphereColor  = 4
	SphereRows   = 7

	PlaneOrigin = 0
	PlaneNormal = 3
	PlaneColor  = 6
	PlaneRows   = 9

	RectOrigin      = 0
	RectU           = 3
	RectV           = 6
	RectColor       = 9
	RectOrientation = 12
	RectRows        = 13

	ParabOrigin       = 0
	ParabA            = 3
	ParabB            = 4
	ParabColor        = 5
	ParabOrientation  = 8
	ParabHeight       = 9
	ParabNormalOrient = 10
	ParabRows         = 11

	LightOrigin = 0
	LightRows   = 3
)

// Buffer is a float32 structure-of-arrays table: Rows attributes by Cols instances.
// Element (row, col) lives at Data[row*Cols+col], so one attribute is contiguous across
// all instances of a primitive kind.
type Buffer struct {
	Rows int
	Cols int
	Data []float32
}

// NewBuffer allocates a zeroed buffer
func NewBuffer(rows, cols int) Buffer {
	return Buffer{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Len returns the number of instances stored in the buffer
func (b Buffer) Len() int {
	return b.Cols
}

// At returns a single attribute of instance col
func (b Buffer) At(row, col int) float32 {
	return b.Data[row*b.Cols+col]
}

// Set writes a single attribute of instance col
func (b Buffer) Set(row, col int, v float32) {
	b.Data[row*b.Cols+col] = v
}

// Vec3 reads three consecutive attribute rows starting at row
func (b Buffer) Vec3(row, col int) Vec3 {
	return Vec3{
		b.Data[row*b.Cols+col],
		b.Data[(row+1)*b.Cols+col],
		b.Data[(row+2)*b.Cols+col],
	}
}

// SetVec3 writes three consecutive attribute rows starting at row
func (b Buffer) SetVec3(row, col int, v Vec3) {
	b.Data[row*b.Cols+col] = v[0]
	b.Data[(row+1)*b.Cols+col] = v[1]
	b.Data[(row+2)*b.Cols+col] = v[2]
}

// SceneBuffers holds every primitive table of a scene. It is built once before a render
// and only read during it.
type SceneBuffers struct {
	Spheres     Buffer
	Planes      Buffer
	Rectangles  Buffer
	Paraboloids Buffer
	Lights      Buffer
}

// EmptySceneBuffers returns buffers with the right row counts and no instances
func EmptySceneBuffers() SceneBuffers {
	return SceneBuffers{
		Spheres:     NewBuffer(SphereRows, 0),
		Planes:      NewBuffer(PlaneRows, 0),
		Rectangles:  NewBuffer(RectRows, 0),
		Paraboloids: NewBuffer(ParabRows, 0),
		Lights:      NewBuffer(LightRows, 0),
	}
}

// PrimitiveCount returns the number of intersectable primitives (lights excluded)
func (sb SceneBuffers) PrimitiveCount() int {
	return sb.Spheres.Len() + sb.Planes.Len() + sb.Rectangles.Len() + sb.Paraboloids.Len()
}
