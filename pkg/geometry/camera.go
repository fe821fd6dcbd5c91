package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig describes the camera pose and image resolution.
//
// Camera space looks down +x with +y to the image left and +z up. Euler holds
// (roll, pitch, yaw) in degrees: positive pitch tilts the view up, positive yaw turns it
// toward +y. The zero pose therefore looks down +x.
type CameraConfig struct {
	Position core.Vec3 `json:"position"`
	Euler    core.Vec3 `json:"euler"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	HFov     float32   `json:"hfov"` // Horizontal field of view in degrees
}

// DefaultCameraConfig returns the camera of the default scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(-7, 0, 4),
		Euler:    core.NewVec3(0, -30, 0),
		Width:    1000,
		Height:   1000,
		HFov:     60,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Position != (core.Vec3{}) {
		result.Position = override.Position
	}
	if override.Euler != (core.Vec3{}) {
		result.Euler = override.Euler
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.HFov > 0 {
		result.HFov = override.HFov
	}
	return result
}

// Camera generates primary ray directions for every pixel
type Camera struct {
	config    CameraConfig
	rotation  mgl32.Mat3
	pixelSize float32 // Image-plane size of one pixel at distance 1
}

// NewCamera builds the rotation matrix and image-plane scale from the config
func NewCamera(config CameraConfig) *Camera {
	halfWidth := math.Tan(float64(mgl32.DegToRad(config.HFov)) / 2)
	return &Camera{
		config:    config,
		rotation:  RotationMatrix(config.Euler),
		pixelSize: float32(2 * halfWidth / float64(config.Width)),
	}
}

// RotationMatrix converts (roll, pitch, yaw) degrees into Rz(yaw)·Ry(−pitch)·Rx(roll)
func RotationMatrix(euler core.Vec3) mgl32.Mat3 {
	roll := mgl32.DegToRad(euler[0])
	pitch := mgl32.DegToRad(euler[1])
	yaw := mgl32.DegToRad(euler[2])
	return mgl32.Rotate3DZ(yaw).Mul3(mgl32.Rotate3DY(-pitch)).Mul3(mgl32.Rotate3DX(roll))
}

// Origin returns the shared origin of all primary rays
func (c *Camera) Origin() core.Vec3 {
	return c.config.Position
}

// Rotation returns the camera-to-world rotation matrix
func (c *Camera) Rotation() mgl32.Mat3 {
	return c.rotation
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the world-space view direction
func (c *Camera) Forward() core.Vec3 {
	return c.rotation.Mul3x1(core.NewVec3(1, 0, 0))
}

// Direction returns the unit world-space direction through the continuous image position
// (row, col); pixel (i, j) covers [i, i+1) × [j, j+1).
func (c *Camera) Direction(row, col float32) core.Vec3 {
	y := (float32(c.config.Width)/2 - col) * c.pixelSize
	z := (float32(c.config.Height)/2 - row) * c.pixelSize
	return core.Normalize(c.rotation.Mul3x1(core.NewVec3(1, y, z)))
}

// PixelDirection returns the direction through the center of pixel (row, col)
func (c *Camera) PixelDirection(row, col int) core.Vec3 {
	return c.Direction(float32(row)+0.5, float32(col)+0.5)
}

// GeneratePixelDirections precomputes samplesPerAxis² stratified directions per pixel.
// The direction of sample k of pixel (row, col) is stored at
// (row*Width+col)*samplesPerAxis² + k; with samplesPerAxis = 1 it is the pixel center.
func (c *Camera) GeneratePixelDirections(samplesPerAxis int) []core.Vec3 {
	if samplesPerAxis < 1 {
		samplesPerAxis = 1
	}
	perPixel := samplesPerAxis * samplesPerAxis
	width, height := c.config.Width, c.config.Height
	directions := make([]core.Vec3, width*height*perPixel)

	step := 1 / float32(samplesPerAxis)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			base := (row*width + col) * perPixel
			for sy := 0; sy < samplesPerAxis; sy++ {
				for sx := 0; sx < samplesPerAxis; sx++ {
					r := float32(row) + (float32(sy)+0.5)*step
					q := float32(col) + (float32(sx)+0.5)*step
					directions[base+sy*samplesPerAxis+sx] = c.Direction(r, q)
				}
			}
		}
	}
	return directions
}
