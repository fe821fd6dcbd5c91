package renderer

import (
	"image"
	"image/color"
)

// Frame is the rendered 8-bit image stored channel-major: channel c of pixel (row, col)
// lives at Pix[c*Width*Height + row*Width + col]. Row 0 is the top of the image.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}
}

func (f *Frame) offset(c, row, col int) int {
	return c*f.Width*f.Height + row*f.Width + col
}

// Set writes the three channels of one pixel
func (f *Frame) Set(row, col int, rgb [3]uint8) {
	for c := 0; c < 3; c++ {
		f.Pix[f.offset(c, row, col)] = rgb[c]
	}
}

// At returns the three channels of one pixel
func (f *Frame) At(row, col int) [3]uint8 {
	return [3]uint8{
		f.Pix[f.offset(0, row, col)],
		f.Pix[f.offset(1, row, col)],
		f.Pix[f.offset(2, row, col)],
	}
}

// ToRGBA converts the frame into an opaque interleaved image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			rgb := f.At(row, col)
			img.SetRGBA(col, row, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
