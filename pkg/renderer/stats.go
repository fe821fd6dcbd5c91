package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID         string        // Unique identifier of the render
	TotalPixels      int           // Pixels written
	SamplesPerPixel  int           // Primary rays per pixel
	TotalSamples     int           // Primary rays traced
	Blocks           int           // Blocks dispatched
	BlockSize        int           // Threads per block side
	Workers          int           // Concurrent block limit
	Elapsed          time.Duration // Wall time of the render
	AverageLuminance float64       // Mean Rec. 709 luminance in [0, 1]
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples, %d blocks of %dx%d on %d workers in %v",
		s.TotalPixels, s.TotalSamples, s.Blocks, s.BlockSize, s.BlockSize, s.Workers, s.Elapsed.Round(time.Millisecond))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the frame in [0, 1]
func CalculateAverageLuminance(f *Frame) float64 {
	n := f.Width * f.Height
	if n == 0 {
		return 0
	}

	var total float64
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			rgb := f.At(row, col)
			total += 0.2126*float64(rgb[0]) + 0.7152*float64(rgb[1]) + 0.0722*float64(rgb[2])
		}
	}
	return total / 255 / float64(n)
}
