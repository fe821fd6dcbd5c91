package renderer

import (
	"image"
)

// Block is one BlockSize×BlockSize group of pixel threads. Bounds may extend past the image
// on the right and bottom edges; threads there do nothing.
type Block struct {
	ID     int
	Bounds image.Rectangle
}

// NewBlockGrid covers the image with ceil(width/size)×ceil(height/size) blocks in row-major order
func NewBlockGrid(width, height, blockSize int) []Block {
	blocksX := (width + blockSize - 1) / blockSize // Ceiling division
	blocksY := (height + blockSize - 1) / blockSize

	blocks := make([]Block, 0, blocksX*blocksY)
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			x0 := bx * blockSize
			y0 := by * blockSize
			blocks = append(blocks, Block{
				ID:     len(blocks),
				Bounds: image.Rect(x0, y0, x0+blockSize, y0+blockSize),
			})
		}
	}
	return blocks
}
