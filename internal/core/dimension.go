package core

import "math"

// Grid size breakpoints in viewport pixels.
const (
	smallViewportWidth  = 600
	mediumViewportWidth = 1024

	smallGridSize  = 26
	mediumGridSize = 35
	maxGridSize    = 80
	largeGridDiv   = 28
)

// Dimensions is the resolved play-field geometry for one viewport size.
type Dimensions struct {
	GridSize     float64 // Edge of one square grid cell in pixels
	Cols         int
	Rows         int
	CanvasWidth  float64 // Cols * GridSize
	CanvasHeight float64 // Rows * GridSize
}

// ResolveDimensions maps a viewport size in pixels to grid and canvas sizes.
// It is a pure function and is re-run on every resize.
func ResolveDimensions(width, height float64) Dimensions {
	var grid float64
	switch {
	case width < smallViewportWidth:
		grid = smallGridSize
	case width < mediumViewportWidth:
		grid = mediumGridSize
	default:
		grid = ClampF(width/largeGridDiv, mediumGridSize, maxGridSize)
	}

	cols := int(math.Floor(math.Max(width, 0) / grid))
	rows := int(math.Floor(math.Max(height, 0) / grid))

	return Dimensions{
		GridSize:     grid,
		Cols:         cols,
		Rows:         rows,
		CanvasWidth:  float64(cols) * grid,
		CanvasHeight: float64(rows) * grid,
	}
}

// Empty reports whether the canvas has no drawable area.
func (d Dimensions) Empty() bool {
	return d.Cols <= 0 || d.Rows <= 0
}
