package queenboard

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Number of cells along each board edge. A solvable puzzle has exactly
	// GridSize regions, one queen per row/column slot.
	GridSize int
	// Maximum CIE Lab distance between a cell color and an existing palette
	// entry before the cell opens a new region.
	// Ideal start: 0.05-0.12. Too low splits antialiased cells into spurious
	// regions; too high merges neighboring regions into one.
	Tolerance float64
	// Optional reference palette. When set, every sampled cell color snaps
	// to its nearest entry before grouping, which stabilizes boards
	// photographed under uneven lighting. Leave nil for clean screenshots.
	ReferencePalette []colorful.Color
}

func DefaultOptions() Options {
	return Options{
		GridSize:  8,
		Tolerance: 0.08,
	}
}

// OptionsFromSize guesses a grid size from the image dimensions, assuming
// roughly 40-80 px square cells as produced by common puzzle apps. Prefer an
// explicit GridSize whenever the board size is known.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	edge := min(size.X, size.Y)
	opt.GridSize = max(4, min(12, edge/60))
	return opt
}
