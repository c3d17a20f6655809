package queenboard

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// sampleOffsets are the interior positions probed in each cell, as fractions
// of the cell size. Sampling well inside the cell skips grid lines and cell
// borders.
var sampleOffsets = [3]float64{0.25, 0.5, 0.75}

// BuildGrid divides img into opt.GridSize×opt.GridSize cells, averages nine
// interior samples per cell and groups the resulting cell colors into a
// palette by Lab distance. It returns the numeric region grid together with
// the palette in first-appearance order, so region id i displays as
// palette[i].
//
// The board is assumed empty: every cell uniformly colored, no pieces.
func BuildGrid(img image.Image, opt Options) (Grid, []colorful.Color, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("nil input image")
	}
	n := opt.GridSize
	if n < 1 {
		return nil, nil, fmt.Errorf("grid size %d, want at least 1", n)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, nil, fmt.Errorf("empty input image")
	}

	cw := float64(w) / float64(n)
	ch := float64(h) / float64(n)
	sampleCount := float64(len(sampleOffsets) * len(sampleOffsets))

	grid := make(Grid, n)
	var palette []colorful.Color
	acc := make([]float64, 3)
	sample := make([]float64, 3)
	for r := 0; r < n; r++ {
		grid[r] = make([]int, n)
		for c := 0; c < n; c++ {
			for i := range acc {
				acc[i] = 0
			}
			for _, dy := range sampleOffsets {
				for _, dx := range sampleOffsets {
					x := min(int((float64(c)+dx)*cw), w-1)
					y := min(int((float64(r)+dy)*ch), h-1)
					r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					sample[0] = float64(r16) / 65535.0
					sample[1] = float64(g16) / 65535.0
					sample[2] = float64(b16) / 65535.0
					floats.Add(acc, sample)
				}
			}
			floats.Scale(1.0/sampleCount, acc)
			col := colorful.Color{R: acc[0], G: acc[1], B: acc[2]}.Clamped()
			if len(opt.ReferencePalette) > 0 {
				col = nearestColor(opt.ReferencePalette, col)
			}
			grid[r][c] = paletteIndex(&palette, col, opt.Tolerance)
		}
	}
	return grid, palette, nil
}

// paletteIndex returns the index of the palette entry closest to col within
// tol Lab distance, appending col as a new entry when none qualifies.
func paletteIndex(palette *[]colorful.Color, col colorful.Color, tol float64) int {
	best := -1
	bestD := tol
	for i, p := range *palette {
		if d := p.DistanceLab(col); d <= bestD {
			bestD = d
			best = i
		}
	}
	if best >= 0 {
		return best
	}
	*palette = append(*palette, col)
	return len(*palette) - 1
}

// nearestColor returns the palette entry with the smallest Lab distance to
// col. palette must be non-empty.
func nearestColor(palette []colorful.Color, col colorful.Color) colorful.Color {
	best := palette[0]
	bestD := math.MaxFloat64
	for _, p := range palette {
		if d := p.DistanceLab(col); d < bestD {
			bestD = d
			best = p
		}
	}
	return best
}
