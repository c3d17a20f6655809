package queenboard

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// markerScale is the marker sprite edge relative to the cell edge.
const markerScale = 0.6

// RenderSolution composites the marker sprite onto img at every solved cell
// and returns the result. The sprite is rescaled to markerScale of the cell
// size and source-over blended centered in its cell. A nil marker uses the
// built-in disc sprite.
func RenderSolution(img image.Image, g Grid, sol Solution, marker image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("nil input image")
	}
	n := g.Size()
	if len(sol) != n {
		return nil, fmt.Errorf("solution covers %d regions, grid has %d", len(sol), n)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || n == 0 {
		return nil, fmt.Errorf("empty input image or grid")
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(out, out.Bounds(), img, bounds.Min, xdraw.Src)

	cw := float64(w) / float64(n)
	ch := float64(h) / float64(n)
	mw := max(int(cw*markerScale), 1)
	mh := max(int(ch*markerScale), 1)
	if marker == nil {
		marker = DefaultMarker(min(mw, mh))
	}
	sprite := image.NewRGBA(image.Rect(0, 0, mw, mh))
	xdraw.CatmullRom.Scale(sprite, sprite.Bounds(), marker, marker.Bounds(), xdraw.Over, nil)

	for _, cell := range sol {
		if cell.Row < 0 || cell.Row >= n || cell.Col < 0 || cell.Col >= n {
			return nil, fmt.Errorf("cell (%d,%d) outside %dx%d board", cell.Row, cell.Col, n, n)
		}
		x0 := int(float64(cell.Col)*cw + (cw-float64(mw))/2)
		y0 := int(float64(cell.Row)*ch + (ch-float64(mh))/2)
		dst := image.Rect(x0, y0, x0+mw, y0+mh)
		xdraw.Draw(out, dst, sprite, sprite.Bounds().Min, xdraw.Over)
	}
	return out, nil
}

// DefaultMarker returns a size×size near-black disc sprite with a one pixel
// soft edge.
func DefaultMarker(size int) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			d := math.Sqrt(dx*dx + dy*dy)
			a := min(1.0, max(0.0, radius-d))
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(20 * a),
				G: uint8(20 * a),
				B: uint8(20 * a),
				A: uint8(255 * a),
			})
		}
	}
	return img
}

// FormatSolution returns a printable board with 'Q' on solved cells and '.'
// everywhere else.
func FormatSolution(g Grid, sol Solution) string {
	n := g.Size()
	board := make([][]byte, n)
	for r := range board {
		board[r] = make([]byte, n)
		for c := range board[r] {
			board[r][c] = '.'
		}
	}
	for _, cell := range sol {
		if cell.Row >= 0 && cell.Row < n && cell.Col >= 0 && cell.Col < n {
			board[cell.Row][cell.Col] = 'Q'
		}
	}
	rows := make([]string, n)
	for r := range board {
		cells := make([]string, n)
		for c := range board[r] {
			cells[c] = string(board[r][c])
		}
		rows[r] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}
