package queenboard

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/queenboard/utils"
)

// makeBoardImage paints an n×n board with cellPx-square cells, coloring each
// cell per ids and colors.
func makeBoardImage(ids [][]int, colors []color.RGBA, cellPx int) *image.RGBA {
	n := len(ids)
	img := image.NewRGBA(image.Rect(0, 0, n*cellPx, n*cellPx))
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			col := colors[ids[r][c]]
			for y := r * cellPx; y < (r+1)*cellPx; y++ {
				for x := c * cellPx; x < (c+1)*cellPx; x++ {
					img.SetRGBA(x, y, col)
				}
			}
		}
	}
	return img
}

func TestBuildGridFirstAppearanceOrder(t *testing.T) {
	ids := [][]int{
		{0, 1},
		{2, 3},
	}
	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
	}
	img := makeBoardImage(ids, colors, 12)

	opt := DefaultOptions()
	opt.GridSize = 2
	grid, palette, err := BuildGrid(img, opt)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(palette) != 4 {
		t.Fatalf("palette size %d, want 4", len(palette))
	}
	for r := range ids {
		for c := range ids[r] {
			if grid[r][c] != ids[r][c] {
				t.Fatalf("cell (%d,%d): region %d, want %d", r, c, grid[r][c], ids[r][c])
			}
		}
	}
	// Region ids follow first appearance, so palette[0] is the top-left red.
	if r, g, b := palette[0].RGB255(); r < 250 || g > 5 || b > 5 {
		t.Fatalf("palette[0] = %v, want red", palette[0].Hex())
	}
}

func TestBuildGridToleranceMergesNearColors(t *testing.T) {
	// Two red shades well inside the default Lab tolerance must share a
	// region; blue stays separate.
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	shades := []color.RGBA{
		{200, 0, 0, 255},
		{206, 2, 2, 255},
		{0, 0, 255, 255},
		{0, 2, 250, 255},
	}
	cells := [][]int{
		{0, 1},
		{2, 3},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			col := shades[cells[r][c]]
			for y := r * 10; y < (r+1)*10; y++ {
				for x := c * 10; x < (c+1)*10; x++ {
					img.SetRGBA(x, y, col)
				}
			}
		}
	}

	opt := DefaultOptions()
	opt.GridSize = 2
	grid, palette, err := BuildGrid(img, opt)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(palette) != 2 {
		t.Fatalf("palette size %d, want 2 (shades merged)", len(palette))
	}
	if grid[0][0] != grid[0][1] {
		t.Fatal("red shades split into distinct regions")
	}
	if grid[1][0] != grid[1][1] {
		t.Fatal("blue shades split into distinct regions")
	}
	if grid[0][0] == grid[1][0] {
		t.Fatal("red and blue merged into one region")
	}
}

func TestBuildGridReferencePaletteSnap(t *testing.T) {
	img := makeBoardImage(
		[][]int{{0, 1}, {1, 0}},
		[]color.RGBA{{240, 10, 10, 255}, {10, 10, 240, 255}},
		10,
	)
	ref := []colorful.Color{
		{R: 1, G: 0, B: 0},
		{R: 0, G: 0, B: 1},
	}

	opt := DefaultOptions()
	opt.GridSize = 2
	opt.ReferencePalette = ref
	_, palette, err := BuildGrid(img, opt)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	for _, p := range palette {
		if p != ref[0] && p != ref[1] {
			t.Fatalf("palette entry %v not snapped to reference", p.Hex())
		}
	}
}

// Reference palettes extracted from the whole image must stabilize grids on
// boards whose cells drift around their nominal colors.
func TestBuildGridWithExtractedReferencePalette(t *testing.T) {
	ids := [][]int{
		{0, 1},
		{1, 0},
	}
	// Same two tones with per-cell drift, as a photographed board shows.
	shades := [][]color.RGBA{
		{{216, 34, 28, 255}, {28, 30, 224, 255}},
		{{34, 26, 216, 255}, {224, 26, 34, 255}},
	}
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			for y := r * 12; y < (r+1)*12; y++ {
				for x := c * 12; x < (c+1)*12; x++ {
					img.SetRGBA(x, y, shades[r][c])
				}
			}
		}
	}

	ref := utils.ExtractPalette(img, 2, utils.PaletteMethodDominantColor)
	if len(ref) != 2 {
		t.Fatalf("reference palette has %d colors, want 2", len(ref))
	}
	utils.SortPaletteByBrightness(ref)

	opt := DefaultOptions()
	opt.GridSize = 2
	opt.ReferencePalette = ref
	grid, palette, err := BuildGrid(img, opt)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(palette) != 2 {
		t.Fatalf("palette size %d, want 2", len(palette))
	}
	for r := range ids {
		for c := range ids[r] {
			if grid[r][c] != ids[r][c] {
				t.Fatalf("cell (%d,%d): region %d, want %d", r, c, grid[r][c], ids[r][c])
			}
		}
	}
}

func TestBuildGridErrors(t *testing.T) {
	if _, _, err := BuildGrid(nil, DefaultOptions()); err == nil {
		t.Fatal("nil image must fail")
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	opt := DefaultOptions()
	opt.GridSize = 0
	if _, _, err := BuildGrid(img, opt); err == nil {
		t.Fatal("grid size 0 must fail")
	}
	if _, _, err := BuildGrid(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultOptions()); err == nil {
		t.Fatal("empty image must fail")
	}
}

// End to end: paint a solvable board, rebuild its grid from pixels and solve.
func TestBuildGridSolvePipeline(t *testing.T) {
	ids := [][]int{
		{0, 0, 1, 1, 1},
		{0, 1, 1, 2, 2},
		{3, 3, 1, 2, 2},
		{3, 3, 4, 4, 2},
		{3, 4, 4, 4, 2},
	}
	colors := []color.RGBA{
		{230, 60, 60, 255},
		{60, 200, 60, 255},
		{60, 60, 230, 255},
		{230, 200, 40, 255},
		{160, 60, 200, 255},
	}
	img := makeBoardImage(ids, colors, 16)

	opt := DefaultOptions()
	opt.GridSize = 5
	grid, palette, err := BuildGrid(img, opt)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(palette) != 5 {
		t.Fatalf("palette size %d, want 5", len(palette))
	}
	sol, ok, err := Solve(grid)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !ok {
		t.Fatal("painted board is solvable, solver disagreed")
	}
	checkSolution(t, grid, sol)
}
