package queenboard

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// ErrInvalidPuzzle reports a malformed region grid: non-square shape, a
// region id outside [0, N), or a region with no candidate cells. A solvable
// but infeasible puzzle is not an error; Solve signals that through its
// boolean result instead.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

// maxGridSize bounds N so row/column occupancy fits in a single mask.
// Puzzle boards are far smaller in practice.
const maxGridSize = 32

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// Grid is an N×N board of region ids in [0, N). Built once per puzzle and
// never mutated; the solver reads it only.
type Grid [][]int

// Size returns the board edge length N.
func (g Grid) Size() int { return len(g) }

// Validate checks that the grid is square, every region id is in [0, N) and
// every region in [0, N) owns at least one cell. All failures wrap
// ErrInvalidPuzzle.
func (g Grid) Validate() error {
	n := len(g)
	if n == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidPuzzle)
	}
	if n > maxGridSize {
		return fmt.Errorf("%w: unsupported grid size %d, larger than %d", ErrInvalidPuzzle, n, maxGridSize)
	}
	seen := make([]bool, n)
	for r, row := range g {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidPuzzle, r, len(row), n)
		}
		for c, id := range row {
			if id < 0 || id >= n {
				return fmt.Errorf("%w: region id %d at (%d,%d) outside [0,%d)", ErrInvalidPuzzle, id, r, c, n)
			}
			seen[id] = true
		}
	}
	for id, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: region %d has no cells", ErrInvalidPuzzle, id)
		}
	}
	return nil
}

// Solution maps a region id (the index) to its chosen cell.
type Solution []Cell

// Solve places exactly one queen in each region of g such that no two queens
// share a row, share a column, or sit within Chebyshev distance 1 of each
// other (adjacency including diagonals is forbidden).
//
// It returns (solution, true, nil) on success, (nil, false, nil) when the
// well-formed puzzle has no satisfying placement, and a wrapped
// ErrInvalidPuzzle when the grid is malformed. The search is deterministic:
// the same grid always yields the same solution.
func Solve(g Grid) (Solution, bool, error) {
	if err := g.Validate(); err != nil {
		return nil, false, err
	}
	n := g.Size()

	// Candidate cells per region, enumerated row-major.
	cand := make([][]Cell, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			id := g[r][c]
			cand[id] = append(cand[id], Cell{Row: r, Col: c})
		}
	}

	// Most constrained region first. The stable sort keeps ties in region-id
	// order, so the search order is fully determined by the grid.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(cand[a]) - len(cand[b])
	})

	var (
		usedRows uint32
		usedCols uint32
		// blocked counts how many placed queens touch each cell, so undoing
		// a placement is a decrement rather than a set rebuild.
		blocked = make([]int, n*n)
		sol     = make(Solution, n)
		nodes   = 0
	)

	var place func(idx int) bool
	place = func(idx int) bool {
		if idx == n {
			return true
		}
		id := order[idx]
		for _, cell := range cand[id] {
			nodes++
			if usedRows&(1<<cell.Row) != 0 || usedCols&(1<<cell.Col) != 0 {
				continue
			}
			if blocked[cell.Row*n+cell.Col] > 0 {
				continue
			}
			usedRows |= 1 << cell.Row
			usedCols |= 1 << cell.Col
			markNeighborhood(blocked, n, cell, 1)
			sol[id] = cell
			if place(idx + 1) {
				return true
			}
			markNeighborhood(blocked, n, cell, -1)
			usedRows &^= 1 << cell.Row
			usedCols &^= 1 << cell.Col
		}
		return false
	}

	start := time.Now()
	ok := place(0)
	log.WithFields(logrus.Fields{
		"n":        n,
		"nodes":    nodes,
		"solved":   ok,
		"duration": time.Since(start),
	}).Debug("queen search finished")

	if !ok {
		return nil, false, nil
	}
	return sol, true, nil
}

// markNeighborhood adds delta to the blocked count of cell and its up to
// eight neighbors.
func markNeighborhood(blocked []int, n int, cell Cell, delta int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := cell.Row+dr, cell.Col+dc
			if r >= 0 && r < n && c >= 0 && c < n {
				blocked[r*n+c] += delta
			}
		}
	}
}
