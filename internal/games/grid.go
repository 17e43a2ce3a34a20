package games

import "github.com/mcoot/duelroom/internal/model"

// Grid is a rectangular board of symbols where "" marks an empty cell
type Grid [][]string

// lineDirections are the four axes a run can lie on: horizontal, vertical
// and both diagonals
var lineDirections = [4]model.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

// NewGrid returns an empty grid of the given size
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]string, cols)
	}
	return g
}

// InBounds reports whether (row, col) lies on the grid
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && len(g) > 0 && col < len(g[row])
}

// Full reports whether every cell is occupied
func (g Grid) Full() bool {
	for _, row := range g {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
	}
	return true
}

// LineThrough returns the run of cells matching the symbol at (row, col)
// along the first axis where it reaches at least n cells, or nil. Runs longer
// than n are cut to an n-cell window that still contains (row, col).
func (g Grid) LineThrough(row, col, n int) []model.Position {
	sym := g[row][col]
	if sym == "" {
		return nil
	}

	for _, d := range lineDirections {
		// walk backward to the start of the run
		r, c := row, col
		for g.InBounds(r-d.Row, c-d.Col) && g[r-d.Row][c-d.Col] == sym {
			r, c = r-d.Row, c-d.Col
		}

		// then forward, collecting it
		var line []model.Position
		placed := 0
		for g.InBounds(r, c) && g[r][c] == sym {
			if r == row && c == col {
				placed = len(line)
			}
			line = append(line, model.Position{Row: r, Col: c})
			r, c = r+d.Row, c+d.Col
		}

		if len(line) < n {
			continue
		}
		start := max(placed-(n-1), 0)
		return line[start : start+n]
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
