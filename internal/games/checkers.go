package games

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

const (
	checkersSize = 8
	kingSuffix   = "-king"
)

// checkersColors maps seats to piece colors. The first seat plays red from
// rows 5-7 and advances toward row 0.
var checkersColors = [2]string{"red", "black"}

// Checkers moves pieces diagonally on the dark squares of an 8x8 board
type Checkers struct{}

func (Checkers) Type() model.GameType        { return model.GameCheckers }
func (Checkers) TurnDuration() time.Duration { return 5 * time.Second }

func (Checkers) Initialize([]model.Player) (any, error) {
	g := NewGrid(checkersSize, checkersSize)
	for r := range checkersSize {
		for c := range checkersSize {
			if (r+c)%2 == 0 {
				continue
			}
			switch {
			case r <= 2:
				g[r][c] = "black"
			case r >= 5:
				g[r][c] = "red"
			}
		}
	}
	return g, nil
}

func (Checkers) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m pieceMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	grid, err := decodeBoard[Grid](st)
	if err != nil {
		return extra, err
	}

	fr, fc, tr, tc := *m.FromRow, *m.FromCol, *m.ToRow, *m.ToCol
	if !grid.InBounds(fr, fc) || !grid.InBounds(tr, tc) {
		return extra, model.ErrInvalidPosition
	}

	seat := st.PlayerIndex(actor)
	color := checkersColors[seat]
	piece := grid[fr][fc]
	if pieceColor(piece) != color {
		return extra, illegal("no piece of yours at %d,%d", fr, fc)
	}
	if grid[tr][tc] != "" {
		return extra, model.ErrCellOccupied
	}

	dr, dc := tr-fr, tc-fc
	if abs(dr) != abs(dc) || abs(dr) > 2 || dr == 0 {
		return extra, illegal("checkers move diagonally by one or two")
	}
	king := strings.HasSuffix(piece, kingSuffix)
	if !king && abs(dr) == 1 && sign(dr) != forwardRow(seat) {
		return extra, illegal("only kings step backward")
	}
	if abs(dr) == 2 {
		mr, mc := fr+dr/2, fc+dc/2
		jumped := grid[mr][mc]
		if jumped == "" || pieceColor(jumped) == color {
			return extra, illegal("a jump must leap an opposing piece")
		}
		grid[mr][mc] = ""
		extra.Captured = true
	}

	grid[fr][fc] = ""
	if !king && tr == promotionRow(seat) {
		piece += kingSuffix
	}
	grid[tr][tc] = piece

	if countPieces(grid, checkersColors[1-seat]) == 0 {
		st.Finish(actor)
	} else {
		st.SwitchTurn()
	}
	return extra, commit(st, grid)
}

func pieceColor(piece string) string {
	return strings.TrimSuffix(piece, kingSuffix)
}

func forwardRow(seat int) int {
	if seat == 0 {
		return -1
	}
	return 1
}

func promotionRow(seat int) int {
	if seat == 0 {
		return 0
	}
	return checkersSize - 1
}

func countPieces(grid Grid, color string) int {
	n := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell != "" && pieceColor(cell) == color {
				n++
			}
		}
	}
	return n
}
