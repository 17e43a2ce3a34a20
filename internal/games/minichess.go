package games

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

// MiniChessSize is the side length of the minichess board
const MiniChessSize = 5

// miniChessSetup is the starting position. Uppercase pieces belong to the
// first seat and move toward row 0.
var miniChessSetup = [MiniChessSize]string{"rnknr", "ppppp", ".....", "PPPPP", "RNKNR"}

type pieceMove struct {
	FromRow *int `json:"fromRow" validate:"required,min=0"`
	FromCol *int `json:"fromCol" validate:"required,min=0"`
	ToRow   *int `json:"toRow" validate:"required,min=0"`
	ToCol   *int `json:"toCol" validate:"required,min=0"`
}

// MiniChess plays rooks, knights, king and pawns on a 5x5 board.
// Taking the opposing king wins.
type MiniChess struct{}

func (MiniChess) Type() model.GameType        { return model.GameMiniChess }
func (MiniChess) TurnDuration() time.Duration { return 10 * time.Second }

func (MiniChess) Initialize([]model.Player) (any, error) {
	return NewMiniChessGrid(), nil
}

// NewMiniChessGrid returns the starting position
func NewMiniChessGrid() Grid {
	g := NewGrid(MiniChessSize, MiniChessSize)
	for r, rank := range miniChessSetup {
		for c, piece := range rank {
			if piece != '.' {
				g[r][c] = string(piece)
			}
		}
	}
	return g
}

func (MiniChess) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
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
	piece := grid[fr][fc]
	if piece == "" || chessSide(piece) != st.PlayerIndex(actor) {
		return extra, illegal("no piece of yours at %d,%d", fr, fc)
	}
	if !chessMoveLegal(grid, fr, fc, tr, tc) {
		return extra, illegal("%s cannot move from %d,%d to %d,%d", piece, fr, fc, tr, tc)
	}

	captured := grid[tr][tc]
	grid[tr][tc] = piece
	grid[fr][fc] = ""
	extra.Captured = captured != ""

	if strings.EqualFold(captured, "k") {
		st.Finish(actor)
	} else {
		st.SwitchTurn()
	}
	return extra, commit(st, grid)
}

// ValidMoves lists every legal destination of the piece at (row, col)
func ValidMoves(grid Grid, row, col int) []model.Position {
	moves := []model.Position{}
	if !grid.InBounds(row, col) || grid[row][col] == "" {
		return moves
	}
	for r := range grid {
		for c := range grid[r] {
			if chessMoveLegal(grid, row, col, r, c) {
				moves = append(moves, model.Position{Row: r, Col: c})
			}
		}
	}
	return moves
}

// chessSide returns 0 for uppercase pieces and 1 for lowercase ones
func chessSide(piece string) int {
	if strings.ToUpper(piece) == piece {
		return 0
	}
	return 1
}

func chessMoveLegal(grid Grid, fr, fc, tr, tc int) bool {
	if !grid.InBounds(tr, tc) || (fr == tr && fc == tc) {
		return false
	}
	piece := grid[fr][fc]
	target := grid[tr][tc]
	side := chessSide(piece)
	if target != "" && chessSide(target) == side {
		return false
	}

	dr, dc := tr-fr, tc-fc
	switch strings.ToLower(piece) {
	case "p":
		forward := -1
		if side == 1 {
			forward = 1
		}
		if dr != forward {
			return false
		}
		if dc == 0 {
			return target == ""
		}
		return abs(dc) == 1 && target != ""
	case "r":
		if dr != 0 && dc != 0 {
			return false
		}
		return pathClear(grid, fr, fc, tr, tc)
	case "n":
		return (abs(dr) == 1 && abs(dc) == 2) || (abs(dr) == 2 && abs(dc) == 1)
	case "k":
		return max(abs(dr), abs(dc)) == 1
	default:
		return false
	}
}

// pathClear reports whether every square strictly between two cells on a line is empty
func pathClear(grid Grid, fr, fc, tr, tc int) bool {
	sr, sc := sign(tr-fr), sign(tc-fc)
	for r, c := fr+sr, fc+sc; r != tr || c != tc; r, c = r+sr, c+sc {
		if grid[r][c] != "" {
			return false
		}
	}
	return true
}
