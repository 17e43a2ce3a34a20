package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

const (
	connect4Rows = 6
	connect4Cols = 7
	connect4Win  = 4
)

var connect4Symbols = [2]string{"red", "yellow"}

type connect4Move struct {
	Column *int `json:"column" validate:"required,min=0,max=6"`
}

// Connect4 drops discs into a 6x7 grid
type Connect4 struct{}

func (Connect4) Type() model.GameType { return model.GameConnect4 }

// TurnDuration is zero: connect4 has never run a turn timer. Operators can
// enable one through the catalog's duration overrides.
func (Connect4) TurnDuration() time.Duration { return 0 }

func (Connect4) Initialize([]model.Player) (any, error) {
	return NewGrid(connect4Rows, connect4Cols), nil
}

func (Connect4) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m connect4Move
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	grid, err := decodeBoard[Grid](st)
	if err != nil {
		return extra, err
	}

	col := *m.Column
	row := dropRow(grid, col)
	if row < 0 {
		return extra, illegal("column %d is full", col)
	}
	grid[row][col] = connect4Symbols[st.PlayerIndex(actor)]

	switch {
	case grid.LineThrough(row, col, connect4Win) != nil:
		st.Finish(actor)
	case grid.Full():
		st.FinishDraw()
	default:
		st.SwitchTurn()
	}
	return extra, commit(st, grid)
}

// dropRow returns the lowest empty row of a column, or -1 if it is full
func dropRow(grid Grid, col int) int {
	for row := len(grid) - 1; row >= 0; row-- {
		if grid[row][col] == "" {
			return row
		}
	}
	return -1
}
