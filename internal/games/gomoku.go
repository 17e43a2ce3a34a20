package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

const (
	gomokuSize = 15
	gomokuWin  = 5
)

var gomokuSymbols = [2]string{"black", "white"}

type gridMove struct {
	Row *int `json:"row" validate:"required,min=0"`
	Col *int `json:"col" validate:"required,min=0"`
}

// Gomoku places stones on a 15x15 grid until one side gets five in a row
type Gomoku struct{}

func (Gomoku) Type() model.GameType        { return model.GameGomoku }
func (Gomoku) TurnDuration() time.Duration { return 5 * time.Second }

func (Gomoku) Initialize([]model.Player) (any, error) {
	return NewGrid(gomokuSize, gomokuSize), nil
}

func (Gomoku) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m gridMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	grid, err := decodeBoard[Grid](st)
	if err != nil {
		return extra, err
	}

	row, col := *m.Row, *m.Col
	if !grid.InBounds(row, col) {
		return extra, model.ErrInvalidPosition
	}
	if grid[row][col] != "" {
		return extra, model.ErrCellOccupied
	}
	grid[row][col] = gomokuSymbols[st.PlayerIndex(actor)]

	if line := grid.LineThrough(row, col, gomokuWin); line != nil {
		extra.WinningLine = line
		st.Finish(actor)
	} else if grid.Full() {
		st.FinishDraw()
	} else {
		st.SwitchTurn()
	}
	return extra, commit(st, grid)
}
