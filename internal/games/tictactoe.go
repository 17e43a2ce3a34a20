package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

var (
	ticTacToeSymbols = [2]string{"X", "O"}

	ticTacToeLines = [8][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
)

// TicTacToeBoard is the 3x3 grid stored row by row
type TicTacToeBoard []string

type ticTacToeMove struct {
	Index *int `json:"index" validate:"required,min=0,max=8"`
}

// TicTacToe places X and O on a 3x3 grid
type TicTacToe struct{}

func (TicTacToe) Type() model.GameType        { return model.GameTicTacToe }
func (TicTacToe) TurnDuration() time.Duration { return 4 * time.Second }

func (TicTacToe) Initialize([]model.Player) (any, error) {
	return make(TicTacToeBoard, 9), nil
}

func (TicTacToe) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m ticTacToeMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	board, err := decodeBoard[TicTacToeBoard](st)
	if err != nil {
		return extra, err
	}
	if board[*m.Index] != "" {
		return extra, model.ErrCellOccupied
	}

	board[*m.Index] = ticTacToeSymbols[st.PlayerIndex(actor)]

	switch line := board.winningLine(); {
	case line != nil:
		extra.WinningLine = line
		st.Finish(actor)
	case board.full():
		st.FinishDraw()
	default:
		st.SwitchTurn()
	}
	return extra, commit(st, board)
}

// winningLine returns the cells of a completed line, or nil
func (b TicTacToeBoard) winningLine() []model.Position {
	for _, line := range ticTacToeLines {
		if b[line[0]] != "" && b[line[0]] == b[line[1]] && b[line[1]] == b[line[2]] {
			out := make([]model.Position, len(line))
			for i, idx := range line {
				out[i] = model.Position{Row: idx / 3, Col: idx % 3}
			}
			return out
		}
	}
	return nil
}

func (b TicTacToeBoard) full() bool {
	for _, cell := range b {
		if cell == "" {
			return false
		}
	}
	return true
}
