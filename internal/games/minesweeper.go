package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/model"
)

const (
	minesweeperSize  = 8
	minesweeperMines = 10
)

// MineCell is one square of the minefield
type MineCell struct {
	IsMine        bool           `json:"isMine"`
	IsRevealed    bool           `json:"isRevealed"`
	NeighborCount int            `json:"neighborCount"`
	RevealedBy    model.PlayerID `json:"revealedBy,omitempty"`
}

// MinesweeperBoard is an 8x8 minefield shared by both players
type MinesweeperBoard struct {
	Cells  [][]MineCell `json:"cells"`
	Scores [2]int       `json:"scores"`
}

// Minesweeper takes turns revealing cells; hitting a mine loses
type Minesweeper struct {
	random random.Random
}

func (Minesweeper) Type() model.GameType        { return model.GameMinesweeper }
func (Minesweeper) TurnDuration() time.Duration { return 5 * time.Second }

// Initialize scatters the mines by drawing from the cells still free, so
// no two mines ever share a cell
func (m Minesweeper) Initialize([]model.Player) (any, error) {
	b := MinesweeperBoard{Cells: make([][]MineCell, minesweeperSize)}
	for r := range b.Cells {
		b.Cells[r] = make([]MineCell, minesweeperSize)
	}

	free := make([]int, minesweeperSize*minesweeperSize)
	for i := range free {
		free[i] = i
	}
	for range minesweeperMines {
		k := m.random.Intn(len(free))
		cell := free[k]
		free = append(free[:k], free[k+1:]...)
		b.Cells[cell/minesweeperSize][cell%minesweeperSize].IsMine = true
	}
	return b, nil
}

func (Minesweeper) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m gridMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	b, err := decodeBoard[MinesweeperBoard](st)
	if err != nil {
		return extra, err
	}

	row, col := *m.Row, *m.Col
	if row >= minesweeperSize || col >= minesweeperSize {
		return extra, model.ErrInvalidPosition
	}
	cell := &b.Cells[row][col]
	if cell.IsRevealed {
		return extra, model.ErrCellOccupied
	}
	cell.IsRevealed = true
	cell.RevealedBy = actor

	if cell.IsMine {
		st.Finish(st.OtherPlayer(actor))
		return extra, commit(st, b)
	}

	cell.NeighborCount = b.neighborMines(row, col)
	b.Scores[st.PlayerIndex(actor)]++

	if b.safeRevealed() == minesweeperSize*minesweeperSize-minesweeperMines {
		finishByScore(st, b.Scores)
	} else {
		st.SwitchTurn()
	}
	return extra, commit(st, b)
}

func (b *MinesweeperBoard) neighborMines(row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if (dr != 0 || dc != 0) && r >= 0 && r < len(b.Cells) && c >= 0 && c < len(b.Cells[r]) && b.Cells[r][c].IsMine {
				n++
			}
		}
	}
	return n
}

func (b *MinesweeperBoard) safeRevealed() int {
	n := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.IsRevealed && !cell.IsMine {
				n++
			}
		}
	}
	return n
}

// Redact clears the mine flag of every unrevealed cell
func (Minesweeper) Redact(st *model.GameState, _ model.PlayerID) error {
	b, err := decodeBoard[MinesweeperBoard](st)
	if err != nil {
		return err
	}
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if cell := &b.Cells[r][c]; !cell.IsRevealed {
				cell.IsMine = false
				cell.NeighborCount = 0
			}
		}
	}
	return encodeBoard(st, b)
}
