package games

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

// With nothing queued every draw takes the first free cell, so the mines
// fill row 0 and the first two cells of row 1.

func (s *RulesSuite) TestMinesweeperPlacesTenDistinctMines() {
	_, st := s.newGame(model.GameMinesweeper)
	b, err := DecodeBoard[MinesweeperBoard](st)
	s.Require().NoError(err)

	mines := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.IsMine {
				mines++
			}
			s.False(cell.IsRevealed)
		}
	}
	s.Equal(minesweeperMines, mines)
	s.True(b.Cells[0][7].IsMine)
	s.True(b.Cells[1][1].IsMine)
	s.False(b.Cells[1][2].IsMine)
}

func (s *RulesSuite) TestMinesweeperQueuedMinePositions() {
	s.random.QueueIntn(63)
	_, st := s.newGame(model.GameMinesweeper)
	b, err := DecodeBoard[MinesweeperBoard](st)
	s.Require().NoError(err)

	s.True(b.Cells[7][7].IsMine)
	s.False(b.Cells[1][1].IsMine)
}

func (s *RulesSuite) TestMinesweeperSafeRevealScores() {
	rules, st := s.newGame(model.GameMinesweeper)

	st = s.mustPlay(rules, st, alice.ID, `{"row":2,"col":1}`)
	b, err := DecodeBoard[MinesweeperBoard](st)
	s.Require().NoError(err)

	cell := b.Cells[2][1]
	s.True(cell.IsRevealed)
	s.Equal(alice.ID, cell.RevealedBy)
	s.Equal(2, cell.NeighborCount)
	s.Equal([2]int{1, 0}, b.Scores)
	s.Equal(bob.ID, st.CurrentPlayerID)
	s.False(st.IsOver)
}

func (s *RulesSuite) TestMinesweeperRevealedCellRejected() {
	rules, st := s.newGame(model.GameMinesweeper)
	st = s.mustPlay(rules, st, alice.ID, `{"row":7,"col":7}`)

	out := s.mustReject(rules, st, bob.ID, `{"row":7,"col":7}`)
	s.ErrorIs(out.Reason, model.ErrCellOccupied)

	out = s.mustReject(rules, st, bob.ID, `{"row":8,"col":0}`)
	s.ErrorIs(out.Reason, model.ErrInvalidPosition)
}

func (s *RulesSuite) TestMinesweeperMineHandsOpponentTheWin() {
	rules, st := s.newGame(model.GameMinesweeper)
	st = s.mustPlay(rules, st, alice.ID, `{"row":7,"col":7}`)

	st = s.mustPlay(rules, st, bob.ID, `{"row":0,"col":0}`)

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
	b, err := DecodeBoard[MinesweeperBoard](st)
	s.Require().NoError(err)
	s.True(b.Cells[0][0].IsRevealed)

	out := s.mustReject(rules, st, alice.ID, `{"row":6,"col":6}`)
	s.ErrorIs(out.Reason, model.ErrGameOver)
}

func (s *RulesSuite) TestMinesweeperClearingFieldFinishesByScore() {
	rules, st := s.newGame(model.GameMinesweeper)

	players := [2]model.PlayerID{alice.ID, bob.ID}
	turn := 0
	for r := 1; r < minesweeperSize; r++ {
		for c := range minesweeperSize {
			if r == 1 && c < 2 {
				continue
			}
			s.Require().False(st.IsOver)
			st = s.mustPlay(rules, st, players[turn%2], fmt.Sprintf(`{"row":%d,"col":%d}`, r, c))
			turn++
		}
	}

	// 54 safe cells split evenly
	s.True(st.IsOver)
	s.True(st.IsDraw)
}

func (s *RulesSuite) TestMinesweeperViewHidesUnrevealedMines() {
	rules, st := s.newGame(model.GameMinesweeper)
	st = s.mustPlay(rules, st, alice.ID, `{"row":2,"col":1}`)

	b, err := DecodeBoard[MinesweeperBoard](s.catalog.View(st, bob.ID))
	s.Require().NoError(err)
	for _, row := range b.Cells {
		for _, cell := range row {
			s.False(cell.IsMine)
		}
	}
	s.True(b.Cells[2][1].IsRevealed)
	s.Equal(2, b.Cells[2][1].NeighborCount)

	stored, err := DecodeBoard[MinesweeperBoard](st)
	s.Require().NoError(err)
	s.True(stored.Cells[0][0].IsMine)
}
