package games

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

func (s *RulesSuite) TestGomokuFiveInARowReturnsWinningLine() {
	rules, st := s.newGame(model.GameGomoku)

	// black builds row 7 from col 3 to 7, finishing in the middle
	blackCols := []int{3, 4, 6, 7, 5}
	for i, col := range blackCols {
		st = s.mustPlay(rules, st, alice.ID, fmt.Sprintf(`{"row":7,"col":%d}`, col))
		if i < len(blackCols)-1 {
			st = s.mustPlay(rules, st, bob.ID, fmt.Sprintf(`{"row":0,"col":%d}`, i))
		}
	}

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
}

func (s *RulesSuite) TestGomokuWinningLineHasExactlyFiveCells() {
	rules, st := s.newGame(model.GameGomoku)

	for i := range 4 {
		st = s.mustPlay(rules, st, alice.ID, fmt.Sprintf(`{"row":%d,"col":%d}`, i, i))
		st = s.mustPlay(rules, st, bob.ID, fmt.Sprintf(`{"row":14,"col":%d}`, i))
	}
	out := s.play(rules, st, alice.ID, `{"row":4,"col":4}`)
	s.Require().True(out.Valid)

	s.Equal([]model.Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4},
	}, out.Extra.WinningLine)
}

func (s *RulesSuite) TestGomokuFourIsNotEnough() {
	rules, st := s.newGame(model.GameGomoku)

	for i := range 4 {
		st = s.mustPlay(rules, st, alice.ID, fmt.Sprintf(`{"row":%d,"col":0}`, i))
		if i < 3 {
			st = s.mustPlay(rules, st, bob.ID, fmt.Sprintf(`{"row":%d,"col":5}`, i))
		}
	}

	s.False(st.IsOver)
	s.Equal(bob.ID, st.CurrentPlayerID)
}

func (s *RulesSuite) TestGomokuRejectsOccupiedAndOffBoard() {
	rules, st := s.newGame(model.GameGomoku)
	st = s.mustPlay(rules, st, alice.ID, `{"row":7,"col":7}`)

	s.ErrorIs(s.mustReject(rules, st, bob.ID, `{"row":7,"col":7}`).Reason, model.ErrCellOccupied)
	s.ErrorIs(s.mustReject(rules, st, bob.ID, `{"row":15,"col":0}`).Reason, model.ErrInvalidPosition)
}
