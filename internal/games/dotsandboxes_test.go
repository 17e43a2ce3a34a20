package games

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

func edge(orientation string, row, col int) string {
	return fmt.Sprintf(`{"orientation":%q,"row":%d,"col":%d}`, orientation, row, col)
}

func (s *RulesSuite) TestDotsAndBoxesClosingBoxScoresAndKeepsTurn() {
	rules, st := s.newGame(model.GameDotsAndBoxes)

	st = s.mustPlay(rules, st, alice.ID, edge("horizontal", 0, 0))
	st = s.mustPlay(rules, st, bob.ID, edge("horizontal", 1, 0))
	st = s.mustPlay(rules, st, alice.ID, edge("vertical", 0, 0))
	s.Equal(bob.ID, st.CurrentPlayerID)

	out := s.play(rules, st, bob.ID, edge("vertical", 0, 1))
	s.Require().True(out.Valid)
	s.Equal(1, out.Extra.BoxesClaimed)
	s.Equal(bob.ID, out.State.CurrentPlayerID)

	board, err := DecodeBoard[DotsAndBoxesBoard](out.State)
	s.Require().NoError(err)
	s.Equal([2]int{0, 1}, board.Scores)
	s.Equal(bob.ID, board.Boxes[0][0])
}

func (s *RulesSuite) TestDotsAndBoxesNoClaimSwitchesTurn() {
	rules, st := s.newGame(model.GameDotsAndBoxes)

	st = s.mustPlay(rules, st, alice.ID, edge("vertical", 2, 3))

	s.Equal(bob.ID, st.CurrentPlayerID)
}

func (s *RulesSuite) TestDotsAndBoxesRejectsDrawnAndOffBoardEdges() {
	rules, st := s.newGame(model.GameDotsAndBoxes)
	st = s.mustPlay(rules, st, alice.ID, edge("horizontal", 3, 2))

	s.ErrorIs(s.mustReject(rules, st, bob.ID, edge("horizontal", 3, 2)).Reason, model.ErrCellOccupied)
	s.ErrorIs(s.mustReject(rules, st, bob.ID, edge("horizontal", 3, 3)).Reason, model.ErrInvalidPosition)
	s.ErrorIs(s.mustReject(rules, st, bob.ID, edge("vertical", 3, 0)).Reason, model.ErrInvalidPosition)
	s.mustReject(rules, st, bob.ID, edge("diagonal", 0, 0))
}

func (s *RulesSuite) TestDotsAndBoxesEndsWhenAllBoxesClaimed() {
	rules, st := s.newGame(model.GameDotsAndBoxes)

	// whoever holds the turn draws every edge in order
	var edges []string
	for r := range 4 {
		for c := range 3 {
			edges = append(edges, edge("horizontal", r, c))
		}
	}
	for r := range 3 {
		for c := range 4 {
			edges = append(edges, edge("vertical", r, c))
		}
	}

	for _, e := range edges {
		st = s.mustPlay(rules, st, st.CurrentPlayerID, e)
	}

	s.True(st.IsOver)
	board, err := DecodeBoard[DotsAndBoxesBoard](st)
	s.Require().NoError(err)
	s.Equal(9, board.Scores[0]+board.Scores[1])
	switch {
	case board.Scores[0] > board.Scores[1]:
		s.Equal(alice.ID, st.WinnerID)
	case board.Scores[1] > board.Scores[0]:
		s.Equal(bob.ID, st.WinnerID)
	default:
		s.True(st.IsDraw)
	}
}
