package games

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

// memoryPair returns the indices of two cards with the same value and one
// card that matches neither
func (s *RulesSuite) memoryPair(st *model.GameState, value int) (int, int, int) {
	b, err := DecodeBoard[MemoryMatchBoard](st)
	s.Require().NoError(err)

	var same []int
	other := -1
	for i, card := range b.Cards {
		switch {
		case card.Value == value:
			same = append(same, i)
		case other < 0 && !card.Matched:
			other = i
		}
	}
	s.Require().Len(same, 2)
	return same[0], same[1], other
}

func flip(idx int) string {
	return fmt.Sprintf(`{"action":"flip","cardIndex":%d}`, idx)
}

func (s *RulesSuite) TestMemoryMatchDeckHoldsEightPairs() {
	_, st := s.newGame(model.GameMemoryMatch)
	b, err := DecodeBoard[MemoryMatchBoard](st)
	s.Require().NoError(err)

	s.Len(b.Cards, 16)
	counts := make(map[int]int)
	for _, card := range b.Cards {
		counts[card.Value]++
		s.False(card.Flipped)
	}
	s.Len(counts, memoryPairs)
	for _, n := range counts {
		s.Equal(2, n)
	}
}

func (s *RulesSuite) TestMemoryMatchPairKeepsTurn() {
	rules, st := s.newGame(model.GameMemoryMatch)
	a, b, _ := s.memoryPair(st, 3)

	st = s.mustPlay(rules, st, alice.ID, flip(a))
	s.Equal(alice.ID, st.CurrentPlayerID)
	out := s.play(rules, st, alice.ID, flip(b))
	s.Require().True(out.Valid, out.Reason)
	s.False(out.Extra.NoMatch)

	board, err := DecodeBoard[MemoryMatchBoard](out.State)
	s.Require().NoError(err)
	s.True(board.Cards[a].Matched)
	s.True(board.Cards[b].Matched)
	s.Empty(board.Pending)
	s.Equal([2]int{1, 0}, board.Scores)
	s.Equal(alice.ID, out.State.CurrentPlayerID)
}

func (s *RulesSuite) TestMemoryMatchMismatchWaitsForHide() {
	rules, st := s.newGame(model.GameMemoryMatch)
	a, _, other := s.memoryPair(st, 0)

	st = s.mustPlay(rules, st, alice.ID, flip(a))
	out := s.play(rules, st, alice.ID, flip(other))
	s.Require().True(out.Valid, out.Reason)
	s.True(out.Extra.NoMatch)
	st = out.State

	board, err := DecodeBoard[MemoryMatchBoard](st)
	s.Require().NoError(err)
	s.Equal([]int{a, other}, board.Pending)
	s.True(board.Cards[a].Flipped)
	s.Equal(alice.ID, st.CurrentPlayerID)

	s.mustReject(rules, st, alice.ID, flip(15-a))

	st = s.mustPlay(rules, st, alice.ID, `{"action":"hide"}`)
	board, err = DecodeBoard[MemoryMatchBoard](st)
	s.Require().NoError(err)
	s.False(board.Cards[a].Flipped)
	s.False(board.Cards[other].Flipped)
	s.Empty(board.Pending)
	s.Equal(bob.ID, st.CurrentPlayerID)
}

func (s *RulesSuite) TestMemoryMatchRejectsBadFlips() {
	rules, st := s.newGame(model.GameMemoryMatch)
	a, _, _ := s.memoryPair(st, 1)

	s.ErrorIs(s.mustReject(rules, st, alice.ID, `{"action":"hide"}`).Reason, model.ErrIllegalMove)
	s.ErrorIs(s.mustReject(rules, st, alice.ID, `{"action":"flip"}`).Reason, model.ErrMalformedMove)
	s.ErrorIs(s.mustReject(rules, st, alice.ID, flip(16)).Reason, model.ErrInvalidPosition)
	s.ErrorIs(s.mustReject(rules, st, alice.ID, `{"action":"peek","cardIndex":0}`).Reason, model.ErrInvalidPosition)

	st = s.mustPlay(rules, st, alice.ID, flip(a))
	s.ErrorIs(s.mustReject(rules, st, alice.ID, flip(a)).Reason, model.ErrCellOccupied)
}

func (s *RulesSuite) TestMemoryMatchSkipHidesPendingCards() {
	rules, st := s.newGame(model.GameMemoryMatch)
	a, _, other := s.memoryPair(st, 2)
	st = s.mustPlay(rules, st, alice.ID, flip(a))
	st = s.mustPlay(rules, st, alice.ID, flip(other))

	next, err := s.catalog.SkipTurn(rules, st)
	s.Require().NoError(err)

	board, err := DecodeBoard[MemoryMatchBoard](next)
	s.Require().NoError(err)
	s.False(board.Cards[a].Flipped)
	s.False(board.Cards[other].Flipped)
	s.Empty(board.Pending)
	s.Equal(bob.ID, next.CurrentPlayerID)
}

func (s *RulesSuite) TestMemoryMatchAllPairsEndsGame() {
	rules, st := s.newGame(model.GameMemoryMatch)

	for value := range memoryPairs {
		a, b, _ := s.memoryPair(st, value)
		st = s.mustPlay(rules, st, alice.ID, flip(a))
		st = s.mustPlay(rules, st, alice.ID, flip(b))
	}

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
}

func (s *RulesSuite) TestMemoryMatchViewMasksFaceDownCards() {
	rules, st := s.newGame(model.GameMemoryMatch)
	a, _, _ := s.memoryPair(st, 3)
	st = s.mustPlay(rules, st, alice.ID, flip(a))

	b, err := DecodeBoard[MemoryMatchBoard](s.catalog.View(st, alice.ID))
	s.Require().NoError(err)
	s.Equal(3, b.Cards[a].Value)
	for i, card := range b.Cards {
		if i != a {
			s.Equal(HiddenCardValue, card.Value)
		}
	}
}
