package games

import "github.com/mcoot/duelroom/internal/model"

func (s *RulesSuite) TestConnect4VerticalFourWins() {
	rules, st := s.newGame(model.GameConnect4)

	for range 3 {
		st = s.mustPlay(rules, st, alice.ID, `{"column":3}`)
		st = s.mustPlay(rules, st, bob.ID, `{"column":0}`)
	}
	s.False(st.IsOver)
	st = s.mustPlay(rules, st, alice.ID, `{"column":3}`)

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
}

func (s *RulesSuite) TestConnect4DiscsStackFromBottom() {
	rules, st := s.newGame(model.GameConnect4)

	st = s.mustPlay(rules, st, alice.ID, `{"column":2}`)
	st = s.mustPlay(rules, st, bob.ID, `{"column":2}`)

	grid, err := DecodeBoard[Grid](st)
	s.Require().NoError(err)
	s.Equal("red", grid[5][2])
	s.Equal("yellow", grid[4][2])
	s.Equal("", grid[3][2])
}

func (s *RulesSuite) TestConnect4RejectsFullColumn() {
	rules, st := s.newGame(model.GameConnect4)
	for i := range 6 {
		actor := alice.ID
		if i%2 == 1 {
			actor = bob.ID
		}
		st = s.mustPlay(rules, st, actor, `{"column":0}`)
	}

	out := s.mustReject(rules, st, alice.ID, `{"column":0}`)
	s.ErrorIs(out.Reason, model.ErrIllegalMove)
}

func (s *RulesSuite) TestConnect4RejectsOutOfRangeColumn() {
	rules, st := s.newGame(model.GameConnect4)
	s.mustReject(rules, st, alice.ID, `{"column":7}`)
}

func (s *RulesSuite) TestConnect4HorizontalWinAcrossGap() {
	rules, st := s.newGame(model.GameConnect4)

	// red fills columns 0, 1 and 3, then closes the gap at 2
	st = s.mustPlay(rules, st, alice.ID, `{"column":0}`)
	st = s.mustPlay(rules, st, bob.ID, `{"column":0}`)
	st = s.mustPlay(rules, st, alice.ID, `{"column":1}`)
	st = s.mustPlay(rules, st, bob.ID, `{"column":1}`)
	st = s.mustPlay(rules, st, alice.ID, `{"column":3}`)
	st = s.mustPlay(rules, st, bob.ID, `{"column":3}`)
	st = s.mustPlay(rules, st, alice.ID, `{"column":2}`)

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
}
