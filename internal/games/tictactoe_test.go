package games

import "github.com/mcoot/duelroom/internal/model"

func (s *RulesSuite) TestTicTacToeTopRowWins() {
	rules, st := s.newGame(model.GameTicTacToe)

	st = s.mustPlay(rules, st, alice.ID, `{"index":0}`)
	st = s.mustPlay(rules, st, bob.ID, `{"index":3}`)
	st = s.mustPlay(rules, st, alice.ID, `{"index":1}`)
	st = s.mustPlay(rules, st, bob.ID, `{"index":4}`)
	out := s.play(rules, st, alice.ID, `{"index":2}`)
	s.Require().True(out.Valid, out.Reason)
	st = out.State

	s.Equal([]model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, out.Extra.WinningLine)
	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
	s.False(st.IsDraw)
	s.True(st.FirstMoveMade)

	board, err := DecodeBoard[TicTacToeBoard](st)
	s.Require().NoError(err)
	s.Equal(TicTacToeBoard{"X", "X", "X", "O", "O", "", "", "", ""}, board)
}

func (s *RulesSuite) TestTicTacToeDraw() {
	rules, st := s.newGame(model.GameTicTacToe)

	// X O X / X O O / O X X
	for i, idx := range []string{"0", "1", "2", "4", "3", "5", "7", "6", "8"} {
		actor := alice.ID
		if i%2 == 1 {
			actor = bob.ID
		}
		st = s.mustPlay(rules, st, actor, `{"index":`+idx+`}`)
	}

	s.True(st.IsOver)
	s.True(st.IsDraw)
	s.Empty(st.WinnerID)
}

func (s *RulesSuite) TestTicTacToeRejectsOccupiedCell() {
	rules, st := s.newGame(model.GameTicTacToe)
	st = s.mustPlay(rules, st, alice.ID, `{"index":4}`)

	out := s.mustReject(rules, st, bob.ID, `{"index":4}`)
	s.ErrorIs(out.Reason, model.ErrCellOccupied)
}

func (s *RulesSuite) TestTicTacToeRejectsMovesAfterGameOver() {
	rules, st := s.newGame(model.GameTicTacToe)
	for i, idx := range []string{"0", "3", "1", "4", "2"} {
		actor := alice.ID
		if i%2 == 1 {
			actor = bob.ID
		}
		st = s.mustPlay(rules, st, actor, `{"index":`+idx+`}`)
	}

	out := s.mustReject(rules, st, alice.ID, `{"index":8}`)
	s.ErrorIs(out.Reason, model.ErrGameOver)
}
