package games

import (
	"github.com/mcoot/duelroom/internal/model"
)

// checkersBoard places pieces on an otherwise empty board
func checkersBoard(pieces map[model.Position]string) Grid {
	g := NewGrid(checkersSize, checkersSize)
	for p, piece := range pieces {
		g[p.Row][p.Col] = piece
	}
	return g
}

func (s *RulesSuite) checkersGame(pieces map[model.Position]string) (Rules, *model.GameState) {
	rules, st := s.newGame(model.GameCheckers)
	s.Require().NoError(encodeBoard(st, checkersBoard(pieces)))
	return rules, st
}

func (s *RulesSuite) TestCheckersStartingPosition() {
	_, st := s.newGame(model.GameCheckers)
	grid, err := DecodeBoard[Grid](st)
	s.Require().NoError(err)

	s.Equal(12, countPieces(grid, "red"))
	s.Equal(12, countPieces(grid, "black"))
	s.Equal("red", grid[5][0])
	s.Equal("black", grid[0][1])
	s.Empty(grid[4][1])
}

func (s *RulesSuite) TestCheckersSimpleStep() {
	rules, st := s.newGame(model.GameCheckers)

	st = s.mustPlay(rules, st, alice.ID, `{"fromRow":5,"fromCol":0,"toRow":4,"toCol":1}`)
	grid, err := DecodeBoard[Grid](st)
	s.Require().NoError(err)

	s.Empty(grid[5][0])
	s.Equal("red", grid[4][1])
	s.Equal(bob.ID, st.CurrentPlayerID)
	s.True(st.FirstMoveMade)

	st = s.mustPlay(rules, st, bob.ID, `{"fromRow":2,"fromCol":1,"toRow":3,"toCol":2}`)
	s.Equal(alice.ID, st.CurrentPlayerID)
}

func (s *RulesSuite) TestCheckersRejectsIllegalMoves() {
	rules, st := s.newGame(model.GameCheckers)

	s.mustReject(rules, st, alice.ID, `{"fromRow":2,"fromCol":1,"toRow":3,"toCol":0}`)
	s.mustReject(rules, st, alice.ID, `{"fromRow":5,"fromCol":0,"toRow":4,"toCol":0}`)
	s.mustReject(rules, st, alice.ID, `{"fromRow":5,"fromCol":0,"toRow":2,"toCol":3}`)
	out := s.mustReject(rules, st, alice.ID, `{"fromRow":6,"fromCol":1,"toRow":5,"toCol":0}`)
	s.ErrorIs(out.Reason, model.ErrCellOccupied)
	out = s.mustReject(rules, st, alice.ID, `{"fromRow":5,"fromCol":0,"toRow":8,"toCol":3}`)
	s.ErrorIs(out.Reason, model.ErrInvalidPosition)
}

func (s *RulesSuite) TestCheckersMenCannotMoveBackward() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 4, Col: 3}: "red",
		{Row: 0, Col: 1}: "black",
	})

	out := s.mustReject(rules, st, alice.ID, `{"fromRow":4,"fromCol":3,"toRow":5,"toCol":4}`)
	s.ErrorIs(out.Reason, model.ErrIllegalMove)
}

func (s *RulesSuite) TestCheckersManJumpsBackward() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 2, Col: 3}: "red",
		{Row: 3, Col: 4}: "black",
		{Row: 0, Col: 1}: "black",
	})

	out := s.play(rules, st, alice.ID, `{"fromRow":2,"fromCol":3,"toRow":4,"toCol":5}`)
	s.Require().True(out.Valid, out.Reason)
	s.True(out.Extra.Captured)

	grid, err := DecodeBoard[Grid](out.State)
	s.Require().NoError(err)
	s.Empty(grid[2][3])
	s.Empty(grid[3][4])
	s.Equal("red", grid[4][5])
	s.Equal(bob.ID, out.State.CurrentPlayerID)
}

func (s *RulesSuite) TestCheckersKingsMoveBackward() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 4, Col: 3}: "red-king",
		{Row: 0, Col: 1}: "black",
	})

	st = s.mustPlay(rules, st, alice.ID, `{"fromRow":4,"fromCol":3,"toRow":5,"toCol":4}`)
	grid, err := DecodeBoard[Grid](st)
	s.Require().NoError(err)
	s.Equal("red-king", grid[5][4])
}

func (s *RulesSuite) TestCheckersJumpCaptures() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 5, Col: 2}: "red",
		{Row: 4, Col: 3}: "black",
		{Row: 0, Col: 1}: "black",
	})

	out := s.play(rules, st, alice.ID, `{"fromRow":5,"fromCol":2,"toRow":3,"toCol":4}`)
	s.Require().True(out.Valid, out.Reason)
	s.True(out.Extra.Captured)

	grid, err := DecodeBoard[Grid](out.State)
	s.Require().NoError(err)
	s.Empty(grid[4][3])
	s.Equal("red", grid[3][4])
	s.Equal(1, countPieces(grid, "black"))
	s.False(out.State.IsOver)
	s.Equal(bob.ID, out.State.CurrentPlayerID)
}

func (s *RulesSuite) TestCheckersJumpNeedsOpposingPiece() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 5, Col: 2}: "red",
		{Row: 4, Col: 3}: "red",
		{Row: 0, Col: 1}: "black",
	})
	s.mustReject(rules, st, alice.ID, `{"fromRow":5,"fromCol":2,"toRow":3,"toCol":4}`)

	rules, st = s.checkersGame(map[model.Position]string{
		{Row: 5, Col: 2}: "red",
		{Row: 0, Col: 1}: "black",
	})
	s.mustReject(rules, st, alice.ID, `{"fromRow":5,"fromCol":2,"toRow":3,"toCol":4}`)
}

func (s *RulesSuite) TestCheckersPromotion() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 1, Col: 2}: "red",
		{Row: 6, Col: 5}: "black",
	})

	st = s.mustPlay(rules, st, alice.ID, `{"fromRow":1,"fromCol":2,"toRow":0,"toCol":3}`)
	st = s.mustPlay(rules, st, bob.ID, `{"fromRow":6,"fromCol":5,"toRow":7,"toCol":4}`)

	grid, err := DecodeBoard[Grid](st)
	s.Require().NoError(err)
	s.Equal("red-king", grid[0][3])
	s.Equal("black-king", grid[7][4])
}

func (s *RulesSuite) TestCheckersCapturingLastPieceWins() {
	rules, st := s.checkersGame(map[model.Position]string{
		{Row: 5, Col: 2}: "red",
		{Row: 4, Col: 3}: "black",
	})

	out := s.play(rules, st, alice.ID, `{"fromRow":5,"fromCol":2,"toRow":3,"toCol":4}`)
	s.Require().True(out.Valid, out.Reason)
	s.True(out.State.IsOver)
	s.Equal(alice.ID, out.State.WinnerID)

	s.mustReject(rules, out.State, bob.ID, `{"fromRow":0,"fromCol":1,"toRow":1,"toCol":0}`)
}
