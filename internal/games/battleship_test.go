package games

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

// standardFleet lines the five ships up along the left edge of rows 0 to 4
const standardFleet = `{"ships":[
	{"size":5,"cells":[{"row":0,"col":0},{"row":0,"col":1},{"row":0,"col":2},{"row":0,"col":3},{"row":0,"col":4}]},
	{"size":4,"cells":[{"row":1,"col":0},{"row":1,"col":1},{"row":1,"col":2},{"row":1,"col":3}]},
	{"size":3,"cells":[{"row":2,"col":0},{"row":2,"col":1},{"row":2,"col":2}]},
	{"size":3,"cells":[{"row":3,"col":0},{"row":3,"col":1},{"row":3,"col":2}]},
	{"size":2,"cells":[{"row":4,"col":0},{"row":4,"col":1}]}
]}`

// standardFleetCells lists every occupied cell of standardFleet
var standardFleetCells = func() []model.Position {
	var cells []model.Position
	for row, size := range []int{5, 4, 3, 3, 2} {
		for col := range size {
			cells = append(cells, model.Position{Row: row, Col: col})
		}
	}
	return cells
}()

func shot(row, col int) string {
	return fmt.Sprintf(`{"row":%d,"col":%d}`, row, col)
}

func (s *RulesSuite) battleshipInPlay() (Rules, *model.GameState) {
	rules, st := s.newGame(model.GameBattleship)
	st = s.mustPlay(rules, st, alice.ID, standardFleet)
	st = s.mustPlay(rules, st, bob.ID, standardFleet)
	return rules, st
}

func (s *RulesSuite) TestBattleshipSetupPhase() {
	rules, st := s.newGame(model.GameBattleship)

	// either player may place first
	st = s.mustPlay(rules, st, bob.ID, standardFleet)
	b, err := DecodeBoard[BattleshipBoard](st)
	s.Require().NoError(err)
	s.Equal(PhaseSetup, b.Phase)
	s.False(st.FirstMoveMade)
	s.Len(b.Fleets[bob.ID].Ships, 5)

	out := s.mustReject(rules, st, bob.ID, standardFleet)
	s.ErrorIs(out.Reason, model.ErrIllegalMove)

	st = s.mustPlay(rules, st, alice.ID, standardFleet)
	b, err = DecodeBoard[BattleshipBoard](st)
	s.Require().NoError(err)
	s.Equal(PhasePlaying, b.Phase)
	s.True(st.FirstMoveMade)
	s.Equal(alice.ID, st.CurrentPlayerID)
}

func (s *RulesSuite) TestBattleshipRejectsBadFleets() {
	rules, st := s.newGame(model.GameBattleship)

	tests := map[string]string{
		"shot during setup": shot(0, 0),
		"missing ship": `{"ships":[
			{"size":5,"cells":[{"row":0,"col":0},{"row":0,"col":1},{"row":0,"col":2},{"row":0,"col":3},{"row":0,"col":4}]}
		]}`,
		"bent ship": `{"ships":[
			{"size":5,"cells":[{"row":0,"col":0},{"row":0,"col":1},{"row":0,"col":2},{"row":0,"col":3},{"row":0,"col":4}]},
			{"size":4,"cells":[{"row":1,"col":0},{"row":1,"col":1},{"row":2,"col":1},{"row":2,"col":2}]},
			{"size":3,"cells":[{"row":5,"col":0},{"row":5,"col":1},{"row":5,"col":2}]},
			{"size":3,"cells":[{"row":3,"col":0},{"row":3,"col":1},{"row":3,"col":2}]},
			{"size":2,"cells":[{"row":4,"col":0},{"row":4,"col":1}]}
		]}`,
		"overlapping ships": `{"ships":[
			{"size":5,"cells":[{"row":0,"col":0},{"row":0,"col":1},{"row":0,"col":2},{"row":0,"col":3},{"row":0,"col":4}]},
			{"size":4,"cells":[{"row":0,"col":0},{"row":1,"col":0},{"row":2,"col":0},{"row":3,"col":0}]},
			{"size":3,"cells":[{"row":5,"col":0},{"row":5,"col":1},{"row":5,"col":2}]},
			{"size":3,"cells":[{"row":6,"col":0},{"row":6,"col":1},{"row":6,"col":2}]},
			{"size":2,"cells":[{"row":7,"col":0},{"row":7,"col":1}]}
		]}`,
		"off the board": `{"ships":[
			{"size":5,"cells":[{"row":0,"col":6},{"row":0,"col":7},{"row":0,"col":8},{"row":0,"col":9},{"row":0,"col":10}]},
			{"size":4,"cells":[{"row":1,"col":0},{"row":1,"col":1},{"row":1,"col":2},{"row":1,"col":3}]},
			{"size":3,"cells":[{"row":2,"col":0},{"row":2,"col":1},{"row":2,"col":2}]},
			{"size":3,"cells":[{"row":3,"col":0},{"row":3,"col":1},{"row":3,"col":2}]},
			{"size":2,"cells":[{"row":4,"col":0},{"row":4,"col":1}]}
		]}`,
	}
	for name, move := range tests {
		s.Run(name, func() {
			s.mustReject(rules, st, alice.ID, move)
		})
	}
}

func (s *RulesSuite) TestBattleshipVerticalFleetAccepted() {
	rules, st := s.newGame(model.GameBattleship)
	s.mustPlay(rules, st, alice.ID, `{"ships":[
		{"size":5,"cells":[{"row":5,"col":9},{"row":6,"col":9},{"row":7,"col":9},{"row":8,"col":9},{"row":9,"col":9}]},
		{"size":4,"cells":[{"row":0,"col":0},{"row":1,"col":0},{"row":2,"col":0},{"row":3,"col":0}]},
		{"size":3,"cells":[{"row":0,"col":2},{"row":1,"col":2},{"row":2,"col":2}]},
		{"size":3,"cells":[{"row":0,"col":4},{"row":1,"col":4},{"row":2,"col":4}]},
		{"size":2,"cells":[{"row":8,"col":0},{"row":9,"col":0}]}
	]}`)
}

func (s *RulesSuite) TestBattleshipHitAndMiss() {
	rules, st := s.battleshipInPlay()

	out := s.play(rules, st, alice.ID, shot(0, 0))
	s.Require().True(out.Valid, out.Reason)
	s.Require().NotNil(out.Extra.Hit)
	s.True(*out.Extra.Hit)
	s.False(out.Extra.Sunk)
	s.Equal(bob.ID, out.State.CurrentPlayerID)

	out = s.play(rules, out.State, bob.ID, shot(9, 9))
	s.Require().True(out.Valid, out.Reason)
	s.Require().NotNil(out.Extra.Hit)
	s.False(*out.Extra.Hit)
	s.Equal(alice.ID, out.State.CurrentPlayerID)

	b, err := DecodeBoard[BattleshipBoard](out.State)
	s.Require().NoError(err)
	s.Equal(ShotHit, b.Fleets[alice.ID].Shots[0])
	s.Equal(ShotMiss, b.Fleets[bob.ID].Shots[99])

	rej := s.mustReject(rules, out.State, alice.ID, shot(0, 0))
	s.ErrorIs(rej.Reason, model.ErrCellOccupied)
	rej = s.mustReject(rules, out.State, alice.ID, shot(10, 0))
	s.ErrorIs(rej.Reason, model.ErrInvalidPosition)
}

func (s *RulesSuite) TestBattleshipSinkingAShip() {
	rules, st := s.battleshipInPlay()

	st = s.mustPlay(rules, st, alice.ID, shot(4, 0))
	st = s.mustPlay(rules, st, bob.ID, shot(9, 9))

	out := s.play(rules, st, alice.ID, shot(4, 1))
	s.Require().True(out.Valid, out.Reason)
	s.True(out.Extra.Sunk)
	s.False(out.State.IsOver)
}

func (s *RulesSuite) TestBattleshipSinkingFleetWins() {
	rules, st := s.battleshipInPlay()

	misses := 0
	for i, cell := range standardFleetCells {
		st = s.mustPlay(rules, st, alice.ID, shot(cell.Row, cell.Col))
		if i == len(standardFleetCells)-1 {
			break
		}
		st = s.mustPlay(rules, st, bob.ID, shot(9-misses/10, misses%10))
		misses++
	}

	s.True(st.IsOver)
	s.Equal(alice.ID, st.WinnerID)
	s.ErrorIs(s.mustReject(rules, st, bob.ID, shot(7, 0)).Reason, model.ErrGameOver)
}

func (s *RulesSuite) TestBattleshipViewHidesOpponentShips() {
	rules, st := s.newGame(model.GameBattleship)
	st = s.mustPlay(rules, st, alice.ID, standardFleet)

	b, err := DecodeBoard[BattleshipBoard](s.catalog.View(st, bob.ID))
	s.Require().NoError(err)
	s.True(b.Fleets[alice.ID].Ready)
	s.Empty(b.Fleets[alice.ID].Ships)
	s.False(b.Fleets[bob.ID].Ready)

	b, err = DecodeBoard[BattleshipBoard](s.catalog.View(st, alice.ID))
	s.Require().NoError(err)
	s.Len(b.Fleets[alice.ID].Ships, 5)

	stored, err := DecodeBoard[BattleshipBoard](st)
	s.Require().NoError(err)
	s.Len(stored.Fleets[alice.ID].Ships, 5)
}

func (s *RulesSuite) TestBattleshipViewRevealsSunkShips() {
	rules, st := s.battleshipInPlay()
	st = s.mustPlay(rules, st, alice.ID, shot(4, 0))
	st = s.mustPlay(rules, st, bob.ID, shot(9, 9))
	st = s.mustPlay(rules, st, alice.ID, shot(4, 1))

	b, err := DecodeBoard[BattleshipBoard](s.catalog.View(st, alice.ID))
	s.Require().NoError(err)
	s.Require().Len(b.Fleets[bob.ID].Ships, 1)
	s.Equal(2, b.Fleets[bob.ID].Ships[0].Size)
	s.Equal(ShotHit, b.Fleets[alice.ID].Shots[4*battleshipSize])

	b, err = DecodeBoard[BattleshipBoard](s.catalog.View(st, bob.ID))
	s.Require().NoError(err)
	s.Empty(b.Fleets[alice.ID].Ships)
	s.Len(b.Fleets[bob.ID].Ships, 5)
}

func (s *RulesSuite) TestBattleshipViewOfFinishedGameIsFull() {
	_, st := s.battleshipInPlay()
	st.Finish(alice.ID)

	s.Same(st, s.catalog.View(st, bob.ID))
}
