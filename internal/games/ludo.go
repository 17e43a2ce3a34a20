package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/model"
)

const (
	// LudoHome is the position of a piece that has not entered the track
	LudoHome = 0
	// LudoFinish is the last track position; a piece there is finished
	LudoFinish = 57

	ludoPieces    = 2
	ludoEntryRoll = 6
)

// LudoBoard tracks two pieces per seat and the current dice roll
type LudoBoard struct {
	Pieces    [2][ludoPieces]int `json:"pieces"`
	Finished  [2]int             `json:"finished"`
	DiceValue int                `json:"diceValue"`
	Rolled    bool               `json:"rolled"`
}

type ludoMove struct {
	Action     string `json:"action" validate:"required,oneof=rollDice movePiece"`
	PieceIndex *int   `json:"pieceIndex" validate:"omitempty,min=0,max=1"`
}

// Ludo is a two-piece race with a six to leave home
type Ludo struct {
	random random.Random
}

func (Ludo) Type() model.GameType        { return model.GameLudo }
func (Ludo) TurnDuration() time.Duration { return 6 * time.Second }

func (Ludo) Initialize([]model.Player) (any, error) {
	return LudoBoard{}, nil
}

func (l Ludo) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m ludoMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	b, err := decodeBoard[LudoBoard](st)
	if err != nil {
		return extra, err
	}

	seat := st.PlayerIndex(actor)
	if m.Action == "rollDice" {
		if b.Rolled {
			return extra, illegal("dice already rolled")
		}
		b.DiceValue = l.random.Intn(6) + 1
		extra.DiceValue = b.DiceValue
		if CanPlayerMove(b.Pieces[seat], b.DiceValue) {
			b.Rolled = true
		} else {
			extra.TurnForfeited = true
			st.SwitchTurn()
		}
		return extra, commit(st, b)
	}

	if !b.Rolled {
		return extra, illegal("roll the dice first")
	}
	if m.PieceIndex == nil {
		return extra, model.ErrMalformedMove
	}
	piece := *m.PieceIndex
	next, ok := advance(b.Pieces[seat][piece], b.DiceValue)
	if !ok {
		return extra, illegal("piece %d cannot move %d", piece, b.DiceValue)
	}

	b.Pieces[seat][piece] = next
	b.Rolled = false
	extra.DiceValue = b.DiceValue
	if next == LudoFinish {
		b.Finished[seat]++
	}

	switch {
	case b.Finished[seat] == ludoPieces:
		st.Finish(actor)
	case b.DiceValue != ludoEntryRoll:
		st.SwitchTurn()
	}
	return extra, commit(st, b)
}

// OnTurnSkipped discards a roll the skipped player never used
func (Ludo) OnTurnSkipped(st *model.GameState) error {
	b, err := decodeBoard[LudoBoard](st)
	if err != nil {
		return err
	}
	b.Rolled = false
	return encodeBoard(st, b)
}

// CanPlayerMove reports whether any of the pieces can use the roll
func CanPlayerMove(pieces [ludoPieces]int, dice int) bool {
	for _, pos := range pieces {
		if _, ok := advance(pos, dice); ok {
			return true
		}
	}
	return false
}

// advance returns where a piece lands with the roll, or false if it cannot move
func advance(pos, dice int) (int, bool) {
	switch {
	case pos == LudoFinish:
		return pos, false
	case pos == LudoHome:
		if dice != ludoEntryRoll {
			return pos, false
		}
		return 1, true
	case pos+dice > LudoFinish:
		return pos, false
	default:
		return pos + dice, true
	}
}
