package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/model"
)

const memoryPairs = 8

// HiddenCardValue stands in for the value of a face-down card in a view
const HiddenCardValue = -1

// MemoryCard is one card of the deck
type MemoryCard struct {
	Value   int  `json:"value"`
	Flipped bool `json:"flipped"`
	Matched bool `json:"matched"`
}

// MemoryMatchBoard is the deck plus the cards flipped in the current attempt
type MemoryMatchBoard struct {
	Cards   []MemoryCard `json:"cards"`
	Pending []int        `json:"pending"`
	Scores  [2]int       `json:"scores"`
}

type memoryMove struct {
	Action    string `json:"action" validate:"omitempty,oneof=flip hide"`
	CardIndex *int   `json:"cardIndex" validate:"omitempty,min=0,max=15"`
}

// MemoryMatch flips pairs of cards looking for matches.
//
// A mismatched pair stays face up until the current player sends a "hide"
// action (clients send it after showing the pair) or the turn timer expires.
type MemoryMatch struct {
	random random.Random
}

func (MemoryMatch) Type() model.GameType        { return model.GameMemoryMatch }
func (MemoryMatch) TurnDuration() time.Duration { return 5 * time.Second }

func (m MemoryMatch) Initialize([]model.Player) (any, error) {
	cards := make([]MemoryCard, 0, memoryPairs*2)
	for v := range memoryPairs {
		cards = append(cards, MemoryCard{Value: v}, MemoryCard{Value: v})
	}
	m.random.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return MemoryMatchBoard{Cards: cards, Pending: []int{}}, nil
}

func (MemoryMatch) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m memoryMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	b, err := decodeBoard[MemoryMatchBoard](st)
	if err != nil {
		return extra, err
	}

	if m.Action == "hide" {
		if len(b.Pending) != 2 {
			return extra, illegal("no mismatched pair to hide")
		}
		b.hidePending()
		st.SwitchTurn()
		return extra, commit(st, b)
	}

	if m.CardIndex == nil {
		return extra, model.ErrMalformedMove
	}
	if len(b.Pending) == 2 {
		return extra, illegal("previous pair has not been hidden")
	}
	idx := *m.CardIndex
	if idx >= len(b.Cards) {
		return extra, model.ErrInvalidPosition
	}
	card := &b.Cards[idx]
	if card.Flipped || card.Matched {
		return extra, model.ErrCellOccupied
	}
	card.Flipped = true
	b.Pending = append(b.Pending, idx)

	if len(b.Pending) < 2 {
		return extra, commit(st, b)
	}

	first, second := &b.Cards[b.Pending[0]], &b.Cards[b.Pending[1]]
	if first.Value != second.Value {
		extra.NoMatch = true
		return extra, commit(st, b)
	}

	first.Matched, second.Matched = true, true
	b.Pending = []int{}
	b.Scores[st.PlayerIndex(actor)]++
	if b.Scores[0]+b.Scores[1] == memoryPairs {
		finishByScore(st, b.Scores)
	}
	return extra, commit(st, b)
}

// Redact masks the value of every face-down card
func (MemoryMatch) Redact(st *model.GameState, _ model.PlayerID) error {
	b, err := decodeBoard[MemoryMatchBoard](st)
	if err != nil {
		return err
	}
	for i := range b.Cards {
		if card := &b.Cards[i]; !card.Flipped && !card.Matched {
			card.Value = HiddenCardValue
		}
	}
	return encodeBoard(st, b)
}

// OnTurnSkipped turns any unmatched face-up cards back down
func (MemoryMatch) OnTurnSkipped(st *model.GameState) error {
	b, err := decodeBoard[MemoryMatchBoard](st)
	if err != nil {
		return err
	}
	b.hidePending()
	return encodeBoard(st, b)
}

func (b *MemoryMatchBoard) hidePending() {
	for _, idx := range b.Pending {
		if !b.Cards[idx].Matched {
			b.Cards[idx].Flipped = false
		}
	}
	b.Pending = []int{}
}
