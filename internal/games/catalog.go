package games

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/model"
)

// Rules is the capability set of one game variant
type Rules interface {
	// Type returns the game this rule set implements
	Type() model.GameType

	// TurnDuration is the per-move countdown, or zero when the game has none
	TurnDuration() time.Duration

	// Initialize returns the starting board for the given seats
	Initialize(players []model.Player) (any, error)

	// Apply validates the move and mutates st in place. On error st must be
	// considered garbage; callers pass a copy.
	Apply(st *model.GameState, actor model.PlayerID, move json.RawMessage) (model.MoveExtra, error)
}

// TurnSkipper is implemented by rules that hold per-turn state which must be
// discarded when a turn timer expires
type TurnSkipper interface {
	OnTurnSkipped(st *model.GameState) error
}

// Redactor is implemented by rules whose boards hold information that not
// every viewer may see while the game runs
type Redactor interface {
	// Redact rewrites st's board as viewer sees it. An empty viewer is an
	// observer without a seat.
	Redact(st *model.GameState, viewer model.PlayerID) error
}

// Outcome is the result of applying a move to a game state
type Outcome struct {
	State *model.GameState
	Valid bool
	Extra model.MoveExtra

	// Reason explains a rejection. It is never sent to clients.
	Reason error
}

// Info describes a registered game
type Info struct {
	GameType    model.GameType `json:"gameType"`
	TurnSeconds int            `json:"turnSeconds"`
}

// Catalog holds the rule set of every supported game
type Catalog struct {
	mu        sync.RWMutex
	rules     map[model.GameType]Rules
	durations map[model.GameType]time.Duration
}

// NewCatalog creates a catalog with all ten games registered
func NewCatalog(rnd random.Random) *Catalog {
	c := &Catalog{
		rules:     make(map[model.GameType]Rules),
		durations: make(map[model.GameType]time.Duration),
	}
	c.Register(TicTacToe{})
	c.Register(Connect4{})
	c.Register(Checkers{})
	c.Register(Gomoku{})
	c.Register(MiniChess{})
	c.Register(DotsAndBoxes{})
	c.Register(Ludo{random: rnd})
	c.Register(MemoryMatch{random: rnd})
	c.Register(Minesweeper{random: rnd})
	c.Register(Battleship{})
	return c
}

// Register adds a rule set. Panics on duplicate game types.
func (c *Catalog) Register(r Rules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.rules[r.Type()]; exists {
		panic(fmt.Sprintf("game %q already registered", r.Type()))
	}
	c.rules[r.Type()] = r
}

// Get returns the rule set for a game type
func (c *Catalog) Get(t model.GameType) (Rules, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rules[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameType, t)
	}
	return r, nil
}

// SetTurnDuration overrides the countdown of a game. A zero duration disables it.
func (c *Catalog) SetTurnDuration(t model.GameType, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations[t] = d
}

// TurnDuration returns the effective countdown of a game
func (c *Catalog) TurnDuration(r Rules) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.durations[r.Type()]; ok {
		return d
	}
	return r.TurnDuration()
}

// List returns info for every registered game in display order
func (c *Catalog) List() []Info {
	infos := make([]Info, 0, len(model.AllGameTypes))
	for _, t := range model.AllGameTypes {
		r, err := c.Get(t)
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			GameType:    t,
			TurnSeconds: int(c.TurnDuration(r) / time.Second),
		})
	}
	return infos
}

// NewState builds the initial state of a game for the given seats.
// The first seat moves first.
func (c *Catalog) NewState(r Rules, players []model.Player) (*model.GameState, error) {
	if len(players) != model.MaxRoomPlayers {
		return nil, model.ErrNotEnoughPlayers
	}
	board, err := r.Initialize(players)
	if err != nil {
		return nil, err
	}
	st := &model.GameState{
		GameType:        r.Type(),
		CurrentPlayerID: players[0].ID,
		Players:         append([]model.Player(nil), players...),
	}
	if err := encodeBoard(st, board); err != nil {
		return nil, err
	}
	return st, nil
}

// Apply runs a move against a copy of st. A rejected move returns st itself.
func (c *Catalog) Apply(r Rules, st *model.GameState, actor model.PlayerID, move json.RawMessage) Outcome {
	if r.Type() != st.GameType {
		return Outcome{State: st, Reason: model.ErrGameMismatch}
	}
	if st.PlayerIndex(actor) < 0 {
		return Outcome{State: st, Reason: model.ErrNotInRoom}
	}

	next := st.Clone()
	extra, err := r.Apply(next, actor, move)
	if err != nil {
		return Outcome{State: st, Reason: err}
	}
	return Outcome{State: next, Valid: true, Extra: extra}
}

// View returns st as viewer may see it. Finished games are shown in full and
// the stored state is never modified.
func (c *Catalog) View(st *model.GameState, viewer model.PlayerID) *model.GameState {
	if st == nil || st.IsOver {
		return st
	}
	r, err := c.Get(st.GameType)
	if err != nil {
		return st
	}
	redactor, ok := r.(Redactor)
	if !ok {
		return st
	}

	view := st.Clone()
	if err := redactor.Redact(view, viewer); err != nil {
		view.Board = nil
	}
	return view
}

// SkipTurn returns a copy of st with the turn handed to the other player
func (c *Catalog) SkipTurn(r Rules, st *model.GameState) (*model.GameState, error) {
	next := st.Clone()
	if skipper, ok := r.(TurnSkipper); ok {
		if err := skipper.OnTurnSkipped(next); err != nil {
			return nil, err
		}
	}
	next.SwitchTurn()
	return next, nil
}
