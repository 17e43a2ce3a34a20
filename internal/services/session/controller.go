package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/duelroom/internal/games"
	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/services/room"
	"github.com/mcoot/duelroom/internal/services/turntimer"
	"github.com/mcoot/duelroom/internal/storage"
)

// Notifier delivers events to individual connected players. Sends must not
// block.
type Notifier interface {
	Send(playerID model.PlayerID, event model.Event)
}

// Snapshot is a point-in-time view of a room for inspection
type Snapshot struct {
	Room      *model.Room      `json:"room"`
	GameState *model.GameState `json:"gameState,omitempty"`
	TimeLeft  *int             `json:"timeLeft,omitempty"`
}

// Controller turns player actions into room and game mutations and the
// events that describe them.
//
// Every mutation of a room, its game state and its turn timer happens under
// that room's lock, including timer callbacks.
type Controller struct {
	registry  *room.Registry
	storage   storage.Storage
	catalog   *games.Catalog
	scheduler *turntimer.Scheduler
	notifier  Notifier
	logger    *slog.Logger

	mu    sync.Mutex
	rooms map[model.RoomCode]*roomEntry
}

// roomEntry is the per-room serialization point. rules is the rule set picked
// at game selection.
type roomEntry struct {
	mu    sync.Mutex
	rules games.Rules
}

// Ensure Controller can drive the scheduler
var _ turntimer.Handler = (*Controller)(nil)

// NewController creates a new session Controller
func NewController(
	registry *room.Registry,
	storage storage.Storage,
	catalog *games.Catalog,
	scheduler *turntimer.Scheduler,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry:  registry,
		storage:   storage,
		catalog:   catalog,
		scheduler: scheduler,
		notifier:  notifier,
		logger:    logger,
		rooms:     make(map[model.RoomCode]*roomEntry),
	}
}

// lock returns the room's entry with its mutex held. An entry forgotten or
// pruned while this call waited for it is abandoned for the current one.
func (c *Controller) lock(code model.RoomCode) *roomEntry {
	for {
		c.mu.Lock()
		entry, ok := c.rooms[code]
		if !ok {
			entry = &roomEntry{}
			c.rooms[code] = entry
		}
		c.mu.Unlock()

		entry.mu.Lock()
		c.mu.Lock()
		current := c.rooms[code] == entry
		c.mu.Unlock()
		if current {
			return entry
		}
		entry.mu.Unlock()
	}
}

func (c *Controller) forget(code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, code)
}

// Prune drops lock entries left behind by actions on rooms that no longer
// exist. Busy entries are skipped and picked up on a later run.
func (c *Controller) Prune(ctx context.Context) (int, error) {
	c.mu.Lock()
	codes := make([]model.RoomCode, 0, len(c.rooms))
	for code := range c.rooms {
		codes = append(codes, code)
	}
	c.mu.Unlock()

	pruned := 0
	for _, code := range codes {
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return pruned, err
		}
		if exists {
			continue
		}

		c.mu.Lock()
		if entry, ok := c.rooms[code]; ok && entry.mu.TryLock() {
			delete(c.rooms, code)
			entry.mu.Unlock()
			pruned++
		}
		c.mu.Unlock()
	}
	return pruned, nil
}

// CreateRoom opens a new room hosted by the player
func (c *Controller) CreateRoom(ctx context.Context, playerID model.PlayerID, name string) {
	r, err := c.registry.CreateRoom(ctx, model.Player{ID: playerID, Name: name})
	if err != nil {
		c.fail(playerID, err)
		return
	}

	c.notifier.Send(playerID, model.Event{
		Type:    model.EventRoomCreated,
		Payload: model.RoomEnteredPayload{RoomCode: r.Code, IsHost: true},
	})
	c.notifier.Send(playerID, model.Event{
		Type:    model.EventPlayerJoined,
		Payload: model.PlayersPayload{RoomCode: r.Code, Players: r.Players},
	})
}

// JoinRoom seats the player in an existing room
func (c *Controller) JoinRoom(ctx context.Context, playerID model.PlayerID, code model.RoomCode, name string) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	r, err := c.registry.JoinRoom(ctx, code, model.Player{ID: playerID, Name: name})
	if err != nil {
		c.fail(playerID, err)
		return
	}

	c.notifier.Send(playerID, model.Event{
		Type:    model.EventRoomJoined,
		Payload: model.RoomEnteredPayload{RoomCode: code, IsHost: r.IsHost(playerID)},
	})
	c.broadcast(r.Players, model.Event{
		Type:    model.EventPlayerJoined,
		Payload: model.PlayersPayload{RoomCode: code, Players: r.Players},
	})
}

// SelectGame starts a fresh game of the host's choosing
func (c *Controller) SelectGame(ctx context.Context, playerID model.PlayerID, code model.RoomCode, gameType model.GameType) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	rules, _, err := c.registry.SelectGame(ctx, code, gameType, playerID)
	if err != nil {
		c.fail(playerID, err)
		return
	}
	entry.rules = rules
	c.scheduler.Cancel(code)

	r, err := c.registry.GetRoom(ctx, code)
	if err != nil {
		c.logger.Error("room vanished after game selection",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}
	c.broadcast(r.Players, model.Event{
		Type:    model.EventGameSelected,
		Payload: model.GameSelectedPayload{GameType: gameType},
	})
}

// MakeMove applies a move and broadcasts the result to the room, valid or
// not. Moves for a missing room or game, from outside the room, or naming a
// different game than the one running produce no broadcast.
func (c *Controller) MakeMove(
	ctx context.Context,
	playerID model.PlayerID,
	code model.RoomCode,
	gameType model.GameType,
	move json.RawMessage,
) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	r, state, ok := c.load(ctx, code)
	if !ok {
		return
	}
	if !r.HasPlayer(playerID) || gameType != state.GameType {
		c.logger.Debug("move ignored",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(playerID)),
			slog.String("game_type", string(gameType)),
		)
		return
	}
	rules, err := c.rulesFor(entry, state)
	if err != nil {
		return
	}

	out := c.catalog.Apply(rules, state, playerID, move)
	if !out.Valid {
		c.logger.Debug("move rejected",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(playerID)),
			slog.String("reason", out.Reason.Error()),
		)
		c.broadcastState(r.Players, state, func(view *model.GameState) model.Event {
			return model.Event{
				Type:    model.EventGameUpdate,
				Payload: model.GameUpdatePayload{GameState: view, Valid: false},
			}
		})
		return
	}

	// the old countdown must be dead before the new state is visible
	c.scheduler.Cancel(code)
	if err := c.storage.SaveGameState(ctx, code, out.State); err != nil {
		c.logger.Error("failed to save game state",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}

	c.broadcastState(r.Players, out.State, func(view *model.GameState) model.Event {
		return model.Event{
			Type:    model.EventGameUpdate,
			Payload: model.GameUpdatePayload{GameState: view, Valid: true, MoveExtra: out.Extra},
		}
	})

	if out.State.IsOver {
		c.logger.Info("game finished",
			slog.String("room_code", string(code)),
			slog.String("game_type", string(state.GameType)),
			slog.String("winner", string(out.State.WinnerID)),
			slog.Bool("draw", out.State.IsDraw),
		)
		return
	}
	if out.State.FirstMoveMade {
		c.startTimer(code, rules)
	}
}

// RequestGameState sends the room's current game state to the requester only
func (c *Controller) RequestGameState(ctx context.Context, playerID model.PlayerID, code model.RoomCode) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	state, err := c.storage.GetGameState(ctx, code)
	if err != nil {
		return
	}
	c.notifier.Send(playerID, model.Event{
		Type:    model.EventGameUpdate,
		Payload: model.GameUpdatePayload{GameState: c.catalog.View(state, playerID), Valid: true},
	})
}

// Disconnect removes the player from every room it sits in
func (c *Controller) Disconnect(ctx context.Context, playerID model.PlayerID) {
	codes, err := c.registry.RoomsForPlayer(ctx, playerID)
	if err != nil {
		c.logger.Error("failed to find rooms for player",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, code := range codes {
		c.leave(ctx, playerID, code)
	}
}

func (c *Controller) leave(ctx context.Context, playerID model.PlayerID, code model.RoomCode) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	result, err := c.registry.LeaveRoom(ctx, code, playerID)
	if err != nil {
		if !errors.Is(err, model.ErrNotInRoom) && !errors.Is(err, model.ErrRoomNotFound) {
			c.logger.Error("failed to leave room",
				slog.String("room_code", string(code)),
				slog.String("player_id", string(playerID)),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	if result.Deleted {
		c.scheduler.Release(code)
		entry.rules = nil
		c.forget(code)
	} else if result.GameEnded {
		c.scheduler.Cancel(code)
		entry.rules = nil
	}

	c.broadcast(result.Remaining, model.Event{
		Type:    model.EventPlayerLeft,
		Payload: model.PlayerLeftPayload{Players: result.Remaining},
	})
	if result.Deleted {
		c.broadcast(result.Remaining, model.Event{
			Type:    model.EventRoomClosed,
			Payload: model.RoomClosedPayload{RoomCode: code},
		})
	}
}

// Snapshot returns the room with its game state and time left, if any
func (c *Controller) Snapshot(ctx context.Context, code model.RoomCode) (*Snapshot, error) {
	r, err := c.registry.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Room: r}

	state, err := c.storage.GetGameState(ctx, code)
	switch {
	case err == nil:
		snap.GameState = c.catalog.View(state, "")
	case !errors.Is(err, model.ErrGameNotFound):
		return nil, err
	}
	if left, ok := c.scheduler.Remaining(code); ok {
		snap.TimeLeft = &left
	}
	return snap, nil
}

// OnTick broadcasts the time left on the room's countdown
func (c *Controller) OnTick(code model.RoomCode, gen uint64, remaining int) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	if !c.scheduler.Current(code, gen) {
		return
	}
	r, err := c.registry.GetRoom(context.Background(), code)
	if err != nil {
		return
	}
	c.broadcast(r.Players, model.Event{
		Type:    model.EventTimerUpdate,
		Payload: model.TimerUpdatePayload{TimeLeft: remaining},
	})
}

// OnExpire skips the current player's turn and starts the next countdown
func (c *Controller) OnExpire(code model.RoomCode, gen uint64) {
	entry := c.lock(code)
	defer entry.mu.Unlock()

	if !c.scheduler.Current(code, gen) {
		return
	}
	ctx := context.Background()
	r, state, ok := c.load(ctx, code)
	if !ok || state.IsOver {
		return
	}
	rules, err := c.rulesFor(entry, state)
	if err != nil {
		return
	}

	next, err := c.catalog.SkipTurn(rules, state)
	if err != nil {
		c.logger.Error("failed to skip turn",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := c.storage.SaveGameState(ctx, code, next); err != nil {
		c.logger.Error("failed to save game state",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}

	c.logger.Info("turn skipped",
		slog.String("room_code", string(code)),
		slog.String("skipped_player", string(state.CurrentPlayerID)),
	)
	c.broadcastState(r.Players, next, func(view *model.GameState) model.Event {
		return model.Event{
			Type:    model.EventTurnSkipped,
			Payload: model.TurnSkippedPayload{GameState: view},
		}
	})

	if !next.IsOver {
		c.startTimer(code, rules)
	}
}

// load fetches the room and its game state, reporting false if either is gone
func (c *Controller) load(ctx context.Context, code model.RoomCode) (*model.Room, *model.GameState, bool) {
	r, err := c.registry.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, false
	}
	state, err := c.storage.GetGameState(ctx, code)
	if err != nil {
		return nil, nil, false
	}
	return r, state, true
}

// rulesFor returns the rule set chosen at selection, falling back to the
// catalog when the entry was created after the game started
func (c *Controller) rulesFor(entry *roomEntry, state *model.GameState) (games.Rules, error) {
	if entry.rules != nil && entry.rules.Type() == state.GameType {
		return entry.rules, nil
	}
	rules, err := c.catalog.Get(state.GameType)
	if err != nil {
		c.logger.Warn("stored game has no rules",
			slog.String("game_type", string(state.GameType)),
		)
		return nil, err
	}
	entry.rules = rules
	return rules, nil
}

func (c *Controller) startTimer(code model.RoomCode, rules games.Rules) {
	if d := c.catalog.TurnDuration(rules); d > 0 {
		c.scheduler.Start(code, d, c)
	}
}

func (c *Controller) broadcast(players []model.Player, event model.Event) {
	for _, p := range players {
		c.notifier.Send(p.ID, event)
	}
}

// broadcastState sends each player an event built around their own view of st
func (c *Controller) broadcastState(players []model.Player, st *model.GameState, build func(*model.GameState) model.Event) {
	for _, p := range players {
		c.notifier.Send(p.ID, build(c.catalog.View(st, p.ID)))
	}
}

// fail reports a rejected room action to the player who attempted it
func (c *Controller) fail(playerID model.PlayerID, err error) {
	msg := ErrorMessage(err)
	if msg == messageInternal {
		c.logger.Error("room action failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}
	c.notifier.Send(playerID, model.Event{
		Type:    model.EventError,
		Payload: model.ErrorPayload{Message: msg},
	})
}
