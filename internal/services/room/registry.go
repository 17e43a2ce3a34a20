package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/duelroom/internal/dependencies/clock"
	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/games"
	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/storage"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6
	// CodeAlphabet is the characters used in room codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 100
)

// LeaveResult describes what happened to one room when a player left it
type LeaveResult struct {
	Code model.RoomCode

	// Remaining are the players still seated, in seat order
	Remaining []model.Player

	// Deleted is set when the room was destroyed, either because it became
	// empty or because the host left
	Deleted bool

	// HostLeft is set when the departing player created the room
	HostLeft bool

	// GameEnded is set when a game state was discarded
	GameEnded bool
}

// Registry manages room membership and game selection
type Registry struct {
	storage storage.Storage
	catalog *games.Catalog
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewRegistry creates a new room Registry
func NewRegistry(
	storage storage.Storage,
	catalog *games.Catalog,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		storage: storage,
		catalog: catalog,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateRoom creates a new room with the given player as host
func (r *Registry) CreateRoom(ctx context.Context, host model.Player) (*model.Room, error) {
	now := r.clock.Now()
	host.Ready = true

	for range maxCodeAttempts {
		room := &model.Room{
			Code:      model.RoomCode(r.random.String(CodeLength, CodeAlphabet)),
			HostID:    host.ID,
			Players:   []model.Player{host},
			CreatedAt: now,
			UpdatedAt: now,
		}

		err := r.storage.CreateRoom(ctx, room)
		if errors.Is(err, model.ErrRoomCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		r.logger.Info("room created",
			slog.String("room_code", string(room.Code)),
			slog.String("host_id", string(host.ID)),
		)
		return room, nil
	}
	return nil, fmt.Errorf("%w: no free code after %d attempts", model.ErrRoomCodeTaken, maxCodeAttempts)
}

// GetRoom retrieves a room by code
func (r *Registry) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return r.storage.GetRoom(ctx, code)
}

// ListRooms returns every active room
func (r *Registry) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return r.storage.ListRooms(ctx)
}

// JoinRoom seats a player in a room. Joining a room the player already sits
// in is a no-op.
func (r *Registry) JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error) {
	room, err := r.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.HasPlayer(player.ID) {
		return room, nil
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	player.Ready = true
	room.Players = append(room.Players, player)
	room.UpdatedAt = r.clock.Now()
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	r.logger.Info("player joined room",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(player.ID)),
	)
	return room, nil
}

// RoomsForPlayer returns the codes of every room the player is seated in
func (r *Registry) RoomsForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.RoomCode, error) {
	rooms, err := r.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	var codes []model.RoomCode
	for _, room := range rooms {
		if room.HasPlayer(playerID) {
			codes = append(codes, room.Code)
		}
	}
	return codes, nil
}

// LeaveRoom removes a player from one room.
//
// A room is destroyed together with its game state when it becomes empty or
// when its host leaves. When a guest leaves, the host keeps the room but any
// game in progress is discarded and the selection cleared.
func (r *Registry) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (LeaveResult, error) {
	result := LeaveResult{Code: code}

	room, err := r.storage.GetRoom(ctx, code)
	if err != nil {
		return result, err
	}
	if !room.RemovePlayer(playerID) {
		return result, model.ErrNotInRoom
	}
	result.Remaining = room.Players
	result.HostLeft = room.IsHost(playerID)

	_, err = r.storage.GetGameState(ctx, code)
	switch {
	case err == nil:
		result.GameEnded = true
		if err := r.storage.DeleteGameState(ctx, code); err != nil {
			return result, err
		}
	case !errors.Is(err, model.ErrGameNotFound):
		return result, err
	}

	if len(room.Players) == 0 || result.HostLeft {
		result.Deleted = true
		if err := r.storage.DeleteRoom(ctx, code); err != nil {
			return result, err
		}
		r.logger.Info("room closed",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(playerID)),
			slog.Bool("host_left", result.HostLeft),
		)
		return result, nil
	}

	room.SelectedGame = nil
	room.UpdatedAt = r.clock.Now()
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return result, err
	}

	r.logger.Info("player left room",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Bool("game_ended", result.GameEnded),
	)
	return result, nil
}

// SelectGame records the host's choice of game and creates its initial state.
// Any game already in progress in the room is replaced.
func (r *Registry) SelectGame(
	ctx context.Context,
	code model.RoomCode,
	gameType model.GameType,
	requester model.PlayerID,
) (games.Rules, *model.GameState, error) {
	room, err := r.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if !room.IsHost(requester) {
		return nil, nil, model.ErrNotHost
	}
	rules, err := r.catalog.Get(gameType)
	if err != nil {
		return nil, nil, err
	}
	if len(room.Players) < model.MaxRoomPlayers {
		return nil, nil, model.ErrNotEnoughPlayers
	}

	state, err := r.catalog.NewState(rules, room.Players)
	if err != nil {
		return nil, nil, err
	}
	if err := r.storage.SaveGameState(ctx, code, state); err != nil {
		r.logger.Error("failed to save game state",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	room.SelectedGame = &gameType
	room.UpdatedAt = r.clock.Now()
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}

	r.logger.Info("game selected",
		slog.String("room_code", string(code)),
		slog.String("game_type", string(gameType)),
	)
	return rules, state, nil
}
