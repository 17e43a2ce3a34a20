package storage

import (
	"context"

	"github.com/mcoot/duelroom/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations hand out copies; callers must save to publish changes.
type Storage interface {
	// Room operations

	// CreateRoom stores a new room, failing with model.ErrRoomCodeTaken if
	// the code is already in use
	CreateRoom(ctx context.Context, room *model.Room) error
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Game state operations, keyed by the owning room
	SaveGameState(ctx context.Context, code model.RoomCode, state *model.GameState) error
	GetGameState(ctx context.Context, code model.RoomCode) (*model.GameState, error)
	DeleteGameState(ctx context.Context, code model.RoomCode) error
}
