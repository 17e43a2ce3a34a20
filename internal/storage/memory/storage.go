package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms  map[model.RoomCode]*model.Room
	states map[model.RoomCode]*model.GameState
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:  make(map[model.RoomCode]*model.Room),
		states: make(map[model.RoomCode]*model.GameState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.Code]; ok {
		return model.ErrRoomCodeTaken
	}
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// ListRooms returns every room ordered by code
func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room.Clone())
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Code < rooms[j].Code })
	return rooms, nil
}

// Game state operations

func (s *Storage) SaveGameState(ctx context.Context, code model.RoomCode, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[code] = state.Clone()
	return nil
}

func (s *Storage) GetGameState(ctx context.Context, code model.RoomCode) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return state.Clone(), nil
}

func (s *Storage) DeleteGameState(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, code)
	return nil
}
