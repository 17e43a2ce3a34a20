package realtime

import (
	"encoding/json"

	"github.com/mcoot/duelroom/internal/model"
)

// Inbound action names
const (
	ActionCreateRoom       = "createRoom"
	ActionJoinRoom         = "joinRoom"
	ActionSelectGame       = "selectGame"
	ActionMakeMove         = "makeMove"
	ActionRequestGameState = "requestGameState"
)

// Envelope is the wire format of every message in both directions
type Envelope struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data"`
}

// CreateRoomRequest opens a new room
type CreateRoomRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=32"`
}

// JoinRoomRequest takes the free seat of a room
type JoinRoomRequest struct {
	RoomCode   model.RoomCode `json:"roomCode" validate:"required,max=16"`
	PlayerName string         `json:"playerName" validate:"required,max=32"`
}

// SelectGameRequest is the host picking a game
type SelectGameRequest struct {
	RoomCode model.RoomCode `json:"roomCode" validate:"required,max=16"`
	GameType model.GameType `json:"gameType" validate:"required"`
}

// MakeMoveRequest carries a game-specific move payload
type MakeMoveRequest struct {
	RoomCode model.RoomCode  `json:"roomCode" validate:"required,max=16"`
	GameType model.GameType  `json:"gameType" validate:"required"`
	Move     json.RawMessage `json:"move" validate:"required"`
}

// RoomRequest addresses a room without further arguments
type RoomRequest struct {
	RoomCode model.RoomCode `json:"roomCode" validate:"required,max=16"`
}
