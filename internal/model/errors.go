package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomCodeTaken    = errors.New("room code is already in use")
	ErrNotInRoom        = errors.New("player is not in room")
	ErrNotHost          = errors.New("player is not the host")
	ErrNotEnoughPlayers = errors.New("room needs two players to start a game")

	// Game errors
	ErrUnknownGameType = errors.New("unknown game type")
	ErrGameNotFound    = errors.New("game not found")
	ErrGameMismatch    = errors.New("move is for a different game")
	ErrGameOver        = errors.New("game is already over")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrMalformedMove   = errors.New("malformed move")
)
