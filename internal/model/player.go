package model

// PlayerID identifies a connected player. It is the gateway's connection id,
// so it only lives as long as the connection does.
type PlayerID string

// Player is a participant seated in a room
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Ready bool     `json:"ready"`
}
