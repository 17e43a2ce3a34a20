package model

import (
	"slices"
	"time"
)

// RoomCode is a short human-shareable identifier for joining rooms
type RoomCode string

// MaxRoomPlayers is the seat limit of every room
const MaxRoomPlayers = 2

// Room is a code-addressed two-player session container
type Room struct {
	Code         RoomCode  `json:"roomCode"`
	HostID       PlayerID  `json:"hostId"`
	Players      []Player  `json:"players"`
	SelectedGame *GameType `json:"selectedGameType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GetPlayer returns the seated player with the given ID, or nil if not found
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// HasPlayer reports whether the player is seated in the room
func (r *Room) HasPlayer(id PlayerID) bool {
	return r.GetPlayer(id) != nil
}

// IsFull reports whether every seat is taken
func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxRoomPlayers
}

// IsHost reports whether the player created the room
func (r *Room) IsHost(id PlayerID) bool {
	return r.HostID != "" && r.HostID == id
}

// RemovePlayer drops the player from the seat list and reports whether it was seated
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// PlayerIDs returns the seated player IDs in seat order
func (r *Room) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// Clone returns a copy of the room that shares no slices or pointers with it
func (r *Room) Clone() *Room {
	c := *r
	c.Players = slices.Clone(r.Players)
	if r.SelectedGame != nil {
		g := *r.SelectedGame
		c.SelectedGame = &g
	}
	return &c
}
