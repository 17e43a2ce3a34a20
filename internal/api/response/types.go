package response

import (
	"github.com/mcoot/duelroom/internal/games"
	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/services/session"
)

// Health is the body of the health check
type Health struct {
	Status string `json:"status"`
}

// Game describes a playable game
type Game struct {
	GameType    string `json:"gameType"`
	TurnSeconds int    `json:"turnSeconds"`
}

// GamesFromCatalog converts the catalog listing
func GamesFromCatalog(infos []games.Info) []Game {
	out := make([]Game, len(infos))
	for i, info := range infos {
		out[i] = Game{GameType: string(info.GameType), TurnSeconds: info.TurnSeconds}
	}
	return out
}

// Position is a board cell
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionsFromModel converts a move list
func PositionsFromModel(ps []model.Position) []Position {
	var out []Position
	if len(ps) > 0 {
		out = make([]Position, len(ps))
	}
	for i, p := range ps {
		out[i] = Position{Row: p.Row, Col: p.Col}
	}
	return out
}

// Player represents a seated player
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Room represents a room with its current game, if any
type Room struct {
	Code         string           `json:"code"`
	HostID       string           `json:"hostId"`
	Players      []Player         `json:"players"`
	SelectedGame *string          `json:"selectedGame"`
	GameState    *model.GameState `json:"gameState,omitempty"`
	TimeLeft     *int             `json:"timeLeft,omitempty"`
}

// RoomFromSnapshot converts a session snapshot
func RoomFromSnapshot(s *session.Snapshot) Room {
	players := make([]Player, len(s.Room.Players))
	for i, p := range s.Room.Players {
		players[i] = Player{
			ID:     string(p.ID),
			Name:   p.Name,
			IsHost: p.ID == s.Room.HostID,
		}
	}

	var selected *string
	if s.Room.SelectedGame != nil {
		g := string(*s.Room.SelectedGame)
		selected = &g
	}

	return Room{
		Code:         string(s.Room.Code),
		HostID:       string(s.Room.HostID),
		Players:      players,
		SelectedGame: selected,
		GameState:    s.GameState,
		TimeLeft:     s.TimeLeft,
	}
}
