package model

import (
	"encoding/json"
	"slices"
)

// GameType identifies one of the supported games
type GameType string

const (
	GameTicTacToe    GameType = "tictactoe"
	GameConnect4     GameType = "connect4"
	GameCheckers     GameType = "checkers"
	GameGomoku       GameType = "gomoku"
	GameMiniChess    GameType = "minichess"
	GameDotsAndBoxes GameType = "dotsandboxes"
	GameLudo         GameType = "ludo"
	GameMemoryMatch  GameType = "memorymatch"
	GameMinesweeper  GameType = "minesweeper"
	GameBattleship   GameType = "battleship"
)

// AllGameTypes lists every supported game in display order
var AllGameTypes = []GameType{
	GameTicTacToe,
	GameConnect4,
	GameCheckers,
	GameGomoku,
	GameMiniChess,
	GameDotsAndBoxes,
	GameLudo,
	GameMemoryMatch,
	GameMinesweeper,
	GameBattleship,
}

// Valid reports whether t is a supported game type
func (t GameType) Valid() bool {
	return slices.Contains(AllGameTypes, t)
}

// Position is a row/column coordinate on a grid board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameState is the per-room record of board content, turn and outcome.
// Board holds the game-specific payload as encoded JSON so that a state can
// be copied, stored and broadcast without knowing its concrete board type.
type GameState struct {
	GameType        GameType        `json:"gameType"`
	CurrentPlayerID PlayerID        `json:"currentPlayerId"`
	WinnerID        PlayerID        `json:"winner,omitempty"`
	IsDraw          bool            `json:"isDraw"`
	IsOver          bool            `json:"isOver"`
	FirstMoveMade   bool            `json:"firstMoveMade"`
	Players         []Player        `json:"players"`
	Board           json.RawMessage `json:"board"`
}

// Clone returns a deep copy of the state
func (s *GameState) Clone() *GameState {
	c := *s
	c.Players = slices.Clone(s.Players)
	c.Board = slices.Clone(s.Board)
	return &c
}

// PlayerIndex returns the seat index of the player in this game, or -1
func (s *GameState) PlayerIndex(id PlayerID) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// OtherPlayer returns the opponent of the given player
func (s *GameState) OtherPlayer(id PlayerID) PlayerID {
	for _, p := range s.Players {
		if p.ID != id {
			return p.ID
		}
	}
	return id
}

// SwitchTurn hands the turn to the other player
func (s *GameState) SwitchTurn() {
	s.CurrentPlayerID = s.OtherPlayer(s.CurrentPlayerID)
}

// Finish marks the game over with the given winner
func (s *GameState) Finish(winner PlayerID) {
	s.IsOver = true
	s.WinnerID = winner
}

// FinishDraw marks the game over without a winner
func (s *GameState) FinishDraw() {
	s.IsOver = true
	s.IsDraw = true
}
