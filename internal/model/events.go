package model

// EventType identifies an outbound notification
type EventType string

const (
	// Connection events
	EventConnected EventType = "connected"

	// Room events
	EventRoomCreated  EventType = "roomCreated"
	EventRoomJoined   EventType = "roomJoined"
	EventPlayerJoined EventType = "playerJoined"
	EventPlayerLeft   EventType = "playerLeft"
	EventRoomClosed   EventType = "roomClosed"
	EventError        EventType = "error"

	// Game events
	EventGameSelected EventType = "gameSelected"
	EventGameUpdate   EventType = "gameUpdate"
	EventTimerUpdate  EventType = "timerUpdate"
	EventTurnSkipped  EventType = "turnSkipped"
)

// Event is a single message delivered to one connection
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"data"`
}

// ConnectedPayload tells a new connection which player id it was given
type ConnectedPayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// RoomEnteredPayload is sent to the creator or joiner of a room
type RoomEnteredPayload struct {
	RoomCode RoomCode `json:"roomCode"`
	IsHost   bool     `json:"isHost"`
}

// PlayersPayload carries the seat list after a join
type PlayersPayload struct {
	RoomCode RoomCode `json:"roomCode"`
	Players  []Player `json:"players"`
}

// PlayerLeftPayload carries the remaining seat list after a departure
type PlayerLeftPayload struct {
	Players []Player `json:"players"`
}

// RoomClosedPayload tells remaining members that their room no longer exists
type RoomClosedPayload struct {
	RoomCode RoomCode `json:"roomCode"`
}

// ErrorPayload carries a human-readable failure message
type ErrorPayload struct {
	Message string `json:"message"`
}

// GameSelectedPayload announces the game picked by the host
type GameSelectedPayload struct {
	GameType GameType `json:"gameType"`
}

// MoveExtra holds the game-specific details reported alongside a move result
type MoveExtra struct {
	WinningLine   []Position `json:"winningLine,omitempty"`
	NoMatch       bool       `json:"noMatch,omitempty"`
	DiceValue     int        `json:"diceValue,omitempty"`
	TurnForfeited bool       `json:"turnForfeited,omitempty"`
	Hit           *bool      `json:"hit,omitempty"`
	Sunk          bool       `json:"sunk,omitempty"`
	Captured      bool       `json:"captured,omitempty"`
	BoxesClaimed  int        `json:"boxesClaimed,omitempty"`
}

// GameUpdatePayload is the result of a move or a state request
type GameUpdatePayload struct {
	GameState *GameState `json:"gameState"`
	Valid     bool       `json:"valid"`
	MoveExtra
}

// TimerUpdatePayload is broadcast once per second while a turn timer runs
type TimerUpdatePayload struct {
	TimeLeft int `json:"timeLeft"`
}

// TurnSkippedPayload is broadcast when a turn timer expires
type TurnSkippedPayload struct {
	GameState *GameState `json:"gameState"`
}
