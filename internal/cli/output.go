package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case []GameInfo:
		o.printGames(v)
	case []Position:
		o.printPositions(v)
	case Room:
		o.printRoom(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server"`
	LatencyMs int64  `json:"latencyMs"`
}

// GameInfo response type
type GameInfo struct {
	GameType    string `json:"gameType"`
	TurnSeconds int    `json:"turnSeconds"`
}

// Position response type
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RoomPlayer response type
type RoomPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// GameState response type. The board is kept raw since its shape depends on the game.
type GameState struct {
	GameType        string          `json:"gameType"`
	CurrentPlayerID string          `json:"currentPlayerId"`
	Winner          string          `json:"winner,omitempty"`
	IsDraw          bool            `json:"isDraw"`
	IsOver          bool            `json:"isOver"`
	FirstMoveMade   bool            `json:"firstMoveMade"`
	Board           json.RawMessage `json:"board"`
}

// Room response type
type Room struct {
	Code         string       `json:"code"`
	HostID       string       `json:"hostId"`
	Players      []RoomPlayer `json:"players"`
	SelectedGame *string      `json:"selectedGame"`
	GameState    *GameState   `json:"gameState,omitempty"`
	TimeLeft     *int         `json:"timeLeft,omitempty"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status:  %s\n", h.Status)
	fmt.Fprintf(o.w, "Server:  %s\n", h.Server)
	fmt.Fprintf(o.w, "Latency: %dms\n", h.LatencyMs)
}

func (o *Output) printGames(games []GameInfo) {
	for _, g := range games {
		timer := "no timer"
		if g.TurnSeconds > 0 {
			timer = fmt.Sprintf("%ds per turn", g.TurnSeconds)
		}
		fmt.Fprintf(o.w, "  %-14s %s\n", g.GameType, timer)
	}
}

func (o *Output) printPositions(ps []Position) {
	if len(ps) == 0 {
		fmt.Fprintln(o.w, "No legal moves")
		return
	}
	cells := make([]string, len(ps))
	for i, p := range ps {
		cells[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	fmt.Fprintf(o.w, "Legal moves: %s\n", strings.Join(cells, " "))
}

func (o *Output) printRoom(r Room) {
	fmt.Fprintf(o.w, "Room: %s\n", r.Code)
	if r.SelectedGame != nil {
		fmt.Fprintf(o.w, "Game: %s\n", *r.SelectedGame)
	}
	fmt.Fprintf(o.w, "Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		hostStr := ""
		if p.IsHost {
			hostStr = " [host]"
		}
		fmt.Fprintf(o.w, "  - %s (%s)%s\n", p.Name, p.ID, hostStr)
	}

	g := r.GameState
	if g == nil {
		return
	}
	switch {
	case g.IsDraw:
		fmt.Fprintln(o.w, "Result: draw")
	case g.IsOver:
		fmt.Fprintf(o.w, "Winner: %s\n", g.Winner)
	default:
		fmt.Fprintf(o.w, "To move: %s\n", g.CurrentPlayerID)
		if r.TimeLeft != nil {
			fmt.Fprintf(o.w, "Time left: %ds\n", *r.TimeLeft)
		}
	}

	var grid [][]string
	if err := json.Unmarshal(g.Board, &grid); err == nil {
		fmt.Fprintln(o.w)
		o.printGrid(grid)
	}
}

// printGrid draws grid-shaped boards. Other boards are only shown in JSON output.
func (o *Output) printGrid(grid [][]string) {
	if len(grid) == 0 {
		return
	}
	cols := len(grid[0])

	fmt.Fprint(o.w, "    ")
	for col := 0; col < cols; col++ {
		fmt.Fprintf(o.w, " %d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("---", cols) + "+"
	fmt.Fprintln(o.w, border)
	for row, cells := range grid {
		fmt.Fprintf(o.w, " %d |", row)
		for _, cell := range cells {
			if cell == "" {
				fmt.Fprint(o.w, " . ")
			} else {
				fmt.Fprintf(o.w, " %s ", cellSymbol(cell))
			}
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}

// cellSymbol shortens a cell to one character, upper-casing kings
func cellSymbol(cell string) string {
	sym := cell[:1]
	if strings.HasSuffix(cell, "-king") {
		sym = strings.ToUpper(sym)
	}
	return sym
}
