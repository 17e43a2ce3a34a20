package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

const playHelp = `Commands:
  create <name>          create a room and take the host seat
  join <code> <name>     join an existing room
  select <game>          pick a game (host only)
  move <json>            play a move in the selected game, e.g. move {"index":4}
  state                  ask for the current game state
  help                   show this help
  quit                   disconnect`

func newPlayCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively over a websocket session",
		Long: `Open a websocket session and send actions typed on stdin.

Server events are printed as they arrive. The room code and game are
remembered from roomCreated, roomJoined and gameSelected events, so moves
only need their game-specific payload.

` + playHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := client.Dial(cmd.Context())
			if err != nil {
				return err
			}
			return play(conn, os.Stdin, cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// outbound is a client action on the wire
type outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// inbound is a server event on the wire
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

var errQuit = errors.New("quit")

// playSession remembers which room and game later commands refer to
type playSession struct {
	mu       sync.Mutex
	playerID string
	roomCode string
	gameType string
}

// observe updates the session from a server event
func (p *playSession) observe(ev inbound) {
	var data struct {
		PlayerID string `json:"playerId"`
		RoomCode string `json:"roomCode"`
		GameType string `json:"gameType"`
	}
	_ = json.Unmarshal(ev.Data, &data)

	p.mu.Lock()
	defer p.mu.Unlock()
	switch ev.Type {
	case "connected":
		p.playerID = data.PlayerID
	case "roomCreated", "roomJoined":
		p.roomCode = data.RoomCode
		p.gameType = ""
	case "gameSelected":
		p.gameType = data.GameType
	case "roomClosed":
		p.roomCode = ""
		p.gameType = ""
	}
}

// command turns one input line into an action. Blank lines yield nil.
func (p *playSession) command(line string) (*outbound, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch verb {
	case "quit", "exit":
		return nil, errQuit
	case "create":
		if rest == "" {
			return nil, errors.New("usage: create <name>")
		}
		return &outbound{Type: "createRoom", Data: map[string]any{"playerName": rest}}, nil
	case "join":
		code, name, _ := strings.Cut(rest, " ")
		name = strings.TrimSpace(name)
		if code == "" || name == "" {
			return nil, errors.New("usage: join <code> <name>")
		}
		return &outbound{Type: "joinRoom", Data: map[string]any{
			"roomCode":   strings.ToUpper(code),
			"playerName": name,
		}}, nil
	case "select":
		if p.roomCode == "" {
			return nil, errors.New("not in a room")
		}
		if rest == "" {
			return nil, errors.New("usage: select <game>")
		}
		return &outbound{Type: "selectGame", Data: map[string]any{
			"roomCode": p.roomCode,
			"gameType": rest,
		}}, nil
	case "move":
		if p.roomCode == "" || p.gameType == "" {
			return nil, errors.New("no game selected")
		}
		if !json.Valid([]byte(rest)) {
			return nil, errors.New("usage: move <json>")
		}
		return &outbound{Type: "makeMove", Data: map[string]any{
			"roomCode": p.roomCode,
			"gameType": p.gameType,
			"move":     json.RawMessage(rest),
		}}, nil
	case "state":
		if p.roomCode == "" {
			return nil, errors.New("not in a room")
		}
		return &outbound{Type: "requestGameState", Data: map[string]any{"roomCode": p.roomCode}}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (try help)", verb)
	}
}

func play(conn *websocket.Conn, in io.Reader, out io.Writer, jsonOutput bool) error {
	defer func() { _ = conn.Close() }()

	session := &playSession{}
	var outMu sync.Mutex
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			_ = conn.Close()
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var ev inbound
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			session.observe(ev)
			printf("%s\n", formatEvent(ev, jsonOutput))
		}
	}()

	if !jsonOutput {
		printf("Connected to %s\n", conn.RemoteAddr())
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-done:
			if !jsonOutput {
				printf("Disconnected\n")
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				return closeSession(conn, done)
			}
			if strings.TrimSpace(line) == "help" {
				printf("%s\n", playHelp)
				continue
			}
			msg, err := session.command(line)
			if errors.Is(err, errQuit) {
				return closeSession(conn, done)
			}
			if err != nil {
				printf("Error: %s\n", err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
		}
	}
}

// closeSession sends a close frame and waits briefly for the server to hang up
func closeSession(conn *websocket.Conn, done <-chan struct{}) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return nil
}

func formatEvent(ev inbound, jsonOutput bool) string {
	if jsonOutput {
		data, _ := json.Marshal(map[string]any{
			"time":  time.Now(),
			"event": ev.Type,
			"data":  ev.Data,
		})
		return string(data)
	}

	timestamp := time.Now().Format("15:04:05")
	displayData := string(ev.Data)
	if len(displayData) > 200 {
		displayData = displayData[:200] + "..."
	}
	return fmt.Sprintf("[%s] %s: %s", timestamp, ev.Type, displayData)
}
