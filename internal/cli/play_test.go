package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(t *testing.T, typ string, data any) inbound {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return inbound{Type: typ, Data: raw}
}

func encode(t *testing.T, msg *outbound) string {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return string(data)
}

func TestPlayCommandsBeforeJoining(t *testing.T) {
	p := &playSession{}

	msg, err := p.command("create Alice Smith")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"createRoom","data":{"playerName":"Alice Smith"}}`, encode(t, msg))

	msg, err = p.command("join abc123 Bob")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"joinRoom","data":{"roomCode":"ABC123","playerName":"Bob"}}`, encode(t, msg))

	_, err = p.command("select tictactoe")
	assert.EqualError(t, err, "not in a room")

	_, err = p.command(`move {"index":4}`)
	assert.EqualError(t, err, "no game selected")

	_, err = p.command("state")
	assert.Error(t, err)
}

func TestPlayCommandsTrackRoomAndGame(t *testing.T) {
	p := &playSession{}
	p.observe(event(t, "connected", map[string]string{"playerId": "p-1"}))
	p.observe(event(t, "roomCreated", map[string]any{"roomCode": "ROOM01", "isHost": true}))
	assert.Equal(t, "p-1", p.playerID)

	msg, err := p.command("select tictactoe")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"selectGame","data":{"roomCode":"ROOM01","gameType":"tictactoe"}}`, encode(t, msg))

	p.observe(event(t, "gameSelected", map[string]string{"gameType": "tictactoe"}))

	msg, err = p.command(`move {"index":4}`)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"makeMove","data":{"roomCode":"ROOM01","gameType":"tictactoe","move":{"index":4}}}`,
		encode(t, msg))

	msg, err = p.command("state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"requestGameState","data":{"roomCode":"ROOM01"}}`, encode(t, msg))

	p.observe(event(t, "roomClosed", map[string]string{"roomCode": "ROOM01"}))
	_, err = p.command("state")
	assert.Error(t, err)
}

func TestPlayCommandErrors(t *testing.T) {
	p := &playSession{roomCode: "ROOM01", gameType: "gomoku"}

	msg, err := p.command("   ")
	assert.NoError(t, err)
	assert.Nil(t, msg)

	tests := []string{"create", "join ROOM01", "select", "move not-json", "dance"}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := p.command(line)
			assert.Error(t, err)
		})
	}

	_, err = p.command("quit")
	assert.ErrorIs(t, err, errQuit)
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		server   string
		expected string
		wantErr  bool
	}{
		{server: "http://localhost:8080", expected: "ws://localhost:8080/ws"},
		{server: "https://games.example.com/", expected: "wss://games.example.com/ws"},
		{server: "ws://127.0.0.1:9000", expected: "ws://127.0.0.1:9000/ws"},
		{server: "ftp://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			c := &Config{ServerURL: tt.server}
			got, err := c.WebsocketURL()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
