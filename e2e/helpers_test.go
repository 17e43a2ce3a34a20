package e2e_test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/duelroom/internal/api"
	"github.com/mcoot/duelroom/internal/factory"
	"github.com/mcoot/duelroom/internal/testutil"
)

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *api.Server
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	server := api.NewServer(app.Router(), api.ServerConfig{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: 5 * time.Second,
	}, testutil.NopLogger())
	server.OnShutdown(app.Gateway.Close)
	require.NoError(t, server.Listen())

	go func() {
		if err := server.Serve(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		server: server,
		app:    app,
		addr:   serverURL,
		shutdown: func() {
			_ = server.Shutdown(context.Background())
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// envelope is a message in either direction on the websocket
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// wsPlayer is one websocket connection acting as a player
type wsPlayer struct {
	t    *testing.T
	conn *websocket.Conn
	id   string
}

func dialPlayer(t *testing.T, serverURL string) *wsPlayer {
	t.Helper()

	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	p := &wsPlayer{t: t, conn: conn}
	var connected struct {
		PlayerID string `json:"playerId"`
	}
	p.expect("connected", &connected)
	require.NotEmpty(t, connected.PlayerID)
	p.id = connected.PlayerID
	return p
}

func (p *wsPlayer) send(action string, data any) {
	p.t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(p.t, err)
	require.NoError(p.t, p.conn.WriteJSON(envelope{Type: action, Data: raw}))
}

// expect reads events until one of the given type arrives, skipping timer
// ticks, and decodes its data into dst when dst is non-nil
func (p *wsPlayer) expect(eventType string, dst any) {
	p.t.Helper()
	for {
		require.NoError(p.t, p.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var env envelope
		require.NoError(p.t, p.conn.ReadJSON(&env), "waiting for %s", eventType)
		if env.Type == "timerUpdate" && eventType != "timerUpdate" {
			continue
		}
		require.Equal(p.t, eventType, env.Type, "unexpected event: %s", string(env.Data))
		if dst != nil {
			require.NoError(p.t, json.Unmarshal(env.Data, dst))
		}
		return
	}
}
