package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mcoot/duelroom/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings, must be less than pongWait
	pingPeriod = 30 * time.Second

	// Largest inbound message accepted
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256

	// Sustained and burst rate of inbound actions per connection
	defaultActionsPerSecond = 20
	defaultActionBurst      = 40

	messageInvalidRequest = "Invalid request"
	messageUnknownAction  = "Unknown action"
	messageRateLimited    = "Too many requests"
)

// Session handles the actions players send over their connection
type Session interface {
	CreateRoom(ctx context.Context, playerID model.PlayerID, name string)
	JoinRoom(ctx context.Context, playerID model.PlayerID, code model.RoomCode, name string)
	SelectGame(ctx context.Context, playerID model.PlayerID, code model.RoomCode, gameType model.GameType)
	MakeMove(ctx context.Context, playerID model.PlayerID, code model.RoomCode, gameType model.GameType, move json.RawMessage)
	RequestGameState(ctx context.Context, playerID model.PlayerID, code model.RoomCode)
	Disconnect(ctx context.Context, playerID model.PlayerID)
}

// Gateway maps websocket connections to players. Each connection is a new
// player with a fresh id.
type Gateway struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
	session Session

	upgrader    websocket.Upgrader
	validate    *validator.Validate
	actionRate  rate.Limit
	actionBurst int
	logger      *slog.Logger
}

// NewGateway creates a Gateway. Bind must be called before serving.
func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		clients: make(map[model.PlayerID]*Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		validate:    validator.New(),
		actionRate:  rate.Limit(defaultActionsPerSecond),
		actionBurst: defaultActionBurst,
		logger:      logger.With(slog.String("component", "realtime")),
	}
}

// SetRateLimit changes the inbound action limit for connections opened
// afterwards
func (g *Gateway) SetRateLimit(perSecond float64, burst int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.actionRate = rate.Limit(perSecond)
	g.actionBurst = burst
}

func (g *Gateway) newLimiter() *rate.Limiter {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return rate.NewLimiter(g.actionRate, g.actionBurst)
}

// Bind sets the session that inbound actions are dispatched to
func (g *Gateway) Bind(session Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = session
}

// ServeHTTP upgrades the request and runs the connection until it closes
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		g.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(g, conn, model.PlayerID(uuid.NewString()))
	g.register(client)
	go client.writePump()

	g.Send(client.playerID, model.Event{
		Type:    model.EventConnected,
		Payload: model.ConnectedPayload{PlayerID: client.playerID},
	})

	client.readPump()

	g.unregister(client)
	if s := g.currentSession(); s != nil {
		s.Disconnect(context.Background(), client.playerID)
	}
}

// Send queues an event for one player. Events for unknown players are
// dropped, as are events for clients whose buffer is full.
func (g *Gateway) Send(playerID model.PlayerID, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event",
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	client, ok := g.clients[playerID]
	if !ok {
		return
	}
	select {
	case client.send <- data:
	default:
		g.logger.Warn("message dropped - client buffer full",
			slog.String("player_id", string(playerID)),
			slog.String("event", string(event.Type)))
	}
}

// Connected reports whether the player has a live connection
func (g *Gateway) Connected(playerID model.PlayerID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.clients[playerID]
	return ok
}

// ClientCount returns the number of live connections
func (g *Gateway) ClientCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// Close disconnects every client
func (g *Gateway) Close() {
	g.mu.Lock()
	clients := make([]*Client, 0, len(g.clients))
	for _, c := range g.clients {
		clients = append(clients, c)
	}
	g.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
	g.logger.Info("gateway closed", slog.Int("disconnected_clients", len(clients)))
}

func (g *Gateway) register(c *Client) {
	g.mu.Lock()
	g.clients[c.playerID] = c
	count := len(g.clients)
	g.mu.Unlock()

	g.logger.Info("client connected",
		slog.String("player_id", string(c.playerID)),
		slog.Int("total_clients", count))
}

func (g *Gateway) unregister(c *Client) {
	g.mu.Lock()
	if _, ok := g.clients[c.playerID]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.clients, c.playerID)
	close(c.send)
	count := len(g.clients)
	g.mu.Unlock()

	g.logger.Info("client disconnected",
		slog.String("player_id", string(c.playerID)),
		slog.Duration("connection_duration", time.Since(c.connectedAt)),
		slog.Int("total_clients", count))
}

func (g *Gateway) currentSession() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// dispatch decodes one inbound message and hands it to the session
func (g *Gateway) dispatch(ctx context.Context, playerID model.PlayerID, raw []byte) {
	session := g.currentSession()
	if session == nil {
		g.logger.Error("message received before session bound")
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || g.validate.Struct(env) != nil {
		g.reject(playerID, messageInvalidRequest)
		return
	}

	switch env.Type {
	case ActionCreateRoom:
		var req CreateRoomRequest
		if g.decode(playerID, env.Data, &req) {
			session.CreateRoom(ctx, playerID, req.PlayerName)
		}
	case ActionJoinRoom:
		var req JoinRoomRequest
		if g.decode(playerID, env.Data, &req) {
			session.JoinRoom(ctx, playerID, req.RoomCode, req.PlayerName)
		}
	case ActionSelectGame:
		var req SelectGameRequest
		if g.decode(playerID, env.Data, &req) {
			session.SelectGame(ctx, playerID, req.RoomCode, req.GameType)
		}
	case ActionMakeMove:
		var req MakeMoveRequest
		if g.decode(playerID, env.Data, &req) {
			session.MakeMove(ctx, playerID, req.RoomCode, req.GameType, req.Move)
		}
	case ActionRequestGameState:
		var req RoomRequest
		if g.decode(playerID, env.Data, &req) {
			session.RequestGameState(ctx, playerID, req.RoomCode)
		}
	default:
		g.logger.Info("unknown action",
			slog.String("player_id", string(playerID)),
			slog.String("type", env.Type))
		g.reject(playerID, messageUnknownAction)
	}
}

// decode unmarshals and validates an action payload, replying with an error
// event on failure
func (g *Gateway) decode(playerID model.PlayerID, data json.RawMessage, dst any) bool {
	if len(data) == 0 {
		g.reject(playerID, messageInvalidRequest)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		g.reject(playerID, messageInvalidRequest)
		return false
	}
	if err := g.validate.Struct(dst); err != nil {
		g.logger.Debug("invalid payload",
			slog.String("player_id", string(playerID)),
			slog.Any("error", err))
		g.reject(playerID, messageInvalidRequest)
		return false
	}
	return true
}

func (g *Gateway) reject(playerID model.PlayerID, msg string) {
	g.Send(playerID, model.Event{
		Type:    model.EventError,
		Payload: model.ErrorPayload{Message: msg},
	})
}
