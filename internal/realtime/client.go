package realtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mcoot/duelroom/internal/model"
)

// Client is one websocket connection
type Client struct {
	gateway     *Gateway
	conn        *websocket.Conn
	playerID    model.PlayerID
	send        chan []byte
	limiter     *rate.Limiter
	connectedAt time.Time
}

func newClient(g *Gateway, conn *websocket.Conn, playerID model.PlayerID) *Client {
	return &Client{
		gateway:     g,
		conn:        conn,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		limiter:     g.newLimiter(),
		connectedAt: time.Now(),
	}
}

// readPump dispatches inbound messages in arrival order until the connection
// fails or closes. The close reply and the socket itself belong to writePump,
// which sends them once every queued event is out.
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	c.conn.SetCloseHandler(func(int, string) error { return nil })

	ctx := context.Background()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.gateway.logger.Warn("websocket read failed",
					slog.String("player_id", string(c.playerID)),
					slog.Any("error", err))
			}
			return
		}
		if !c.limiter.Allow() {
			c.gateway.logger.Debug("action rate limited",
				slog.String("player_id", string(c.playerID)))
			c.gateway.reject(c.playerID, messageRateLimited)
			continue
		}
		c.gateway.dispatch(ctx, c.playerID, message)
	}
}

// writePump drains the send buffer onto the connection and keeps it alive
// with pings. It exits when the gateway closes the send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
