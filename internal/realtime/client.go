package realtime

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/noteshare/notes-api/internal/api/metrics"
	"github.com/noteshare/notes-api/internal/core/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// client is one gateway connection. Inbound events trigger note mutations
// through the service layer; the resulting broadcast reaches every client,
// including this one.
type client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	notes ports.NoteService
	send  chan []byte
	log   zerolog.Logger
}

func newClientID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("ws-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("ws-%x", b)
}

// readPump consumes inbound events until the connection drops. A client
// going away mid-mutation does not abort the store operation, so mutations
// run on a background context rather than the request context.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Str("client_id", c.id).Msg("gateway read error")
			}
			return
		}
		c.handleEvent(context.Background(), data)
	}
}

// handleEvent dispatches a single inbound event. Malformed or unknown
// events are counted and ignored; the connection stays open.
func (c *client) handleEvent(ctx context.Context, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		metrics.EventsInboundTotal.WithLabelValues("unknown", "invalid").Inc()
		c.log.Warn().Err(err).Str("client_id", c.id).Msg("malformed gateway message")
		return
	}

	switch env.Event {
	case EventNoteAdded:
		title, content, err := decodeNotePayload(env)
		if err != nil {
			metrics.EventsInboundTotal.WithLabelValues(env.Event, "invalid").Inc()
			c.log.Warn().Err(err).Str("client_id", c.id).Msg("bad note payload")
			return
		}
		if _, err := c.notes.Add(ctx, title, content); err != nil {
			metrics.EventsInboundTotal.WithLabelValues(env.Event, "rejected").Inc()
			c.log.Warn().Err(err).Str("client_id", c.id).Msg("gateway note add failed")
			return
		}
		metrics.EventsInboundTotal.WithLabelValues(env.Event, "ok").Inc()

	case EventNoteDeleted:
		id, err := decodeIDPayload(env)
		if err != nil {
			metrics.EventsInboundTotal.WithLabelValues(env.Event, "invalid").Inc()
			c.log.Warn().Err(err).Str("client_id", c.id).Msg("bad id payload")
			return
		}
		if err := c.notes.Remove(ctx, id); err != nil {
			metrics.EventsInboundTotal.WithLabelValues(env.Event, "rejected").Inc()
			c.log.Warn().Err(err).Str("client_id", c.id).Msg("gateway note delete failed")
			return
		}
		metrics.EventsInboundTotal.WithLabelValues(env.Event, "ok").Inc()

	default:
		metrics.EventsInboundTotal.WithLabelValues(env.Event, "invalid").Inc()
		c.log.Debug().Str("client_id", c.id).Str("event", env.Event).Msg("unknown gateway event")
	}
}

// writePump forwards broadcasts to the connection and keeps it alive with
// pings. It exits when the hub closes the send channel or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
