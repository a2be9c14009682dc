package realtime

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/noteshare/notes-api/internal/api/metrics"
	"github.com/noteshare/notes-api/internal/core/domain"
)

const broadcastBuffer = 256

// Presence mirrors the set of connected clients into an external store so
// other processes (and the stats endpoint) can observe it. All methods are
// best-effort from the hub's point of view.
type Presence interface {
	Add(ctx context.Context, clientID string) error
	Remove(ctx context.Context, clientID string) error
	Count(ctx context.Context) (int64, error)
}

// Hub owns the set of connected gateway clients and fans events out to all
// of them. All client-set mutations happen inside Run, so no locks are
// needed. The hub is the process-wide Broadcaster handed to the note
// service at startup.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	clients  map[*client]struct{}
	presence Presence // optional
	conns    atomic.Int64
	log      zerolog.Logger
}

func NewHub(presence Presence, log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		clients:    make(map[*client]struct{}),
		presence:   presence,
		log:        log,
	}
}

// Run processes register/unregister/broadcast requests until ctx is
// cancelled. It must be running before any client connects or any
// mutation is broadcast.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.conns.Store(int64(len(h.clients)))
			metrics.GatewayConnections.Set(float64(len(h.clients)))
			if h.presence != nil {
				if err := h.presence.Add(ctx, c.id); err != nil {
					h.log.Warn().Err(err).Str("client_id", c.id).Msg("presence add failed")
				}
			}
			h.log.Debug().Str("client_id", c.id).Int("clients", len(h.clients)).Msg("gateway client connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: no delivery guarantee, drop it.
					metrics.ClientsDroppedTotal.Inc()
					h.log.Warn().Str("client_id", c.id).Msg("dropping slow gateway client")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.conns.Store(int64(len(h.clients)))
	metrics.GatewayConnections.Set(float64(len(h.clients)))
	if h.presence != nil {
		// Presence updates must survive hub shutdown, so they never use
		// the Run context.
		if err := h.presence.Remove(context.Background(), c.id); err != nil {
			h.log.Warn().Err(err).Str("client_id", c.id).Msg("presence remove failed")
		}
	}
	h.log.Debug().Str("client_id", c.id).Int("clients", len(h.clients)).Msg("gateway client disconnected")
}

// ConnectionCount reports how many clients are currently registered.
func (h *Hub) ConnectionCount() int64 {
	return h.conns.Load()
}

// NoteAdded broadcasts a "note added" event to every connected client.
func (h *Hub) NoteAdded(note *domain.Note) {
	h.emit(EventNoteAdded, note)
}

// NoteDeleted broadcasts a "note deleted" event to every connected client.
func (h *Hub) NoteDeleted(id string) {
	h.emit(EventNoteDeleted, id)
}

func (h *Hub) emit(event string, payload any) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("failed to encode broadcast")
		return
	}
	metrics.EventsBroadcastTotal.WithLabelValues(event).Inc()
	h.broadcast <- data
}
