package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/noteshare/notes-api/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Any origin may connect; the gateway carries no per-user scoping.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests into gateway connections.
type Handler struct {
	hub   *Hub
	notes ports.NoteService
	log   zerolog.Logger
}

func NewHandler(hub *Hub, notes ports.NoteService, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, notes: notes, log: log}
}

// ServeWS handles GET /ws. The connection stays open until the client
// disconnects or is dropped as a slow consumer.
func (h *Handler) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return err
	}

	cl := &client{
		id:    newClientID(),
		hub:   h.hub,
		conn:  conn,
		notes: h.notes,
		send:  make(chan []byte, sendBuffer),
		log:   h.log,
	}
	h.hub.register <- cl

	go cl.writePump()
	go cl.readPump()
	return nil
}
