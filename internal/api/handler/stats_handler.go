package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// NoteCounter reports how many notes are stored.
type NoteCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ConnectionCounter reports how many gateway clients are connected.
type ConnectionCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsHandler handles GET /api/stats.
type StatsHandler struct {
	notes NoteCounter
	conns ConnectionCounter
}

func NewStatsHandler(notes NoteCounter, conns ConnectionCounter) *StatsHandler {
	return &StatsHandler{notes: notes, conns: conns}
}

type statsResponse struct {
	Notes       int64 `json:"notes"`
	Connections int64 `json:"connections"`
}

func (h *StatsHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	notes, err := h.notes.Count(ctx)
	if err != nil {
		return err
	}
	conns, err := h.conns.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{Notes: notes, Connections: conns})
}
