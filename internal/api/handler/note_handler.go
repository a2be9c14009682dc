package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noteshare/notes-api/internal/core/ports"
)

// NoteHandler handles the note CRUD routes. The error bodies on these
// routes are plain "Error: ..." strings rather than {"error": ...}
// envelopes, a shape existing clients depend on.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type addNoteRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// List handles GET /api/notes.
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Error: "+err.Error())
	}
	return c.JSON(http.StatusOK, notes)
}

// Add handles POST /api/notes/add. On success the new note has already been
// broadcast to every gateway client.
func (h *NoteHandler) Add(c echo.Context) error {
	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "Error: invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "Error: "+err.Error())
	}

	if _, err := h.service.Add(c.Request().Context(), req.Title, req.Content); err != nil {
		return c.JSON(http.StatusBadRequest, "Error: "+err.Error())
	}
	return c.JSON(http.StatusOK, "Note added!")
}

// Delete handles DELETE /api/notes/:id. Deleting an id that never existed
// still succeeds and still broadcasts the deletion.
func (h *NoteHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Remove(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusBadRequest, "Error: "+err.Error())
	}
	return c.JSON(http.StatusOK, "Note deleted.")
}
