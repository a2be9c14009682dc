package ports

import (
	"context"

	"github.com/noteshare/notes-api/internal/core/domain"
)

// NoteService defines the use-case operations for notes. Both the HTTP API
// and the realtime gateway mutate notes exclusively through this interface,
// so broadcast semantics are defined once in the implementation.
type NoteService interface {
	List(ctx context.Context) ([]*domain.Note, error)
	// Add validates and persists a new note, then broadcasts it to every
	// connected gateway client.
	Add(ctx context.Context, title, content string) (*domain.Note, error)
	// Remove deletes the note with the given id and broadcasts the deletion.
	// Removing an id that never existed is not an error.
	Remove(ctx context.Context, id string) error
}
