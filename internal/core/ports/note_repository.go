package ports

import (
	"context"

	"github.com/noteshare/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	// FindAll returns every note in insertion order.
	FindAll(ctx context.Context) ([]*domain.Note, error)
	// Insert persists a new note and fills in its store-assigned ID.
	Insert(ctx context.Context, note *domain.Note) error
	// DeleteByID removes the note with the given id. Returns
	// domain.ErrNoteNotFound when no document matched.
	DeleteByID(ctx context.Context, id string) error
	// Count returns the total number of stored notes.
	Count(ctx context.Context) (int64, error)
}
