package domain

import (
	"errors"
	"time"
)

var ErrInvalidNote = errors.New("note title and content are required")
var ErrNoteNotFound = errors.New("note not found")

// Note is the core record: a short title/content pair with store-assigned
// identity and timestamps. Notes are never updated in place; they are
// created once and eventually deleted.
type Note struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Validate enforces the single note invariant: non-empty title and content.
func (n *Note) Validate() error {
	if n.Title == "" || n.Content == "" {
		return ErrInvalidNote
	}
	return nil
}
