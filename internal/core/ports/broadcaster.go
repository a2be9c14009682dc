package ports

import "github.com/noteshare/notes-api/internal/core/domain"

// Broadcaster fans a successful note mutation out to every connected
// gateway client, including the originator. Delivery is best-effort,
// at-most-once; failures never propagate back to the mutation.
type Broadcaster interface {
	NoteAdded(note *domain.Note)
	NoteDeleted(id string)
}
