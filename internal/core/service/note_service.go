package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/noteshare/notes-api/internal/core/domain"
	"github.com/noteshare/notes-api/internal/core/ports"
)

// NoteService implements note listing, creation, and deletion. Every
// successful mutation is mirrored onto the broadcaster, so HTTP-triggered
// and gateway-triggered writes converge on identical fan-out behaviour.
type NoteService struct {
	repo      ports.NoteRepository
	broadcast ports.Broadcaster
	logger    zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, broadcast ports.Broadcaster, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, broadcast: broadcast, logger: logger}
}

func (s *NoteService) List(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list notes")
		return nil, err
	}
	return notes, nil
}

// Add persists a new note and broadcasts it. Timestamps are assigned here,
// mirroring what the document store would stamp on insert.
func (s *NoteService) Add(ctx context.Context, title, content string) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, note); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert note")
		return nil, err
	}

	s.logger.Info().Str("note_id", note.ID).Str("title", note.Title).Msg("note added")
	s.broadcast.NoteAdded(note)
	return note, nil
}

// Remove deletes the note with the given id and broadcasts the deletion
// with that id whether or not a matching note existed. Only store failures
// propagate to the caller.
func (s *NoteService) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNoteNotFound) {
			s.logger.Error().Err(err).Str("note_id", id).Msg("failed to delete note")
			return err
		}
		s.logger.Debug().Str("note_id", id).Msg("delete of missing note treated as success")
	}

	s.logger.Info().Str("note_id", id).Msg("note deleted")
	s.broadcast.NoteDeleted(id)
	return nil
}
