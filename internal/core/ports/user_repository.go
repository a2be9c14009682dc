package ports

import (
	"context"

	"github.com/noteshare/notes-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// FindByUsernameOrEmail returns at most one user matching either field,
	// or domain.ErrUserNotFound.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Insert persists a new user. Returns domain.ErrUserExists when the
	// store's unique constraints reject the document.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
