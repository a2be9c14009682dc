package ports

import (
	"context"

	"github.com/noteshare/notes-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenVerifier is the single token-verification contract. The login
// pipeline issues tokens that this contract accepts, and the protected-route
// middleware rejects everything it does not.
type TokenVerifier interface {
	// VerifyToken checks signature and expiry and returns the carried user id.
	VerifyToken(token string) (string, error)
}
