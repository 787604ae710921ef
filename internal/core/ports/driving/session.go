package driving

import (
	"context"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// SessionService tracks the single authenticated identity of the process
type SessionService interface {
	// Load restores a persisted session, if any
	Load(ctx context.Context)

	// Login checks credentials and starts a session
	Login(ctx context.Context, username, password string) (*domain.LoginResponse, error)

	// Logout ends the current session
	Logout(ctx context.Context) error

	// IsAuthenticated reports whether a session is active
	IsAuthenticated() bool

	// Current returns the signed-in user, or nil
	Current() *domain.User

	// ValidateToken checks a bearer token against the active session
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Subscribe registers for change events. Call the returned func to unsubscribe.
	Subscribe(buffer int) (<-chan domain.ChangeEvent, func())
}
