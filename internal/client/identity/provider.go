// Package identity is the boundary to the external identity provider: it
// silently restores a previous sign-in and yields the bearer token plus the
// user's name and email.
package identity

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jotme/internal/client/session"
)

var (
	ErrNoPreviousSignIn = errors.New("no previous sign-in")
	ErrNoAccessToken    = errors.New("identity provider returned no access token")
	ErrInvalidIDToken   = errors.New("invalid id token")
)

// Provider restores and ends identity sessions.
type Provider interface {
	// Restore silently re-establishes the previous session. It returns
	// ErrNoPreviousSignIn when there is nothing to restore.
	Restore(ctx context.Context) (*session.Identity, error)
	SignOut(ctx context.Context) error
}

// TokenStore persists the long-lived refresh token between runs.
type TokenStore interface {
	RefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
	ClearRefreshToken(ctx context.Context) error
}
