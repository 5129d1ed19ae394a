// Package auth refreshes the bearer token after the backend rejects it.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/identity"
	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/logging"
	"golang.org/x/sync/singleflight"
)

// ErrEmptyToken is returned when a restore succeeds without a token.
var ErrEmptyToken = errors.New("restored session has no access token")

// TokenWriter receives the refreshed identity.
type TokenWriter interface {
	SignIn(id session.Identity)
	SetAccessToken(token string)
}

// Coordinator performs one silent restore per Refresh call. Calls that
// overlap share a single restore.
type Coordinator struct {
	provider identity.Provider
	sessions TokenWriter
	log      logging.Logger
	group    singleflight.Group
}

func NewCoordinator(provider identity.Provider, sessions TokenWriter, log logging.Logger) *Coordinator {
	return &Coordinator{provider: provider, sessions: sessions, log: log}
}

// Refresh restores the identity session and stores the new token together
// with any identity fields the provider returned. A token-only restore
// replaces just the token. On failure the session is
// left untouched and the error wraps api.ErrTokenRefreshFailed.
func (c *Coordinator) Refresh(ctx context.Context) error {
	_, err, shared := c.group.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	if shared {
		c.log.Debug(ctx, "joined in-flight token refresh")
	}
	return err
}

func (c *Coordinator) refresh(ctx context.Context) error {
	id, err := c.provider.Restore(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", api.ErrTokenRefreshFailed, err)
	}
	if id == nil || id.AccessToken == "" {
		return fmt.Errorf("%w: %w", api.ErrTokenRefreshFailed, ErrEmptyToken)
	}

	if id.UserName == "" && id.UserEmail == "" {
		c.sessions.SetAccessToken(id.AccessToken)
	} else {
		c.sessions.SignIn(*id)
	}
	c.log.Info(ctx, "access token refreshed")
	return nil
}
