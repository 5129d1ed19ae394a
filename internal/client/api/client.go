package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/logging"
	"github.com/google/uuid"
)

// SessionReader exposes the current session.
type SessionReader interface {
	Snapshot() session.Snapshot
}

// Refresher silently re-establishes the identity session and updates the
// stored token. It is called at most once per Client.Do.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Client sends Requests on behalf of the current session and recovers from an
// expired token with a single refresh-and-retry.
type Client struct {
	builder   *Builder
	transport *Transport
	sessions  SessionReader
	refresher Refresher
	log       logging.Logger
}

func NewClient(builder *Builder, transport *Transport, sessions SessionReader, refresher Refresher, log logging.Logger) *Client {
	return &Client{
		builder:   builder,
		transport: transport,
		sessions:  sessions,
		refresher: refresher,
		log:       log,
	}
}

// Do builds r from the current session and sends it.
//
// On ErrUnauthorized the refresher runs once; if it succeeds, r is rebuilt
// from the refreshed session (same method, fields and file) and sent a second
// time, whose outcome is final. If it fails, the error wraps
// ErrTokenRefreshFailed.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	log := c.log.With("request_id", uuid.NewString(), "endpoint", r.Endpoint)

	body, err := c.send(ctx, r)
	if !errors.Is(err, ErrUnauthorized) {
		return body, err
	}

	log.Info(ctx, "token expired, attempting to refresh")

	if c.refresher == nil {
		return nil, fmt.Errorf("%w: no refresher configured", ErrTokenRefreshFailed)
	}
	if err := c.refresher.Refresh(ctx); err != nil {
		log.Warn(ctx, "token refresh failed", "error", err)
		if errors.Is(err, ErrTokenRefreshFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	log.Info(ctx, "token refreshed, retrying request")
	return c.send(ctx, r)
}

func (c *Client) send(ctx context.Context, r Request) ([]byte, error) {
	req, err := c.builder.Build(ctx, r, c.sessions.Snapshot())
	if err != nil {
		return nil, err
	}
	return c.transport.Send(ctx, req)
}
