package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/logging"
	"golang.org/x/oauth2"
)

// OAuth2Config describes the token endpoint and client credentials.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	// HTTPClient is used for token requests when set.
	HTTPClient *http.Client
}

// OAuth2Provider restores a session by exchanging the stored refresh token
// at the provider's token endpoint.
type OAuth2Provider struct {
	cfg    *oauth2.Config
	client *http.Client
	tokens TokenStore
	log    logging.Logger
}

func NewOAuth2Provider(c OAuth2Config, tokens TokenStore, log logging.Logger) *OAuth2Provider {
	return &OAuth2Provider{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Scopes:       c.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  c.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: c.HTTPClient,
		tokens: tokens,
		log:    log,
	}
}

// SignIn stores refreshToken and restores a session from it.
func (p *OAuth2Provider) SignIn(ctx context.Context, refreshToken string) (*session.Identity, error) {
	if refreshToken == "" {
		return nil, ErrNoPreviousSignIn
	}
	if err := p.tokens.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return p.Restore(ctx)
}

func (p *OAuth2Provider) Restore(ctx context.Context) (*session.Identity, error) {
	rt, err := p.tokens.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if rt == "" {
		return nil, ErrNoPreviousSignIn
	}

	if p.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	}

	tok, err := p.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: rt}).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			p.log.Warn(ctx, "token endpoint rejected refresh", "status", re.Response.StatusCode, "error_code", re.ErrorCode)
		}
		return nil, fmt.Errorf("refresh identity session: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	if tok.RefreshToken != "" && tok.RefreshToken != rt {
		if err := p.tokens.SaveRefreshToken(ctx, tok.RefreshToken); err != nil {
			return nil, fmt.Errorf("save rotated refresh token: %w", err)
		}
		p.log.Debug(ctx, "refresh token rotated")
	}

	id := &session.Identity{AccessToken: tok.AccessToken}

	if raw, ok := tok.Extra("id_token").(string); ok && raw != "" {
		claims, err := ParseIDToken(raw)
		if err != nil {
			p.log.Warn(ctx, "ignoring unreadable id token", "error", err)
		} else {
			id.UserName = claims.Name
			id.UserEmail = claims.Email
		}
	}

	return id, nil
}

// SignOut forgets the refresh token. The provider-side grant is left alone.
func (p *OAuth2Provider) SignOut(ctx context.Context) error {
	if err := p.tokens.ClearRefreshToken(ctx); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
