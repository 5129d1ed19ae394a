package fakebackend

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token,omitempty"`
}

type oauthError struct {
	Error string `json:"error"`
}

type idClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// handleToken implements the refresh_token grant. Any non-empty refresh
// token is accepted; each call issues a fresh access token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, oauthError{Error: "invalid_request"})
		return
	}
	if r.PostForm.Get("grant_type") != "refresh_token" {
		writeJSON(w, http.StatusBadRequest, oauthError{Error: "unsupported_grant_type"})
		return
	}
	if r.PostForm.Get("refresh_token") == "" {
		writeJSON(w, http.StatusBadRequest, oauthError{Error: "invalid_grant"})
		return
	}

	access := s.IssueToken()

	s.mu.Lock()
	name, email := s.idName, s.idEmail
	s.mu.Unlock()

	now := s.now()
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, idClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fakebackend",
			Subject:   email,
			Audience:  jwt.ClaimStrings{r.PostForm.Get("client_id")},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email:         email,
		EmailVerified: true,
		Name:          name,
	}).SignedString(s.signingKey)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, oauthError{Error: "server_error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		IDToken:     idToken,
	})
}

// IssueToken creates a new valid access token.
func (s *Server) IssueToken() string {
	tok := "at-" + uuid.NewString()
	s.AcceptToken(tok)
	return tok
}
