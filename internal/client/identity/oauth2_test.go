package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/jotme/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	saveErr error
}

func (m *memTokens) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SaveRefreshToken(_ context.Context, t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = t
	return nil
}

func (m *memTokens) ClearRefreshToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func tokenServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func writeToken(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newProvider(srv *httptest.Server, tokens TokenStore) *OAuth2Provider {
	return NewOAuth2Provider(OAuth2Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL + "/token",
		HTTPClient:   srv.Client(),
	}, tokens, logging.Nop())
}

func TestRestore_NoRefreshToken(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called")
	})

	_, err := newProvider(srv, &memTokens{}).Restore(context.Background())
	require.ErrorIs(t, err, ErrNoPreviousSignIn)
}

func TestRestore_Success(t *testing.T) {
	idToken := signedIDToken(t, "Ann Lee", "ann@example.com")
	var gotForm map[string]string

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":    r.PostForm.Get("grant_type"),
			"refresh_token": r.PostForm.Get("refresh_token"),
			"client_id":     r.PostForm.Get("client_id"),
		}
		writeToken(w, map[string]any{
			"access_token": "at-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     idToken,
		})
	})

	tokens := &memTokens{token: "rt-1"}
	id, err := newProvider(srv, tokens).Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "at-1", id.AccessToken)
	assert.Equal(t, "Ann Lee", id.UserName)
	assert.Equal(t, "ann@example.com", id.UserEmail)
	assert.Equal(t, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": "rt-1",
		"client_id":     "client-id",
	}, gotForm)
	assert.Equal(t, "rt-1", tokens.token)
}

func TestRestore_RotatedRefreshTokenIsSaved(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeToken(w, map[string]any{
			"access_token":  "at-2",
			"token_type":    "Bearer",
			"refresh_token": "rt-2",
		})
	})

	tokens := &memTokens{token: "rt-1"}
	id, err := newProvider(srv, tokens).Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-2", id.AccessToken)
	assert.Empty(t, id.UserEmail)
	assert.Equal(t, "rt-2", tokens.token)
}

func TestRestore_EndpointRejects(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := newProvider(srv, &memTokens{token: "revoked"}).Restore(context.Background())
	require.Error(t, err)
}

func TestRestore_UnreadableIDTokenIsIgnored(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeToken(w, map[string]any{
			"access_token": "at-3",
			"token_type":   "Bearer",
			"id_token":     "garbage",
		})
	})

	id, err := newProvider(srv, &memTokens{token: "rt"}).Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-3", id.AccessToken)
	assert.Empty(t, id.UserName)
}

func TestSignIn_StoresTokenThenRestores(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeToken(w, map[string]any{"access_token": "at", "token_type": "Bearer"})
	})
	tokens := &memTokens{}

	id, err := newProvider(srv, tokens).SignIn(context.Background(), "rt-new")
	require.NoError(t, err)
	assert.Equal(t, "at", id.AccessToken)
	assert.Equal(t, "rt-new", tokens.token)
}

func TestSignIn_SaveFails(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called")
	})
	boom := errors.New("disk full")

	_, err := newProvider(srv, &memTokens{saveErr: boom}).SignIn(context.Background(), "rt")
	require.ErrorIs(t, err, boom)
}

func TestSignOut_ClearsToken(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {})
	tokens := &memTokens{token: "rt"}

	require.NoError(t, newProvider(srv, tokens).SignOut(context.Background()))
	assert.Empty(t, tokens.token)

	_, err := newProvider(srv, tokens).Restore(context.Background())
	require.ErrorIs(t, err, ErrNoPreviousSignIn)
}
