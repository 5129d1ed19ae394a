package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jotme/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 11, 7, 10, 0, 0, 0, time.UTC)
}

func post(t *testing.T, h http.Handler, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBearerRequired(t *testing.T) {
	s := New()
	h := s.Router("")

	rec := post(t, h, "/jots/getUserJots.php", "", url.Values{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(t, h, "/jots/getUserJots.php", "unknown", url.Values{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok := s.IssueToken()
	rec = post(t, h, "/jots/getUserJots.php", tok, url.Values{})
	assert.Equal(t, http.StatusOK, rec.Code)

	s.RevokeTokens()
	rec = post(t, h, "/jots/getUserJots.php", tok, url.Values{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddJotThenHistory_WithPrefix(t *testing.T) {
	s := New(WithClock(fixedClock), WithOpenAuth())
	h := s.Router("/jotme")
	who := url.Values{"userEmail": {"ann@example.com"}}

	form := url.Values{"jotText": {"Remind me to call mom"}, "userEmail": {"ann@example.com"}}
	rec := post(t, h, "/jotme/jots/addJotForUser.php", "t", form)
	require.Equal(t, http.StatusOK, rec.Code)

	var added models.JotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.True(t, added.Success)
	assert.Equal(t, "2024-11-07 10:00:00", added.Jot.CreatedAt)

	rec = post(t, h, "/jotme/jots/getUserJots.php", "t", who)
	var hist models.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist.Jots, 1)
	require.Len(t, hist.Todos, 1)
	assert.Equal(t, "call mom", hist.Todos[0].Text)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/jots/addJotForUser.php", reqs[0].Path)
}

func TestReminderText(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Remind me to call mom", "call mom", true},
		{"REMIND ME TO buy milk", "buy milk", true},
		{"remind me to   pay rent ", "pay rent", true},
		{"remind me to ", "", false},
		{"buy milk", "", false},
		// lowercases to the prefix but is one byte longer
		{"Rem\u0130nd me to call mom", "", false},
	}
	for _, tt := range tests {
		got, ok := reminderText(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAddJot_NonASCIIPrefixCreatesNoTodo(t *testing.T) {
	s := New(WithOpenAuth())
	h := s.Router("")

	form := url.Values{"jotText": {"Rem\u0130nd me to call mom"}, "userEmail": {"ann@example.com"}}
	rec := post(t, h, "/jots/addJotForUser.php", "t", form)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.Todos("ann@example.com"))
}

func TestCompleteTodo(t *testing.T) {
	s := New(WithOpenAuth())
	h := s.Router("")
	todo := s.SeedTodo("ann@example.com", "call mom", nil)

	rec := post(t, h, "/jots/completeTodo.php", "t", url.Values{
		"todoId":    {"999"},
		"userEmail": {"ann@example.com"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, h, "/jots/completeTodo.php", "t", url.Values{
		"todoId":    {"1"},
		"userEmail": {"ann@example.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Todos("ann@example.com")[0].Completed())
	assert.Equal(t, int64(1), todo.ID)
}

func TestFailNext(t *testing.T) {
	s := New(WithOpenAuth())
	h := s.Router("")
	s.FailNext("/qa/askQuestion.php", http.StatusServiceUnavailable, "down")

	rec := post(t, h, "/qa/askQuestion.php", "t", url.Values{"question": {"why?"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", rec.Body.String())

	rec = post(t, h, "/qa/askQuestion.php", "t", url.Values{"question": {"why?"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndStartup(t *testing.T) {
	s := New(WithOpenAuth())
	h := s.Router("")
	form := url.Values{"userName": {"Ann"}, "userEmail": {"ann@example.com"}}

	rec := post(t, h, "/user/startup.php", "t", form)
	var env models.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)

	rec = post(t, h, "/user/register.php", "t", form)
	var reg models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.True(t, reg.Success)
	assert.Positive(t, reg.UserID)

	rec = post(t, h, "/user/register.php", "t", form)
	var again models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, reg.UserID, again.UserID)

	rec = post(t, h, "/user/startup.php", "t", form)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Welcome back, Ann!", env.Message)
}

func TestTokenEndpoint(t *testing.T) {
	s := New(WithIdentity("Ann", "ann@example.com"))
	h := s.Router("")

	rec := post(t, h, "/oauth/token", "", url.Values{"grant_type": {"password"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/oauth/token", "", url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {"rt"},
		"client_id":     {"cli"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var tok tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.NotEmpty(t, tok.AccessToken)

	claims := &idClaims{}
	_, err := jwt.ParseWithClaims(tok.IDToken, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)

	rec = post(t, h, "/jots/getUserJots.php", tok.AccessToken, url.Values{})
	assert.Equal(t, http.StatusOK, rec.Code)
}
