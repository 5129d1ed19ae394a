package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   string
}

// scriptedDoer answers with the next status in statuses and records what it
// received.
type scriptedDoer struct {
	mu       sync.Mutex
	statuses []int
	bodies   []string
	seen     []recordedRequest
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	d.seen = append(d.seen, recordedRequest{
		method: req.Method,
		path:   req.URL.Path,
		auth:   req.Header.Get("Authorization"),
		body:   body,
	})

	i := len(d.seen) - 1
	status := d.statuses[len(d.statuses)-1]
	if i < len(d.statuses) {
		status = d.statuses[i]
	}
	respBody := `{"success":true}`
	if i < len(d.bodies) {
		respBody = d.bodies[i]
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(respBody))}, nil
}

type fakeRefresher struct {
	store *session.Store
	token string
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.store.SetAccessToken(f.token)
	return nil
}

func newTestClient(doer Doer, store *session.Store, r Refresher) *Client {
	return NewClient(
		NewBuilder("https://api.example/jotme"),
		NewTransport(doer, 0, logging.Nop()),
		store,
		r,
		logging.Nop(),
	)
}

func newSignedInStore() *session.Store {
	store := session.NewStore()
	store.SetUser(17, "Ann", "ann@example.org")
	store.SignIn(session.Identity{AccessToken: "expired"})
	return store
}

func TestClient_RetriesOnceAfterRefresh(t *testing.T) {
	store := newSignedInStore()
	doer := &scriptedDoer{statuses: []int{401, 200}, bodies: []string{"", `{"success":true,"message":"ok"}`}}
	ref := &fakeRefresher{store: store, token: "fresh"}
	c := newTestClient(doer, store, ref)

	body, err := c.Do(context.Background(), Request{
		Endpoint: "/jots/addJotForUser.php",
		Method:   http.MethodPost,
		Params:   NewParams("jotText", "call mom"),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, string(body))
	assert.Equal(t, 1, ref.calls)
	require.Len(t, doer.seen, 2)

	first, second := doer.seen[0], doer.seen[1]
	assert.Equal(t, "Bearer expired", first.auth)
	assert.Equal(t, "Bearer fresh", second.auth)
	assert.Equal(t, first.method, second.method)
	assert.Equal(t, first.path, second.path)
	assert.Equal(t, first.body, second.body, "retry replays the original form body")
	assert.Contains(t, second.body, "jotText=call+mom")
}

func TestClient_RefreshFailureLeavesSessionUntouched(t *testing.T) {
	store := newSignedInStore()
	before := store.Snapshot()
	doer := &scriptedDoer{statuses: []int{401}}
	ref := &fakeRefresher{store: store, err: errors.New("no previous sign-in")}
	c := newTestClient(doer, store, ref)

	_, err := c.Do(context.Background(), Request{Endpoint: "/qa/askQuestion.php", Method: http.MethodPost})

	require.ErrorIs(t, err, ErrTokenRefreshFailed)
	assert.Equal(t, 1, ref.calls)
	assert.Len(t, doer.seen, 1)
	assert.Equal(t, before, store.Snapshot())
}

func TestClient_RefreshErrorAlreadyTyped(t *testing.T) {
	store := newSignedInStore()
	ref := &fakeRefresher{store: store, err: ErrTokenRefreshFailed}
	c := newTestClient(&scriptedDoer{statuses: []int{401}}, store, ref)

	_, err := c.Do(context.Background(), Request{Endpoint: "/a.php", Method: http.MethodPost})
	assert.Equal(t, ErrTokenRefreshFailed, err)
}

func TestClient_SecondUnauthorizedIsTerminal(t *testing.T) {
	store := newSignedInStore()
	doer := &scriptedDoer{statuses: []int{401, 401, 200}}
	ref := &fakeRefresher{store: store, token: "still-bad"}
	c := newTestClient(doer, store, ref)

	_, err := c.Do(context.Background(), Request{Endpoint: "/a.php", Method: http.MethodPost})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, ref.calls)
	assert.Len(t, doer.seen, 2)
}

func TestClient_NoRefresher(t *testing.T) {
	store := newSignedInStore()
	c := newTestClient(&scriptedDoer{statuses: []int{401}}, store, nil)

	_, err := c.Do(context.Background(), Request{Endpoint: "/a.php", Method: http.MethodPost})
	assert.ErrorIs(t, err, ErrTokenRefreshFailed)
}

func TestClient_OtherFailuresAreNotRetried(t *testing.T) {
	for _, status := range []int{400, 403, 404, 500} {
		store := newSignedInStore()
		doer := &scriptedDoer{statuses: []int{status}}
		ref := &fakeRefresher{store: store, token: "fresh"}
		c := newTestClient(doer, store, ref)

		_, err := c.Do(context.Background(), Request{Endpoint: "/a.php", Method: http.MethodPost})

		assert.Equal(t, status, StatusCode(err))
		assert.Zero(t, ref.calls)
		assert.Len(t, doer.seen, 1)
	}
}

func TestClient_MultipartReplayedOnRetry(t *testing.T) {
	store := newSignedInStore()
	doer := &scriptedDoer{statuses: []int{401, 200}}
	ref := &fakeRefresher{store: store, token: "fresh"}
	c := newTestClient(doer, store, ref)

	_, err := c.Do(context.Background(), Request{
		Endpoint: "/jots/addJotForUser.php",
		Params:   NewParams("jotText", "memo"),
		File:     &FilePayload{Data: []byte("AUDIO"), Name: "memo.m4a", MIMEType: "audio/mp4"},
	})

	require.NoError(t, err)
	require.Len(t, doer.seen, 2)
	assert.Contains(t, doer.seen[1].body, "AUDIO")
	assert.Contains(t, doer.seen[1].body, `name="jotText"`)
}
