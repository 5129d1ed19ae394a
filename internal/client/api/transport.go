package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jotme/internal/logging"
)

const maxLoggedBody = 2048

// Doer is the subset of *http.Client used by Transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport sends requests and classifies responses. It never retries.
type Transport struct {
	client  Doer
	timeout time.Duration
	log     logging.Logger
}

// NewTransport returns a Transport. A zero timeout disables the per-request
// deadline; client defaults to http.DefaultClient.
func NewTransport(client Doer, timeout time.Duration, log logging.Logger) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &Transport{client: client, timeout: timeout, log: log}
}

// Send executes req and returns the response body for 2xx statuses.
//
// Transport failures wrap ErrNetwork, an unreadable body ErrInvalidResponse,
// an empty 2xx body ErrNoData, and every other status a *StatusError. Raw
// bodies of non-2xx responses are logged before classification.
func (t *Transport) Send(ctx context.Context, req *http.Request) ([]byte, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)

	t.log.Debug(ctx, "sending request", "method", req.Method, "url", req.URL.Redacted())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if len(data) == 0 {
			return nil, ErrNoData
		}
		return data, nil
	}

	t.logErrorBody(ctx, req, resp.StatusCode, data)
	return nil, classifyStatus(resp.StatusCode)
}

func (t *Transport) logErrorBody(ctx context.Context, req *http.Request, code int, data []byte) {
	if len(data) > maxLoggedBody {
		data = data[:maxLoggedBody]
	}
	t.log.Warn(ctx, "raw API error response",
		"status", code, "method", req.Method, "path", req.URL.Path, "body", string(data))
}
