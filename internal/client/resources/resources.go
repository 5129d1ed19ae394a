// Package resources wraps the JotMe backend endpoints in typed calls.
//
// Every call goes through a Caller (normally *api.Client), so it inherits
// the single refresh-and-retry on 401. Bodies that do not match the expected
// shape fail with api.ErrDecode; an envelope with success=false fails with
// *APIError.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/jotme/internal/client/api"
)

// Caller sends a request and returns the 2xx response body.
type Caller interface {
	Do(ctx context.Context, r api.Request) ([]byte, error)
}

// APIError is a well-formed response in which the backend reported failure.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request was not successful", e.Endpoint)
	}
	return e.Message
}

type envelopeProbe struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// call sends r and decodes the body into T.
func call[T any](ctx context.Context, c Caller, r api.Request) (T, error) {
	var out T

	body, err := c.Do(ctx, r)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: %s: %w", api.ErrDecode, r.Endpoint, err)
	}

	var probe envelopeProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return out, fmt.Errorf("%w: %s: %w", api.ErrDecode, r.Endpoint, err)
	}
	if probe.Success != nil && !*probe.Success {
		return out, &APIError{Endpoint: r.Endpoint, Message: probe.Message}
	}

	return out, nil
}
