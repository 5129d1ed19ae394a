package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidEndpoint    = errors.New("invalid endpoint")
	ErrInvalidRequest     = errors.New("invalid request parameters")
	ErrNetwork            = errors.New("network error")
	ErrInvalidResponse    = errors.New("invalid response from the server")
	ErrNoData             = errors.New("no data received from the server")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenRefreshFailed = errors.New("unable to refresh token")
	ErrBadRequest         = errors.New("bad request")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrServer             = errors.New("server error")
	ErrUnhandledStatus    = errors.New("unexpected status code")
	ErrDecode             = errors.New("failed to decode response")
)

// StatusError is returned for every non-2xx response. Kind is one of the
// status sentinels above, so errors.Is(err, ErrServer) works and errors.As
// recovers the code.
type StatusError struct {
	Code int
	Kind error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status code %d)", e.Kind, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// classifyStatus maps a non-2xx status code to its StatusError.
func classifyStatus(code int) *StatusError {
	var kind error
	switch {
	case code == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case code == http.StatusBadRequest:
		kind = ErrBadRequest
	case code == http.StatusForbidden:
		kind = ErrForbidden
	case code == http.StatusNotFound:
		kind = ErrNotFound
	case code >= 500 && code <= 599:
		kind = ErrServer
	default:
		kind = ErrUnhandledStatus
	}
	return &StatusError{Code: code, Kind: kind}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
