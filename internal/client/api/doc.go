// Package api is the HTTP layer of the JotMe client.
//
// # Overview
//
// The package is split into independently testable pieces:
//  1. Builder turns a Request (endpoint, method, ordered Params, optional
//     FilePayload) and a session.Snapshot into an *http.Request. POST/PUT
//     bodies are form-encoded, uploads are multipart/form-data, and every
//     request carries userEmail and userId.
//  2. Transport executes an *http.Request and classifies the response into a
//     body or one of the sentinel errors below. It knows nothing about auth.
//  3. Client composes both with a Refresher: on ErrUnauthorized it refreshes
//     the token once, rebuilds the same Request from the refreshed session
//     and sends it once more.
//  4. Future delivers the result of a background call exactly once. The
//     history view model completes todos through it.
//
// # Error Handling
//
// Failures are sentinel errors matched with errors.Is: ErrInvalidEndpoint,
// ErrInvalidRequest, ErrNetwork, ErrInvalidResponse, ErrNoData,
// ErrUnauthorized, ErrTokenRefreshFailed, ErrBadRequest, ErrForbidden,
// ErrNotFound, ErrServer, ErrUnhandledStatus and ErrDecode. HTTP status
// failures are *StatusError values carrying the code (use errors.As).
package api
