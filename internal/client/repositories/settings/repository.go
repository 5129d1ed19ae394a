// Package settings persists the signed-in user's identifiers and the
// refresh token in the local SQLite database, so a restarted client can
// restore its session without prompting.
package settings

import "context"

// Known keys of the settings table.
const (
	KeyUserID       = "user_id"
	KeyUserName     = "user_name"
	KeyUserEmail    = "user_email"
	KeyRefreshToken = "refresh_token"
)

// Repository is a key/value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
