package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by parseEnv.
const (
	EnvBaseURL           = "JOTME_BASE_URL"
	EnvRequestTimeout    = "JOTME_REQUEST_TIMEOUT"
	EnvDatabasePath      = "JOTME_DB_PATH"
	EnvLogLevel          = "JOTME_LOG_LEVEL"
	EnvLogFormat         = "JOTME_LOG_FORMAT"
	EnvOAuthClientID     = "JOTME_OAUTH_CLIENT_ID"
	EnvOAuthClientSecret = "JOTME_OAUTH_CLIENT_SECRET"
	EnvOAuthTokenURL     = "JOTME_OAUTH_TOKEN_URL"
)

// loadDotEnv copies variables from path into the process environment without
// overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with JOTME_* variables. JOTME_REQUEST_TIMEOUT takes a
// Go duration ("15s"); an unparsable value panics like a bad flag does.
func parseEnv(cfg *Config) {
	setIfNotEmpty(&cfg.BaseURL, getEnv(EnvBaseURL))
	setIfNotEmpty(&cfg.DatabasePath, getEnv(EnvDatabasePath))
	setIfNotEmpty(&cfg.LogLevel, getEnv(EnvLogLevel))
	setIfNotEmpty(&cfg.LogFormat, getEnv(EnvLogFormat))
	setIfNotEmpty(&cfg.OAuthClientID, getEnv(EnvOAuthClientID))
	setIfNotEmpty(&cfg.OAuthClientSecret, getEnv(EnvOAuthClientSecret))
	setIfNotEmpty(&cfg.OAuthTokenURL, getEnv(EnvOAuthTokenURL))

	if raw := getEnv(EnvRequestTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
