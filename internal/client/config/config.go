package config

import "time"

// Config holds runtime settings for the JotMe CLI.
//
// Fields:
//   - BaseURL: origin + path prefix of the JotMe backend.
//   - RequestTimeout: per-request deadline applied by the transport.
//   - DatabasePath: SQLite file holding locally persisted settings.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
//   - OAuthClientID, OAuthClientSecret, OAuthTokenURL: identity provider
//     parameters used to silently refresh the access token.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	DatabasePath      string
	LogLevel          string
	LogFormat         string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
}

const (
	DefaultBaseURL       = "https://www.e-overhaul.com/jotme"
	DefaultOAuthTokenURL = "https://oauth2.googleapis.com/token"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "jotme.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.OAuthTokenURL = DefaultOAuthTokenURL
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	loadDotEnv(".env")
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
