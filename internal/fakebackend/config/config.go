// Package config handles configuration for the fake JotMe backend,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for cmd/fakebackend.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - Prefix: path prefix of the backend routes, e.g. "/jotme".
//   - SigningKey: HMAC key for issued ID tokens.
//   - UserName / UserEmail: identity put into issued ID tokens.
//   - OpenAuth: accept any non-empty bearer token.
//   - LogLevel: slog level name.
type Config struct {
	Addr       string
	Prefix     string
	SigningKey string
	UserName   string
	UserEmail  string
	OpenAuth   bool
	LogLevel   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8085"
	c.Prefix = "/jotme"
	c.SigningKey = "fakebackend-signing-key"
	c.UserName = "Jot Tester"
	c.UserEmail = "tester@example.com"
	c.LogLevel = "debug"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags in args.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
