package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jotme/internal/flagx"
	"github.com/dmitrijs2005/jotme/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. RequestTimeout is a
// timex.Duration so the file can say "30s" or integer nanoseconds. Empty
// fields leave the current value untouched.
type JsonConfig struct {
	BaseURL           string         `json:"base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	DatabasePath      string         `json:"database_path"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
	OAuthClientID     string         `json:"oauth_client_id"`
	OAuthClientSecret string         `json:"oauth_client_secret"`
	OAuthTokenURL     string         `json:"oauth_token_url"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without either flag it does nothing. Read or unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.BaseURL, jc.BaseURL)
	setIfNotEmpty(&cfg.DatabasePath, jc.DatabasePath)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, jc.LogFormat)
	setIfNotEmpty(&cfg.OAuthClientID, jc.OAuthClientID)
	setIfNotEmpty(&cfg.OAuthClientSecret, jc.OAuthClientSecret)
	setIfNotEmpty(&cfg.OAuthTokenURL, jc.OAuthTokenURL)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
