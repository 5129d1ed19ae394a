package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jotme/internal/flagx"
)

// JsonConfig is a DTO used only for JSON unmarshalling.
type JsonConfig struct {
	Addr       string `json:"addr"`
	Prefix     string `json:"prefix"`
	SigningKey string `json:"signing_key"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	OpenAuth   *bool  `json:"open_auth"`
	LogLevel   string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Read or unmarshal errors panic.
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

	for dst, v := range map[*string]string{
		&cfg.Addr:       jc.Addr,
		&cfg.Prefix:     jc.Prefix,
		&cfg.SigningKey: jc.SigningKey,
		&cfg.UserName:   jc.UserName,
		&cfg.UserEmail:  jc.UserEmail,
		&cfg.LogLevel:   jc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if jc.OpenAuth != nil {
		cfg.OpenAuth = *jc.OpenAuth
	}
}
