// Package config loads runtime configuration for the JotMe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables JOTME_*, after loading an optional .env file.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   local settings database path
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://www.e-overhaul.com/jotme",
//	  "request_timeout": "30s",
//	  "database_path": "jotme.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "oauth_client_id": "...",
//	  "oauth_client_secret": "...",
//	  "oauth_token_url": "https://oauth2.googleapis.com/token"
//	}
package config
