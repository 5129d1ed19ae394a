package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/jotme/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-t int      request timeout in seconds
//	-d string   path of the local settings database
//	-l string   log level (debug, info, warn, error)
//
// args is filtered with flagx.FilterArgs so flags owned by other components
// (-c) do not break parsing. Invalid values panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("jotme", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local settings database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l"})); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
