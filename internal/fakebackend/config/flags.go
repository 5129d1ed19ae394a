package config

import (
	"flag"

	"github.com/dmitrijs2005/jotme/internal/flagx"
)

// parseFlags populates cfg from command-line flags.
//
// Supported flags:
//
//	-a string   listen address (e.g. ":8085")
//	-p string   route prefix (e.g. "/jotme")
//	-s string   ID token signing key
//	-n string   user name in issued ID tokens
//	-e string   user email in issued ID tokens
//	-o          accept any bearer token
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-s", "-n", "-e", "-o", "-l"})

	fs := flag.NewFlagSet("fakebackend", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "route prefix")
	fs.StringVar(&cfg.SigningKey, "s", cfg.SigningKey, "ID token signing key")
	fs.StringVar(&cfg.UserName, "n", cfg.UserName, "user name in ID tokens")
	fs.StringVar(&cfg.UserEmail, "e", cfg.UserEmail, "user email in ID tokens")
	fs.BoolVar(&cfg.OpenAuth, "o", cfg.OpenAuth, "accept any bearer token")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
