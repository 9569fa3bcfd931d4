package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-t", "-i", "-v"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend base URL
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-i int      health check interval (seconds)
//	-v          verbose request logging
//
// Only the flags above are considered; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("despesas", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.HealthInterval.Seconds()), "health check interval (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose request logging")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.Timeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.HealthInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
