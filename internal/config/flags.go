package config

import (
	"flag"
	"time"

	"github.com/qup1010/moodlistener/internal/flagx"
)

// parseFlags overlays cfg with the flags below. Arguments that belong to
// other parsers (such as -c) are filtered out first with flagx.FilterArgs.
//
//	-b string   storage backend: sqlite or kv
//	-d string   SQLite database file
//	-k string   kv backend JSON file (empty: in memory)
//	-t int      SQLite busy timeout in seconds
//	-l string   log level
//	-w int      default trend window in days
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite or kv)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database")
	fs.StringVar(&cfg.KVPath, "k", cfg.KVPath, "path to the kv JSON file (empty keeps data in memory)")
	busyTimeout := fs.Int("t", int(cfg.BusyTimeout.Seconds()), "SQLite busy timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.TrendWindow, "w", cfg.TrendWindow, "default trend window (in days)")

	if err := fs.Parse(flagx.FilterArgs(args, flagx.FlagNames(fs))); err != nil {
		panic(err)
	}

	// Only an explicit -t replaces the timeout, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Second
		}
	})
}
