package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendKV     = "kv"
)

const appDir = "moodlistener"

// Config holds runtime settings for the journal.
//
// Fields:
//   - Backend: "sqlite" or "kv"; chosen once per process.
//   - DatabasePath: SQLite database file (or ":memory:").
//   - KVPath: JSON file of the kv backend; empty keeps data in memory.
//   - BusyTimeout: how long SQLite waits on a locked database.
//   - LogLevel: debug, info, warn or error.
//   - TrendWindow: default number of days in the stats trend.
type Config struct {
	Backend      string
	DatabasePath string
	KVPath       string
	BusyTimeout  time.Duration
	LogLevel     string
	TrendWindow  int
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendSQLite
	c.DatabasePath = filepath.Join(DataDir(), appDir+".db")
	c.KVPath = ""
	c.BusyTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.TrendWindow = 7
}

// Validate rejects settings no backend can run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path must be set for the %s backend", BackendSQLite)
		}
	case BackendKV:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendKV)
	}
	if c.TrendWindow < 1 {
		return fmt.Errorf("trend window must be positive, got %d", c.TrendWindow)
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout must not be negative, got %s", c.BusyTimeout)
	}
	return nil
}

// DataDir is the per-user directory holding the journal files, following
// the XDG base directory layout.
func DataDir() string {
	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appDir)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir)
}

// LoadConfig builds a Config from defaults, then the JSON file named by -c
// or -config, then the flags in args (normally os.Args[1:]). Later sources
// win. Malformed JSON or flag values panic.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
