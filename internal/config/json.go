package config

import (
	"encoding/json"
	"os"

	"github.com/qup1010/moodlistener/internal/flagx"
	"github.com/qup1010/moodlistener/internal/timex"
)

// JsonConfig is the on-disk form of Config. Pointer fields tell keys that
// are absent from keys set to their zero value; only present keys override.
// Durations use timex.Duration, so "5s" and 5000000000 are both accepted.
type JsonConfig struct {
	Backend      *string         `json:"backend"`
	DatabasePath *string         `json:"database_path"`
	KVPath       *string         `json:"kv_path"`
	BusyTimeout  *timex.Duration `json:"busy_timeout"`
	LogLevel     *string         `json:"log_level"`
	TrendWindow  *int            `json:"trend_window"`
}

// parseJson overlays cfg with the JSON file selected by -c or -config in
// args. Without such a flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
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
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.Backend != nil {
		cfg.Backend = *jc.Backend
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.KVPath != nil {
		cfg.KVPath = *jc.KVPath
	}
	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.TrendWindow != nil {
		cfg.TrendWindow = *jc.TrendWindow
	}
}
