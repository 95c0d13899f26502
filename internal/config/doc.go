// Package config loads runtime configuration for the journal.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "backend": "sqlite",
//	  "database_path": "/home/me/.local/share/moodlistener/moodlistener.db",
//	  "kv_path": "",
//	  "busy_timeout": "5s",
//	  "log_level": "info",
//	  "trend_window": 7
//	}
//
// Keys missing from the file keep their earlier value.
//
// The package does not read environment variables, except through the XDG
// lookup of the default data directory.
package config
