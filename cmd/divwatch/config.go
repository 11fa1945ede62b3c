package main

import (
	"time"

	"github.com/divwatch/divwatch/internal/model"
)

const (
	defaultPaceDelay = model.DefaultPaceDelay
	defaultBindHost  = "127.0.0.1"
	defaultAPIPort   = model.DefaultAPIPort
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	JournalPath string        `mapstructure:"journal-path"`
	PaceDelay   time.Duration `mapstructure:"pace-delay"`
	DBPath      string        `mapstructure:"db-path"`
	APIEnabled  bool          `mapstructure:"api-enabled"`
	APIPort     int           `mapstructure:"api-port"`
	APIAddr     string        `mapstructure:"api-addr"`
	Watch       bool          `mapstructure:"watch"`
	ConfigPath  string        `mapstructure:"-"` // not from config file
}
