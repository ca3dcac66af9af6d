// Package config holds the static configuration surface of a run.
// A Config is built once at process start and threaded explicitly through
// the wiring; nothing in this package is mutable process-wide state.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults mirror the conventional Chicago 311 extract layout.
const (
	DefaultDBPath     = "Chicago311.db"
	DefaultTable      = "service_requests"
	DefaultOutDir     = "output"
	DefaultScatterCap = 5000
)

// Environment variable names honored as flag defaults.
const (
	EnvDBPath     = "SRVIZ_DB"
	EnvTable      = "SRVIZ_TABLE"
	EnvOutDir     = "SRVIZ_OUT"
	EnvScatterCap = "SRVIZ_SCATTER_CAP"
)

// Config is the full externally adjustable surface: store location, table
// name, output directory, and the geo-scatter sample cap.
type Config struct {
	DBPath     string
	Table      string
	OutDir     string
	ScatterCap int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:     DefaultDBPath,
		Table:      DefaultTable,
		OutDir:     DefaultOutDir,
		ScatterCap: DefaultScatterCap,
	}
}

// FromEnv returns the defaults overlaid with any SRVIZ_* environment
// variables. A .env file in the working directory is loaded first if
// present; its absence is not an error.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		cfg.Table = v
	}
	if v := os.Getenv(EnvOutDir); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv(EnvScatterCap); v != "" {
		if cap, err := strconv.Atoi(v); err == nil {
			cfg.ScatterCap = cap
		}
	}
	return cfg
}

// Validate rejects configurations no run could use.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Table == "" {
		return fmt.Errorf("table name must not be empty")
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.ScatterCap <= 0 {
		return fmt.Errorf("scatter sample cap must be positive, got %d", c.ScatterCap)
	}
	return nil
}
