// Package config loads checker settings from the environment. The game's
// own NEVERBALL_DATA variable doubles as the default base data directory,
// so the checker points at the same store the game runs from.
package config

import "github.com/kelseyhightower/envconfig"

// DefaultDataDir is used when neither the flag nor the environment names a
// base data directory. It matches the game's source-tree layout.
const DefaultDataDir = "data"

// Config holds environment-derived settings. Flags override these.
type Config struct {
	DataDir string `envconfig:"DATA"`    // NEVERBALL_DATA
	Verbose bool   `envconfig:"VERBOSE"` // NEVERBALL_VERBOSE
}

// Load reads NEVERBALL_* variables and applies defaults.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("neverball", &c); err != nil {
		return Config{}, err
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	return c, nil
}
