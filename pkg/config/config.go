// Package config loads waclaw client configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the waclaw client configuration.
type Config struct {
	// Endpoint is the websocket transport endpoint.
	Endpoint string `json:"endpoint" env:"WACLAW_ENDPOINT"`
	// SelfJID is the current user identity, e.g. "5511999999999@c.us".
	SelfJID string `json:"self_jid" env:"WACLAW_SELF_JID"`
	// DefaultDelay is the artificial typing delay applied to sends when the
	// send command does not specify one.
	DefaultDelay time.Duration `json:"default_delay" env:"WACLAW_DEFAULT_DELAY"`
	// DialTimeout bounds the websocket dial.
	DialTimeout time.Duration `json:"dial_timeout" env:"WACLAW_DIAL_TIMEOUT"`
	Debug       bool          `json:"debug" env:"WACLAW_DEBUG"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    "wss://localhost:8443/ws",
		DialTimeout: 10 * time.Second,
	}
}

// LoadConfig reads the JSON config at path (missing file is fine) and then
// applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields required to open a session.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.SelfJID == "" {
		return fmt.Errorf("self_jid is required")
	}
	return nil
}
