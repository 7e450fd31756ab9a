package config

import (
	"fmt"
	"net/url"
)

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Node.Endpoint == "" {
		return fmt.Errorf("node.endpoint is empty")
	}
	u, err := url.Parse(cfg.Node.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("node.endpoint %q is not a valid URL", cfg.Node.Endpoint)
	}
	if cfg.Node.ChainID <= 0 {
		return fmt.Errorf("node.chain_id must be positive, got %d", cfg.Node.ChainID)
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
