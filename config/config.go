// Package config handles application configuration.
//
// Everything here is runtime configuration for the wallet process: which
// node to talk to, which chain to sign for, and how to log. Nothing in the
// derivation or signing core reads configuration directly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds runtime configuration for arcwallet.
type Config struct {
	// Node is the ledger node JSON-RPC endpoint.
	Node NodeConfig `json:"node"`

	// Wallet holds key-derivation settings.
	Wallet WalletConfig `json:"wallet"`

	// Log holds logging settings.
	Log LogConfig `json:"log"`
}

// NodeConfig holds ledger node connection settings.
type NodeConfig struct {
	Endpoint string `json:"endpoint"`
	ChainID  int64  `json:"chain_id"`

	// RequestTimeoutSec bounds each node round trip (gas price, estimate,
	// balance, submit). Zero means DefaultRequestTimeout.
	RequestTimeoutSec int `json:"request_timeout_sec"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (n NodeConfig) RequestTimeout() time.Duration {
	if n.RequestTimeoutSec <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(n.RequestTimeoutSec) * time.Second
}

// WalletConfig holds key-derivation settings.
type WalletConfig struct {
	// StandardDerivation switches to m/44'/60'/0'/0/0 derivation.
	// Default is the master-key shortcut; see internal/wallet.MasterKeyScalar.
	StandardDerivation bool `json:"standard_derivation"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
}

// Load reads a JSON config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
