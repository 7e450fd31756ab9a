package config

import "time"

// DefaultRequestTimeout bounds each ledger node round trip.
const DefaultRequestTimeout = 15 * time.Second

// Default returns the default configuration: a local node on mainnet.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			Endpoint: "http://127.0.0.1:8545",
			ChainID:  1,
		},
		Wallet: WalletConfig{
			StandardDerivation: false,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
