package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			DBPath:  "~/.chronolink/chronolink.db",
			SaveKey: "chrono_connect_save_v2",
		},
		Log: LogConfig{
			File:  "~/.chronolink/chronolink.log",
			Level: "info",
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKey:            ".ssh/chronolink_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}
