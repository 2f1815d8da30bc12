// Package config provides YAML-based application configuration for chronolink.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
}

// StorageConfig defines where progress and run history live.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	SaveKey string `yaml:"save_key"`
}

// CatalogConfig points at an optional custom level file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines log destination and verbosity.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ServerConfig defines the SSH server parameters.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// GameConfig defines gameplay options.
type GameConfig struct {
	// Seed for scrambles and remixes. 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
}
