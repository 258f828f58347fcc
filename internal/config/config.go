// Package config assembles the client configuration by merging environment
// variables, command-line flags, and an optional JSON file, in that order of
// arrival, with mergo filling only the gaps.
package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the top-level configuration container for the feedkit
// data layer. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the remote service endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings (feed refresh, connectivity
	// probing).
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// jsonFilePath is the optional path to a JSON configuration file,
	// populated via the CONFIG environment variable or the -c/-config flag.
	jsonFilePath string
}

// Adapter holds network settings used by the transport layer.
type Adapter struct {
	// BaseURL is the remote service endpoint.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path backing the local cache.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Storage groups local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// Workers contains background worker settings.
type Workers struct {
	// RefreshInterval defines how often the background refresher re-syncs
	// the feed.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// ProbeInterval defines how often the connectivity probe pings the
	// service.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Log contains logging output settings.
type Log struct {
	// FilePath, when set, redirects log output to a file.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// ClientConfig is the validated configuration view handed to the
// application wiring.
type ClientConfig struct {
	Adapter Adapter
	Storage ClientStorage
	Workers Workers
	Log     Log
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientDB contains the local database settings.
type ClientDB struct {
	DSN string
}

// GetClientConfig builds and validates the client configuration from the
// merged structured sources.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error building structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: cfg.Adapter,
		Storage: ClientStorage{DB: ClientDB{DSN: cfg.Storage.DB.DSN}},
		Workers: cfg.Workers,
		Log:     cfg.Log,
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Workers.RefreshInterval <= 0 {
		cfg.Workers.RefreshInterval = 5 * time.Minute
	}
	if cfg.Workers.ProbeInterval <= 0 {
		cfg.Workers.ProbeInterval = 15 * time.Second
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "feedkit.db"
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	return nil
}
