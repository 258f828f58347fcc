package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a remote service base URL
//	-d local database path
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-refresh-interval background feed refresh interval
//	-probe-interval connectivity probe interval
//	-log-file log file path
func ParseFlags() *StructuredConfig {
	var baseURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var refreshInterval time.Duration
	var probeInterval time.Duration
	var logFile string

	flag.StringVar(&baseURL, "a", "", "Remote service base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Background refresh interval")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	flag.StringVar(&logFile, "log-file", "", "Log file path")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
			ProbeInterval:   probeInterval,
		},
		Log:          Log{FilePath: logFile},
		jsonFilePath: jsonConfigPath,
	}
}
