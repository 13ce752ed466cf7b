// Package config handles configuration for bannerkeeper: defaults, an
// optional JSON file overlay and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: SQLite database file.
//   - MonitorInterval / MonitorThreshold: anomaly window and action count.
//   - ReachabilityURL / ReachabilityTimeout: target of the online probe.
//   - OnlineCheckInterval: how often the CLI re-probes reachability.
//   - SessionSecret / SessionTTL: HMAC key and lifetime of session tokens.
//     An empty secret is replaced by a random one at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DatabasePath        string
	MonitorInterval     time.Duration
	MonitorThreshold    int
	ReachabilityURL     string
	ReachabilityTimeout time.Duration
	OnlineCheckInterval time.Duration
	SessionSecret       string
	SessionTTL          time.Duration
	LogLevel            string
}

// LoadDefaults populates c with defaults suitable for a local install.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "data/bannerkeeper.db"
	c.MonitorInterval = 10 * time.Second
	c.MonitorThreshold = 10
	c.ReachabilityURL = "https://www.google.com"
	c.ReachabilityTimeout = 3 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.SessionSecret = ""
	c.SessionTTL = 12 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config in args, then the remaining flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
