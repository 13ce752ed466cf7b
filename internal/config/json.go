package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/bannerkeeper/internal/flagx"
	"github.com/dmitrijs2005/bannerkeeper/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "10s" style strings or integer nanoseconds. Absent fields keep the value
// already in Config.
type JsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	MonitorInterval     timex.Duration `json:"monitor_interval"`
	MonitorThreshold    int            `json:"monitor_threshold"`
	ReachabilityURL     string         `json:"reachability_url"`
	ReachabilityTimeout timex.Duration `json:"reachability_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SessionSecret       string         `json:"session_secret"`
	SessionTTL          timex.Duration `json:"session_ttl"`
	LogLevel            string         `json:"log_level"`
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.ReachabilityURL, c.ReachabilityURL)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.LogLevel, c.LogLevel)
	if c.MonitorThreshold > 0 {
		config.MonitorThreshold = c.MonitorThreshold
	}
	if c.MonitorInterval.Duration > 0 {
		config.MonitorInterval = c.MonitorInterval.Duration
	}
	if c.ReachabilityTimeout.Duration > 0 {
		config.ReachabilityTimeout = c.ReachabilityTimeout.Duration
	}
	if c.OnlineCheckInterval.Duration > 0 {
		config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
	if c.SessionTTL.Duration > 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
