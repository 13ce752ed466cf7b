package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bannerkeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
// Supported flags:
//
//	-d string     database file
//	-i duration   monitor interval (e.g. "10s")
//	-t int        monitor threshold
//	-u string     reachability probe URL
//	-o duration   online check interval
//	-s string     session secret
//	-l string     log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-i", "-t", "-u", "-o", "-s", "-l"})

	fs := flag.NewFlagSet("bannerkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "database file")
	fs.DurationVar(&config.MonitorInterval, "i", config.MonitorInterval, "anomaly monitor interval")
	fs.IntVar(&config.MonitorThreshold, "t", config.MonitorThreshold, "actions per interval that flag an account")
	fs.StringVar(&config.ReachabilityURL, "u", config.ReachabilityURL, "URL probed for network reachability")
	fs.DurationVar(&config.OnlineCheckInterval, "o", config.OnlineCheckInterval, "online status check interval")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session token secret")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if config.MonitorInterval <= 0 || config.MonitorThreshold <= 0 {
		return fmt.Errorf("monitor interval and threshold must be positive")
	}
	return nil
}
