package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, 10*time.Second, c.MonitorInterval)
	assert.Equal(t, 10, c.MonitorThreshold)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.SessionSecret)
	assert.NotEmpty(t, c.DatabasePath)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"database_path": "from-json.db",
		"monitor_interval": "30s",
		"monitor_threshold": 20,
		"session_ttl": 60000000000,
		"log_level": "debug"
	}`)

	cfg, err := LoadConfig([]string{"-c", path, "-t", "5", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "from-json.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.MonitorInterval)
	assert.Equal(t, 5, cfg.MonitorThreshold, "flag wins over JSON")
	assert.Equal(t, time.Minute, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ReachabilityTimeout, "absent JSON field keeps default")
}

func TestLoadConfig_FlagsOnly(t *testing.T) {
	cfg, err := LoadConfig([]string{"-d", "x.db", "-i=2s", "-o", "1m", "-s", "k", "-l", "warn", "-u", "http://example.test"})
	require.NoError(t, err)

	assert.Equal(t, "x.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Second, cfg.MonitorInterval)
	assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
	assert.Equal(t, "k", cfg.SessionSecret)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "http://example.test", cfg.ReachabilityURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-c", writeConfig(t, `{"monitor_interval": "soon"}`)})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-i", "nope"})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-t", "0"})
	assert.Error(t, err)
}
