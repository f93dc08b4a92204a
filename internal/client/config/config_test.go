package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000", c.ServerBaseURL)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.PageSize)
	assert.False(t, c.S3.Enabled())
}

func TestLoad_NoArgsUsesDefaults(t *testing.T) {
	assert.Empty(t, cmp.Diff(defaults(), load(nil)))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		mutate      func(*Config)
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://10.0.0.5:8000", "-i", "10", "-t", "5", "-d", "/tmp/c.db", "-l", "debug"},
			mutate: func(c *Config) {
				c.ServerBaseURL = "http://10.0.0.5:8000"
				c.OnlineCheckInterval = 10 * time.Second
				c.RequestTimeout = 5 * time.Second
				c.DatabasePath = "/tmp/c.db"
				c.LogLevel = "debug"
			},
		},
		{
			name:   "unrelated flags ignored",
			args:   []string{"-x", "1", "-a=http://h:1"},
			mutate: func(c *Config) { c.ServerBaseURL = "http://h:1" },
		},
		{name: "incorrect check interval", args: []string{"-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFile_JSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"server_base_url": "http://backend:8000",
		"online_check_interval": "10s",
		"request_timeout": 2000000000,
		"page_size": 25
	}`)

	cfg := defaults()
	parseFile(cfg, []string{"-config", path})

	assert.Equal(t, "http://backend:8000", cfg.ServerBaseURL)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "eslconsole.db", cfg.DatabasePath, "keys missing from the file keep defaults")
}

func TestParseFile_YAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
server_base_url: http://backend:8000
log_backend: zap
options_ttl: 1m
s3:
  endpoint: http://localhost:9000
  region: us-east-1
  bucket: esl-exports
  access_key: minio
  secret_key: minio123
`)

	cfg := defaults()
	parseFile(cfg, []string{"-c", path})

	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, time.Minute, cfg.OptionsTTL)
	assert.Equal(t, export.S3Config{
		Endpoint: "http://localhost:9000", Region: "us-east-1", Bucket: "esl-exports",
		AccessKey: "minio", SecretKey: "minio123",
	}, cfg.S3)
	assert.True(t, cfg.S3.Enabled())
}

func TestParseFile_NoFlagNoChange(t *testing.T) {
	cfg := defaults()
	parseFile(cfg, []string{"-a", "http://x"})
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFile_Errors(t *testing.T) {
	bad := writeFile(t, "bad.json", `{ this is not valid json`)
	require.Panics(t, func() { parseFile(defaults(), []string{"-config", bad}) })

	require.Panics(t, func() {
		parseFile(defaults(), []string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	})
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "cfg.yml", "server_base_url: http://from-file:8000\nonline_check_interval: 7s\n")

	cfg := load([]string{"-c", path, "-a", "http://from-flag:8000"})

	assert.Equal(t, "http://from-flag:8000", cfg.ServerBaseURL)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
}
