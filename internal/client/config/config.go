package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/export"
)

// Config holds runtime settings for the ESL console.
type Config struct {
	// ServerBaseURL is the REST backend root, e.g. http://localhost:8000.
	ServerBaseURL       string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration

	// DatabasePath is the local SQLite file holding the token and export
	// history.
	DatabasePath string

	// RateLimit is requests per second towards the backend; 0 disables it.
	RateLimit float64
	RateBurst int

	BulkConcurrency int
	PageSize        int
	OptionsTTL      time.Duration

	LogLevel   string
	LogBackend string

	ExportDir string
	S3        export.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "eslconsole.db"
	c.RateLimit = 10
	c.RateBurst = 20
	c.BulkConcurrency = 4
	c.PageSize = 10
	c.OptionsTTL = 30 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.ExportDir = "exports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any) and command-line flags. Later sources take
// precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
