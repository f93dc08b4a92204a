package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/flagx"
	"github.com/dmitrijs2005/eslconsole/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config, in JSON or YAML. Durations
// use timex.Duration, so "3s" and integer nanoseconds both work.
type FileConfig struct {
	ServerBaseURL       string          `json:"server_base_url" yaml:"server_base_url"`
	OnlineCheckInterval timex.Duration  `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      timex.Duration  `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath        string          `json:"database_path" yaml:"database_path"`
	RateLimit           float64         `json:"rate_limit" yaml:"rate_limit"`
	RateBurst           int             `json:"rate_burst" yaml:"rate_burst"`
	BulkConcurrency     int             `json:"bulk_concurrency" yaml:"bulk_concurrency"`
	PageSize            int             `json:"page_size" yaml:"page_size"`
	OptionsTTL          timex.Duration  `json:"options_ttl" yaml:"options_ttl"`
	LogLevel            string          `json:"log_level" yaml:"log_level"`
	LogBackend          string          `json:"log_backend" yaml:"log_backend"`
	ExportDir           string          `json:"export_dir" yaml:"export_dir"`
	S3                  export.S3Config `json:"s3" yaml:"s3"`
}

// parseFile overlays cfg with the values set in the file named by -c or
// -config. Keys missing from the file keep their current value. Files ending
// in .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerBaseURL, fc.ServerBaseURL)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.ExportDir, fc.ExportDir)

	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OptionsTTL.Duration > 0 {
		cfg.OptionsTTL = fc.OptionsTTL.Duration
	}
	if fc.RateLimit > 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.RateBurst > 0 {
		cfg.RateBurst = fc.RateBurst
	}
	if fc.BulkConcurrency > 0 {
		cfg.BulkConcurrency = fc.BulkConcurrency
	}
	if fc.PageSize > 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.S3.Bucket != "" {
		cfg.S3 = fc.S3
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
