// Package config loads runtime configuration for the ESL console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in .yaml
//     or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:8000)
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   local SQLite database path
//	-l string   log level
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or integer
// nanoseconds:
//
//	server_base_url: http://localhost:8000
//	online_check_interval: 3s
//	request_timeout: 30s
//	database_path: eslconsole.db
//	rate_limit: 10
//	rate_burst: 20
//	bulk_concurrency: 4
//	page_size: 10
//	options_ttl: 30s
//	log_level: info
//	log_backend: zap
//	export_dir: exports
//	s3:
//	  endpoint: http://localhost:9000
//	  region: us-east-1
//	  bucket: esl-exports
//	  access_key: minio
//	  secret_key: minio123
//
// When s3.bucket is set, exports go to S3 instead of export_dir.
//
// Note: This package does not read environment variables; use the config
// file or flags.
package config
