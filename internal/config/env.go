package config

import (
	"os"
	"strings"
)

// envBinding maps one KIKI_* variable onto a config key.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, value string)
}

func envBindings() []envBinding {
	return []envBinding{
		{"KIKI_DATA_FILE", "data_file", func(c *Config, v string) { c.DataFile = v }},
		{"KIKI_LOG_DIR", "log_dir", func(c *Config, v string) { c.LogDir = v }},
		{"KIKI_LOG_LEVEL", "log_level", func(c *Config, v string) { c.LogLevel = v }},
		{"KIKI_LOG_FORMAT", "log_format", func(c *Config, v string) { c.LogFormat = v }},
		{"KIKI_LOG_TIMESTAMPS", "log_timestamps", func(c *Config, v string) { c.LogTimestamps = boolFromString(v) }},
		{"KIKI_LOG_CALLER", "log_caller", func(c *Config, v string) { c.LogCaller = boolFromString(v) }},
		{"KIKI_UI", "ui", func(c *Config, v string) { c.UI = v }},
		{"KIKI_SESSION_LOG", "session_log", func(c *Config, v string) { c.SessionLog = boolFromString(v) }},
	}
}

// loadFromEnv overrides config from environment variables.
// Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings() {
		v, ok := os.LookupEnv(b.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b.apply(cfg, strings.TrimSpace(v))
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
