package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/kiki-go/internal/kikidir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// UI modes.
const (
	UILine = "line"
	UITUI  = "tui"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultUI         = UILine
	DefaultSessionLog = true
)

// DefaultDataFile is the task file path relative to the working directory.
var DefaultDataFile = kikidir.DataPath("")

// DefaultLogDir is the journal base directory.
var DefaultLogDir = kikidir.DefaultLogDir()

// Config holds the full configuration for kiki.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`
	LogDir   string `toml:"log_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Front-end for the interactive session
	UI string `toml:"ui"`

	// Write a JSONL journal of every session
	SessionLog bool `toml:"session_log"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the configurable keys, in display order.
func configFields() []string {
	return []string{
		"data_file",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"ui",
		"session_log",
	}
}

// Fields returns the configurable keys, in display order.
func Fields() []string {
	return configFields()
}

// Value returns the current value of key formatted for display.
func (c *Config) Value(key string) string {
	switch key {
	case "data_file":
		return c.DataFile
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	case "ui":
		return c.UI
	case "session_log":
		return fmt.Sprint(c.SessionLog)
	default:
		return ""
	}
}

// ValidationError reports a config value that cannot be used.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// FileError collects every schema violation found in one config file.
type FileError struct {
	File   string
	Issues []*ValidationError
}

func (e *FileError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Error())
	}
	return fmt.Sprintf("invalid config %s: %s", e.File, strings.Join(parts, "; "))
}
