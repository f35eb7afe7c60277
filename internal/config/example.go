package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# kiki configuration file
# Values can be overridden by KIKI_* environment variables or CLI flags.

# Task file (relative paths are resolved against the working directory)
data_file = "data/kiki.txt"

# Session journal directory (supports ~ and $VAR expansion)
log_dir = "~/.kiki/logs"

# Diagnostics: debug, info, warn, error
log_level = "info"

# text, json or logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Interactive front-end: line or tui
ui = "line"

# Write a JSONL journal of every session
session_log = true
`
}
