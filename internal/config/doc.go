// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.kiki/kiki.toml or OS-specific config directory)
// 3. Project config file (kiki.toml or .kiki.toml in the working directory)
// 4. Environment variables (KIKI_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.kiki/kiki.toml (preferred)
// - Windows: %APPDATA%\kiki\kiki.toml
// - macOS: ~/Library/Application Support/kiki/kiki.toml
// - Linux/BSD: $XDG_CONFIG_HOME/kiki/kiki.toml or ~/.config/kiki/kiki.toml
//
// Every config file is checked against an embedded JSON Schema before it is
// decoded, so unknown keys and wrong types are reported with their path.
package config
