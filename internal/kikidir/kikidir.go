// Package kikidir provides constants and helpers for kiki's on-disk layout.
package kikidir

import "path/filepath"

const (
	// Dir is the name of the per-user kiki directory under $HOME.
	Dir = ".kiki"

	// DataDir holds the task file, relative to the working directory.
	DataDir = "data"

	// DataFile is the task file name inside DataDir.
	DataFile = "kiki.txt"

	// ConfigFile is the config file name, both per-user and per-project.
	ConfigFile = "kiki.toml"

	// HiddenConfigFile is the alternative per-project config file name.
	HiddenConfigFile = ".kiki.toml"

	// LogsDir holds session journals inside Dir.
	LogsDir = "logs"
)

// DataPath returns the default task file path within a work directory.
func DataPath(workDir string) string {
	return joinPath(workDir, DataDir, DataFile)
}

// UserConfigPath returns ~/.kiki/kiki.toml for the given home directory.
func UserConfigPath(home string) string {
	return filepath.Join(home, Dir, ConfigFile)
}

// DefaultLogDir is the journal base directory before ~ expansion.
func DefaultLogDir() string {
	return "~/" + Dir + "/" + LogsDir
}

// ProjectConfigNames lists per-project config files in lookup order.
func ProjectConfigNames() []string {
	return []string{ConfigFile, HiddenConfigFile}
}

func joinPath(workDir string, elems ...string) string {
	if workDir == "." || workDir == "" {
		return filepath.Join(elems...)
	}
	return filepath.Join(append([]string{workDir}, elems...)...)
}
