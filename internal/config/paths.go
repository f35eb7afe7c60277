package config

import (
	"os"
	"path/filepath"
	"strings"
)

// pathFields are the keys that hold filesystem paths. Each is resolved by
// resolvePath during finalizeConfig.
func pathFields(cfg *Config) map[string]*string {
	return map[string]*string{
		"data_file": &cfg.DataFile,
		"log_dir":   &cfg.LogDir,
	}
}

// resolveConfigPaths makes every path key absolute. data_file must be set;
// an empty log_dir stays empty and disables nothing by itself.
func resolveConfigPaths(cfg *Config) error {
	for key, ptr := range pathFields(cfg) {
		if strings.TrimSpace(*ptr) == "" {
			if key == "data_file" {
				return &ValidationError{Path: key, Message: "must not be empty"}
			}
			*ptr = ""
			continue
		}
		*ptr = resolvePath(*ptr, cfg.WorkDir)
	}
	return nil
}

// resolvePath expands $VAR references and a leading ~, then anchors a
// relative result at workDir.
func resolvePath(p, workDir string) string {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if home, ok := homePrefix(p); ok {
		if dir, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(dir, home)
		}
	}
	if !filepath.IsAbs(p) && workDir != "" {
		p = filepath.Join(workDir, p)
	}
	return filepath.Clean(p)
}

// homePrefix reports whether p starts at the home directory and returns
// the remainder. "~user" forms are not supported.
func homePrefix(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p[2:], true
	}
	return "", false
}
