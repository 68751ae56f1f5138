package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "QUADSOLVE_CONFIG"
	// ConfigFileName is the config file looked up in the working directory
	ConfigFileName = "quadsolve.yaml"
	// ConfigDirName is the directory name under XDG and /etc
	ConfigDirName = "quadsolve"
	// DotEnvFileName is the optional dotenv file in the working directory
	DotEnvFileName = ".env"

	userConfigFile = "config.yaml"
)

// SearchPaths lists the config file candidates, highest priority first:
// $QUADSOLVE_CONFIG, ./quadsolve.yaml, $XDG_CONFIG_HOME/quadsolve/config.yaml,
// ~/.config/quadsolve/config.yaml, /etc/quadsolve/config.yaml.
// Unset variables contribute no candidate.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}

	local := ConfigFileName
	if abs, err := filepath.Abs(local); err == nil {
		local = abs
	}
	paths = append(paths, local)

	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, userConfigFile))
	}
	// with both set, HOME is still searched after XDG
	if xdg, home := os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"); xdg != "" && home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, userConfigFile))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, userConfigFile))
}

// FindConfigPath returns the first existing file from SearchPaths, or ""
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// DefaultConfigPath is where a new user config file belongs: the XDG
// config dir, else ~/.config, else the working directory.
func DefaultConfigPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, userConfigFile)
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName)
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
