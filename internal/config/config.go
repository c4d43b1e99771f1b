package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Schema    int    `json:"schema"`
	DataDir   string `json:"data_dir"`
	StoreFile string `json:"store_path,omitempty"`
	LogFile   string `json:"log_file,omitempty"`
	Debug     bool   `json:"debug,omitempty"`
}

const CurrentConfigSchema = 1

func DefaultConfig() *Config {
	return &Config{
		Schema:  CurrentConfigSchema,
		DataDir: defaultDataDir(),
	}
}

func Load(configPath string) (*Config, error) {
	paths := getConfigPaths(configPath)

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		cfg := DefaultConfig()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}

		cfg.expandPaths()
		return cfg, nil
	}

	return DefaultConfig(), nil
}

func getConfigPaths(explicit string) []string {
	var paths []string

	if explicit != "" {
		paths = append(paths, explicit)
	}

	paths = append(paths, filepath.Join(configHome(), "ct", "config.json"))

	return paths
}

func configHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "ct")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "ct")
}

func (c *Config) expandPaths() {
	c.DataDir = expandHome(c.DataDir)
	c.StoreFile = expandHome(c.StoreFile)
	c.LogFile = expandHome(c.LogFile)
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// StorePath is the sqlite database holding the template registry.
func (c *Config) StorePath() string {
	if c.StoreFile != "" {
		return c.StoreFile
	}
	return filepath.Join(c.DataDir, "templates.db")
}

// LogPath is where debug logs are written.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "ct.log")
}
