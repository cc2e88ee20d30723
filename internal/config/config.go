// Package config loads the service configuration for littlecadd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr     string `yaml:"listen_addr"`
	DataDir        string `yaml:"data_dir"`
	IndexPath      string `yaml:"index_path"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Load reads the yaml config at path. An empty path returns the
// defaults; a missing file is an error so typos do not silently run a
// default server.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("littlecadd.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("littlecadd.yaml: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		ListenAddr:     ":8080",
		DataDir:        "./data",
		MaxUploadBytes: 8 << 20,
	}
}

func (c *Config) Normalize() {
	if strings.TrimSpace(c.IndexPath) == "" {
		c.IndexPath = filepath.Join(c.DataDir, "index.db")
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
