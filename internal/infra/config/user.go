// Where: cli/internal/infra/config/user.go
// What: User config load for invoke defaults.
// Why: Manage ~/.<brand>/config.yaml (or $<PREFIX>_HOME/config.yaml) consistently.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/poruru-code/sls-cli/internal/infra/envutil"
	"github.com/poruru-code/sls-cli/internal/meta"
)

// UserConfig represents the per-user configuration file.
type UserConfig struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Defaults are fallbacks used when neither flags nor the service file set a value.
type Defaults struct {
	Stage   string `yaml:"stage,omitempty"`
	Region  string `yaml:"region,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

// DefaultUserConfig returns an initialized UserConfig with version set.
func DefaultUserConfig() UserConfig {
	return UserConfig{Version: 1}
}

// UserConfigPath returns the path to the user config file.
func UserConfigPath() (string, error) {
	if home := envutil.GetHostEnv("HOME"); home != "" {
		return filepath.Join(home, meta.UserConfigFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.UserConfigFile), nil
}

// LoadUserConfig reads and parses the user configuration file.
// A missing file yields DefaultUserConfig.
func LoadUserConfig(path string) (UserConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultUserConfig(), nil
		}
		return UserConfig{}, fmt.Errorf("read user config: %w", err)
	}

	cfg := DefaultUserConfig()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return UserConfig{}, fmt.Errorf("decode user config: %w", err)
	}
	return cfg, nil
}
