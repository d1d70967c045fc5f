package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "jumper.yaml"

// Source names where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads the jumper configuration.
// Search order: customPath -> ~/.jumper/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
//
// Files only need to carry the keys they override; everything else keeps
// its default value. A custom path that cannot be read or parsed is an
// error, the other locations are skipped silently.
func Load(customPath string) (JumperConfig, Source, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return JumperConfig{}, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return JumperConfig{}, SourceCustom, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, SourceLocal, nil
		}
	}

	cfg, err := Parse(defaultJumperYAML)
	if err != nil {
		return DefaultJumperConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the
// result.
func Parse(data []byte) (JumperConfig, error) {
	cfg := DefaultJumperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JumperConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return JumperConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg JumperConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumper", "configs", filename)
}
