package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "handpong.yaml"

// Load loads the hand-pong configuration.
// Search order: customPath -> ~/.handpong/configs/handpong.yaml -> ./configs/handpong.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		errs = append(errs, errors.New("canvas cell size must be positive"))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, errors.New("ball radius must be positive"))
	}
	if c.Ball.MinSpeed <= 0 || c.Ball.MaxSpeed < c.Ball.MinSpeed {
		errs = append(errs, fmt.Errorf("ball speed bounds invalid: min %v max %v", c.Ball.MinSpeed, c.Ball.MaxSpeed))
	}
	if c.Ball.HistoryLength <= 0 {
		errs = append(errs, errors.New("ball history length must be positive"))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, errors.New("paddle size must be positive"))
	}
	if c.Gameplay.WinScore <= 0 {
		errs = append(errs, errors.New("win score must be positive"))
	}
	if c.Gameplay.TickRate <= 0 {
		errs = append(errs, errors.New("tick rate must be positive"))
	}
	if c.Gameplay.MaxFrameDelta <= 0 {
		errs = append(errs, errors.New("max frame delta must be positive"))
	}
	if c.Gameplay.HandFollow <= 0 || c.Gameplay.HandFollow > 1 {
		errs = append(errs, fmt.Errorf("hand follow must be in (0, 1], got %v", c.Gameplay.HandFollow))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".handpong", "configs", filename)
}
