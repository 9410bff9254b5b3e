package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Default engine parameters, overridable per run from the CLI
	PreferenceWeight float64 `yaml:"preferenceWeight" validate:"gte=0"`
	BalancingWeight  float64 `yaml:"balancingWeight" validate:"gte=0"`
	TieBreakSeed     int64   `yaml:"tieBreakSeed"`

	// CleanMatchThreshold is the confidence below which deviation reasons
	// are produced for a suggestion
	CleanMatchThreshold float64 `yaml:"cleanMatchThreshold,omitempty" validate:"gte=0,lte=100"`

	// MinViableFill is the assignment count below which a session is
	// reported infeasible. Zero disables the check.
	MinViableFill int `yaml:"minViableFill,omitempty" validate:"gte=0"`

	// EngineTimeoutSeconds bounds one allocation run so a pathological
	// parameter set cannot hang the interactive workflow
	EngineTimeoutSeconds int `yaml:"engineTimeoutSeconds,omitempty" validate:"gte=0"`

	// SkipDates lists dates (e.g. holidays) excluded when materialising
	// monthly sessions from templates
	SkipDates []string `yaml:"skipDates,omitempty" validate:"dive,datetime=2006-01-02"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from baddersbot_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile locates baddersbot_config.yaml in the current directory
// or the user's home directory
func findConfigFile() (string, error) {
	const filename = "baddersbot_config.yaml"

	if _, err := os.Stat(filename); err == nil {
		return filename, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	homePath := filepath.Join(home, filename)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or %s", filename, home)
}
