// Package config loads the layered frec configuration: built-in defaults,
// .frec/config.json under the repo root, then a .frec.yml dotfile at the
// repo root. CLI flags layer on top in cmd/frec. Decay profiles and path
// groups live in their own files next to config.json.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"frec/internal/errors"
	"frec/internal/frecency"
)

// ConfigDir is the directory under the repo root holding config files
const ConfigDir = ".frec"

// DotfileName is the optional YAML override file at the repo root
const DotfileName = ".frec.yml"

// Config represents the complete frec configuration
type Config struct {
	Version    int           `json:"version" mapstructure:"version"`
	MaxCommits int           `json:"maxCommits" mapstructure:"maxCommits"`
	Sort       string        `json:"sort" mapstructure:"sort"`
	Decay      DecayConfig   `json:"decay" mapstructure:"decay"`
	Git        GitConfig     `json:"git" mapstructure:"git"`
	Logging    LoggingConfig `json:"logging" mapstructure:"logging"`
}

// DecayConfig contains the decay shape settings
type DecayConfig struct {
	HalfLife   float64 `json:"halfLife" mapstructure:"halfLife"`
	BaseWeight float64 `json:"baseWeight" mapstructure:"baseWeight"`
	Profile    string  `json:"profile,omitempty" mapstructure:"profile"`
}

// GitConfig contains commit source settings
type GitConfig struct {
	Renames          string `json:"renames" mapstructure:"renames"`
	CommandTimeoutMs int    `json:"commandTimeoutMs" mapstructure:"commandTimeoutMs"`
	LogTimeoutMs     int    `json:"logTimeoutMs" mapstructure:"logTimeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		MaxCommits: 3000,
		Sort:       "descending",
		Decay: DecayConfig{
			HalfLife:   frecency.DefaultHalfLife,
			BaseWeight: frecency.DefaultBaseWeight,
		},
		Git: GitConfig{
			Renames:          "both",
			CommandTimeoutMs: 5000,
			LogTimeoutMs:     60000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .frec/config.json and the .frec.yml
// dotfile under repoRoot, layered over defaults. Missing files are not an
// error; malformed ones are.
func LoadConfig(repoRoot string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ConfigDir))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.NewFrecError(
				errors.InvalidConfig,
				"Failed to read config.json",
				err,
				errors.GetSuggestedFixes(errors.InvalidConfig),
			)
		}
	} else {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, errors.NewFrecError(
				errors.InvalidConfig,
				"Failed to parse config.json",
				err,
				errors.GetSuggestedFixes(errors.InvalidConfig),
			)
		}
	}

	if err := applyDotfile(repoRoot, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// dotfileOverrides mirrors Config with pointer fields so the dotfile can
// override individual keys without resetting the rest
type dotfileOverrides struct {
	MaxCommits *int    `yaml:"maxCommits"`
	Sort       *string `yaml:"sort"`
	Decay      *struct {
		HalfLife   *float64 `yaml:"halfLife"`
		BaseWeight *float64 `yaml:"baseWeight"`
		Profile    *string  `yaml:"profile"`
	} `yaml:"decay"`
	Git *struct {
		Renames *string `yaml:"renames"`
	} `yaml:"git"`
	Logging *struct {
		Format *string `yaml:"format"`
		Level  *string `yaml:"level"`
	} `yaml:"logging"`
}

func applyDotfile(repoRoot string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Join(repoRoot, DotfileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewFrecError(errors.InvalidConfig, "Failed to read "+DotfileName, err, nil)
	}

	var overrides dotfileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"Failed to parse "+DotfileName,
			err,
			errors.GetSuggestedFixes(errors.InvalidConfig),
		)
	}

	if overrides.MaxCommits != nil {
		cfg.MaxCommits = *overrides.MaxCommits
	}
	if overrides.Sort != nil {
		cfg.Sort = *overrides.Sort
	}
	if overrides.Decay != nil {
		if overrides.Decay.HalfLife != nil {
			cfg.Decay.HalfLife = *overrides.Decay.HalfLife
		}
		if overrides.Decay.BaseWeight != nil {
			cfg.Decay.BaseWeight = *overrides.Decay.BaseWeight
		}
		if overrides.Decay.Profile != nil {
			cfg.Decay.Profile = *overrides.Decay.Profile
		}
	}
	if overrides.Git != nil && overrides.Git.Renames != nil {
		cfg.Git.Renames = *overrides.Git.Renames
	}
	if overrides.Logging != nil {
		if overrides.Logging.Format != nil {
			cfg.Logging.Format = *overrides.Logging.Format
		}
		if overrides.Logging.Level != nil {
			cfg.Logging.Level = *overrides.Logging.Level
		}
	}

	return nil
}

// DecayParams returns the decay shape the config describes
func (c *Config) DecayParams() frecency.DecayParams {
	return frecency.DecayParams{
		HalfLife:   c.Decay.HalfLife,
		BaseWeight: c.Decay.BaseWeight,
	}
}

// Validate checks the configuration, including the decay underflow guard
// against the configured commit window
func (c *Config) Validate() error {
	if c.MaxCommits < 0 {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"maxCommits must be zero or positive",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"maxCommits": c.MaxCommits})
	}
	if c.Sort != "descending" && c.Sort != "ascending" {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"sort must be 'descending' or 'ascending'",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"sort": c.Sort})
	}
	if c.Git.Renames != "both" && c.Git.Renames != "new-only" {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"git.renames must be 'both' or 'new-only'",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"renames": c.Git.Renames})
	}
	return c.DecayParams().Validate(c.MaxCommits)
}
