// Package config loads cityner settings from defaults, an optional config
// file, and CITYNER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Yogendra14/chatbot-ner/city"
)

// EnvPrefix is the prefix of environment overrides. CITYNER_LOG_LEVEL sets
// log.level, CITYNER_GAZETTEER_PATH sets gazetteer.path, and so on.
const EnvPrefix = "CITYNER"

// Config is the full cityner configuration.
type Config struct {
	Gazetteer Gazetteer `mapstructure:"gazetteer"`
	Detector  Detector  `mapstructure:"detector"`
	Log       Log       `mapstructure:"log"`
}

// Gazetteer selects and tunes the city list.
type Gazetteer struct {
	// Path to a .yaml or .toml city list. Empty uses the built-in list.
	Path            string `mapstructure:"path"`
	MaxEditDistance int    `mapstructure:"max_edit_distance"`
	MinFuzzyRunes   int    `mapstructure:"min_fuzzy_runes"`
}

// Detector tunes city detection.
type Detector struct {
	EntityName string `mapstructure:"entity_name"`
	city.Cues  `mapstructure:",squash"`
}

// Log configures the process logger.
type Log struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"` // also write to this file, rotated
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

func setDefaults(v *viper.Viper) {
	cues := city.DefaultCues()

	v.SetDefault("gazetteer.path", "")
	v.SetDefault("gazetteer.max_edit_distance", 2)
	v.SetDefault("gazetteer.min_fuzzy_runes", 5)

	v.SetDefault("detector.entity_name", city.DefaultEntityName)
	v.SetDefault("detector.departure_cues", cues.Departure)
	v.SetDefault("detector.arrival_cues", cues.Arrival)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c) // defaults always decode
	return &c
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply. The file type follows its extension
// (yaml, yml, toml, or json).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if d := c.Gazetteer.MaxEditDistance; d < 0 || d > 2 {
		errs = append(errs, fmt.Errorf("gazetteer.max_edit_distance must be 0, 1 or 2, got %d", d))
	}
	if c.Gazetteer.MinFuzzyRunes < 1 {
		errs = append(errs, fmt.Errorf("gazetteer.min_fuzzy_runes must be positive, got %d", c.Gazetteer.MinFuzzyRunes))
	}
	if name := c.Detector.EntityName; name == "" || strings.ContainsAny(name, " \t\n") {
		errs = append(errs, fmt.Errorf("detector.entity_name must be a single word, got %q", name))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New("log.max_size_mb and log.max_backups must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
