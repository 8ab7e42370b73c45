package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/denisok6893-rgb/property-compare/internal/listing"
)

// Config is the propcompare CLI configuration.
type Config struct {
	Dataset   string `mapstructure:"dataset"`
	Snapshot  string `mapstructure:"snapshot"`
	Project   int64  `mapstructure:"project"`
	Profile   string `mapstructure:"profile"`
	Search    string `mapstructure:"search"`
	Filter    string `mapstructure:"filter"`
	Sort      string `mapstructure:"sort"`
	Format    string `mapstructure:"format"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Limit     int    `mapstructure:"limit"`

	// ConfigFile is the file actually read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// DefaultConfigFiles are tried in order in the working directory.
var DefaultConfigFiles = []string{".propcompare.yaml", ".propcompare.yml", ".propcompare.json"}

// SetDefaults registers every key on v so that env lookups and Unmarshal
// see them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("snapshot", "")
	v.SetDefault("project", 0)
	v.SetDefault("profile", "")
	v.SetDefault("search", "")
	v.SetDefault("filter", "all")
	v.SetDefault("sort", string(listing.SortHighestScore))
	v.SetDefault("format", "console")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("limit", 0)
}

// LoadConfig merges defaults, the config file, PROPCOMPARE_* environment
// variables and any flags already bound on v, in increasing precedence.
// configFile overrides the search of DefaultConfigFiles.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		for _, path := range DefaultConfigFiles {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			break
		}
	}

	v.SetEnvPrefix("PROPCOMPARE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// RequireSource reports an error unless a dataset or a snapshot is set.
// Commands that read no data (fields, version) skip it.
func (c *Config) RequireSource() error {
	if c.Dataset == "" && c.Snapshot == "" {
		return errors.New("either dataset or snapshot must be set")
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("invalid format: %s. Must be 'console' or 'json'", cfg.Format)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s. Must be 'console' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s. Must be 'debug', 'info', 'warn' or 'error'", cfg.LogLevel)
	}
	if _, err := listing.ParseFilter(cfg.Filter); err != nil {
		return err
	}
	if _, err := listing.ParseSortKey(cfg.Sort); err != nil {
		return err
	}
	if cfg.Dataset != "" && cfg.Snapshot != "" {
		return errors.New("dataset and snapshot are mutually exclusive")
	}
	if cfg.Snapshot != "" && cfg.Project <= 0 {
		return errors.New("project must be set when reading a snapshot")
	}
	if cfg.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}
