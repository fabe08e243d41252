// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var accountCodePattern = regexp.MustCompile(`^[0-9]{8}$`)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Driver              string `mapstructure:"driver" yaml:"driver"`
		DataDir             string `mapstructure:"data_dir" yaml:"data_dir"`
		DSN                 string `mapstructure:"dsn" yaml:"-"` // never serialize credentials
		FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds"`
	} `mapstructure:"store" yaml:"store"`

	Journal struct {
		DefaultRevenueAccount  string `mapstructure:"default_revenue_account" yaml:"default_revenue_account"`
		DefaultExpenseAccount  string `mapstructure:"default_expense_account" yaml:"default_expense_account"`
		DefaultTreasuryAccount string `mapstructure:"default_treasury_account" yaml:"default_treasury_account"`
	} `mapstructure:"journal" yaml:"journal"`

	Export struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
		Format       string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`

	Server struct {
		Address string `mapstructure:"address" yaml:"address"`
	} `mapstructure:"server" yaml:"server"`
}

// FetchTimeout returns the upstream fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Store.FetchTimeoutSeconds) * time.Second
}

// InitializeConfig loads defaults, then config.yaml, then CLINIC_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads an explicit
// config file when path is not empty.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.clinic-journal")
		v.AddConfigPath(".clinic-journal")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CLINIC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The hosted database URL is conventionally exported without prefix.
	if err := v.BindEnv("store.dsn", "CLINIC_STORE_DSN", "DATABASE_URL"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.driver", "yaml")
	v.SetDefault("store.data_dir", "data")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.fetch_timeout_seconds", 30)

	v.SetDefault("journal.default_revenue_account", "70500000")
	v.SetDefault("journal.default_expense_account", "62900000")
	v.SetDefault("journal.default_treasury_account", "57299999")

	v.SetDefault("export.directory", "exports")
	v.SetDefault("export.csv_delimiter", ",")
	v.SetDefault("export.format", "csv")

	v.SetDefault("server.address", ":8080")
}

// Validate re-checks the configuration, e.g. after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Store.Driver {
	case "yaml":
		if config.Store.DataDir == "" {
			return fmt.Errorf("store.data_dir is required for the yaml driver")
		}
	case "mysql":
		if config.Store.DSN == "" {
			return fmt.Errorf("store.dsn (or DATABASE_URL) required for the mysql driver")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be 'yaml' or 'mysql')", config.Store.Driver)
	}

	if config.Store.FetchTimeoutSeconds < 1 || config.Store.FetchTimeoutSeconds > 600 {
		return fmt.Errorf("store.fetch_timeout_seconds must be between 1 and 600, got: %d", config.Store.FetchTimeoutSeconds)
	}

	for key, code := range map[string]string{
		"journal.default_revenue_account":  config.Journal.DefaultRevenueAccount,
		"journal.default_expense_account":  config.Journal.DefaultExpenseAccount,
		"journal.default_treasury_account": config.Journal.DefaultTreasuryAccount,
	} {
		if !accountCodePattern.MatchString(code) {
			return fmt.Errorf("%s must be an 8-digit account code, got: %q", key, code)
		}
	}

	if len([]rune(config.Export.CSVDelimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Export.CSVDelimiter)
	}

	switch config.Export.Format {
	case "csv", "xlsx", "json":
	default:
		return fmt.Errorf("invalid export format: %s (must be 'csv', 'xlsx' or 'json')", config.Export.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
