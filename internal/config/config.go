// Package config defines the runtime configuration for business-forecast and
// the loaders for configuration files and business snapshot fixtures.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for business-forecast.
type Configuration struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds CLI output format options.
type OutputConfig struct {
	Format string `mapstructure:"format"` // pretty, csv, json
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig holds the Postgres connection parameters. When URL is empty
// the server runs without a repository and serves only inline-snapshot
// requests.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN assembles the connection string, or returns empty when no database is
// configured.
func (d DatabaseConfig) DSN() string {
	if d.URL == "" {
		return ""
	}
	driver := d.Driver
	if driver == "" {
		driver = "postgres"
	}
	if d.User == "" {
		return fmt.Sprintf("%s://%s", driver, d.URL)
	}
	return fmt.Sprintf("%s://%s:%s@%s", driver, d.User, d.Password, d.URL)
}

// ForecastConfig holds forecast run defaults.
type ForecastConfig struct {
	MonthsAhead  int    `mapstructure:"monthsAhead"`
	SnapshotFile string `mapstructure:"snapshotFile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("forecast.monthsAhead", constants.DefaultMonthsAhead)
}

// LoadConfiguration reads the YAML configuration at the given path, applying
// environment variable overrides. A local .env file is loaded first when
// present. A missing configuration file is not an error; defaults apply.
func LoadConfiguration(configPath string) (*Configuration, error) {
	// Optional local env file; absence is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
