package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	FXRates  FXRates  `mapstructure:"fxrates"`
	Journal  Journal  `mapstructure:"journal"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Database holds the configuration for the database.
type Database struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FXRates configures the conversion-rate lookup used when a trade is
// submitted without one.
type FXRates struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Journal holds defaults applied to submitted trades.
type Journal struct {
	DefaultAssetClass    string `mapstructure:"default_asset_class"`
	DefaultQuoteCurrency string `mapstructure:"default_quote_currency"`
}

// LoadConfig reads config.yml from path, then environment variables. A
// .env file in the working directory is loaded first when present, and a
// missing config file falls back to defaults.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// SERVER_PORT overrides server.port, and so on
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", filepath.Join(".", "journal.db"))
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("fxrates.enabled", false)
	v.SetDefault("fxrates.base_url", "https://api.frankfurter.app")
	v.SetDefault("fxrates.rate_limit", 5)
	v.SetDefault("fxrates.rate_limit_burst", 2)
	v.SetDefault("fxrates.timeout", 10*time.Second)
	v.SetDefault("journal.default_asset_class", "Forex")
	v.SetDefault("journal.default_quote_currency", "USD")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
