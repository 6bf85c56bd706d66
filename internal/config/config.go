package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// DataConfig points at the source CSV tables loaded once at startup
type DataConfig struct {
	SalesPath    string `mapstructure:"sales_path"`    // train.csv: Store, Dept, Date, Weekly_Sales, IsHoliday
	StoresPath   string `mapstructure:"stores_path"`   // stores.csv: Store, Type, Size
	FeaturesPath string `mapstructure:"features_path"` // features.csv: Store, Date, Temperature, ...
}

// ForecastConfig holds forecasting defaults and optimizer budgets
type ForecastConfig struct {
	DefaultHorizon         int           `mapstructure:"default_horizon"`          // Weeks to forecast when unspecified
	DefaultSeasonalPeriods int           `mapstructure:"default_seasonal_periods"` // 52 = yearly seasonality on weekly data
	MaxHorizon             int           `mapstructure:"max_horizon"`              // Upper bound accepted from requests
	OptimizerMaxEvals      int           `mapstructure:"optimizer_max_evals"`      // SSE evaluation budget in optimized mode
	OptimizerTimeout       time.Duration `mapstructure:"optimizer_timeout"`        // Wall-clock budget in optimized mode
}

// CacheConfig represents forecast result cache configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // Cache backend: memory (default), redis
	TTL  time.Duration `mapstructure:"ttl"`  // Entry lifetime; the cache is also flushed on dataset reload
	// Redis-specific options
	RedisURL      string `mapstructure:"redis_url"`      // Redis URL (e.g., redis://localhost:6379)
	RedisPassword string `mapstructure:"redis_password"` // Optional authentication
	RedisDB       int    `mapstructure:"redis_db"`       // Redis database number (default: 0)
	RedisPrefix   string `mapstructure:"redis_prefix"`   // Key prefix (default: "storecast")
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates data configuration
func (c *DataConfig) Validate() error {
	if c.SalesPath == "" {
		return fmt.Errorf("sales_path is required")
	}

	if c.StoresPath == "" {
		return fmt.Errorf("stores_path is required")
	}

	if c.FeaturesPath == "" {
		return fmt.Errorf("features_path is required")
	}

	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if c.DefaultHorizon < 1 {
		return fmt.Errorf("default_horizon must be at least 1")
	}

	if c.DefaultSeasonalPeriods < 1 {
		return fmt.Errorf("default_seasonal_periods must be at least 1")
	}

	if c.MaxHorizon < c.DefaultHorizon {
		return fmt.Errorf("max_horizon cannot be below default_horizon")
	}

	if c.OptimizerMaxEvals < 1 {
		return fmt.Errorf("optimizer_max_evals must be positive")
	}

	if c.OptimizerTimeout <= 0 {
		return fmt.Errorf("optimizer_timeout must be positive")
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	switch c.Type {
	case "", "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for redis cache")
		}
	default:
		return fmt.Errorf("cache.type must be 'memory' or 'redis'")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
