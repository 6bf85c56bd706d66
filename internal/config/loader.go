package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")              // Current directory
		v.AddConfigPath("./configs")      // Project configs directory
		v.AddConfigPath("/etc/storecast") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("STORECAST")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8090)

	// Data defaults
	v.SetDefault("data.sales_path", "./data/train.csv")
	v.SetDefault("data.stores_path", "./data/stores.csv")
	v.SetDefault("data.features_path", "./data/features.csv")

	// Forecast defaults
	v.SetDefault("forecast.default_horizon", 30)
	v.SetDefault("forecast.default_seasonal_periods", 52)
	v.SetDefault("forecast.max_horizon", 104)
	v.SetDefault("forecast.optimizer_max_evals", 20000)
	v.SetDefault("forecast.optimizer_timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.redis_prefix", "storecast")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8090,
		},
		Data: DataConfig{
			SalesPath:    "./data/train.csv",
			StoresPath:   "./data/stores.csv",
			FeaturesPath: "./data/features.csv",
		},
		Forecast: ForecastConfig{
			DefaultHorizon:         30,
			DefaultSeasonalPeriods: 52,
			MaxHorizon:             104,
			OptimizerMaxEvals:      20000,
			OptimizerTimeout:       10 * time.Second,
		},
		Cache: CacheConfig{
			Type:        "memory",
			TTL:         time.Hour,
			RedisPrefix: "storecast",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
