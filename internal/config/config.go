// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env        string `mapstructure:"APP_ENV"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	RedisURL   string `mapstructure:"REDIS_URL"`

	// Thread store limits.
	MaxThreadDepth       int    `mapstructure:"MAX_THREAD_DEPTH"`
	PerformanceThreshold int    `mapstructure:"PERFORMANCE_THRESHOLD"`
	PerformanceChildCap  int    `mapstructure:"PERFORMANCE_CHILD_CAP"`
	ReplyChildOrder      string `mapstructure:"REPLY_CHILD_ORDER"`

	// Feed defaults.
	DefaultSortMode   string `mapstructure:"DEFAULT_SORT_MODE"`
	DefaultTimeWindow string `mapstructure:"DEFAULT_TIME_WINDOW"`
	FeedCacheTTLSecs  int    `mapstructure:"FEED_CACHE_TTL_SECONDS"`

	// Tracing.
	TracingEnabled      bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter     string  `mapstructure:"TRACING_EXPORTER"`
	TracingOTLPEndpoint string  `mapstructure:"TRACING_OTLP_ENDPOINT"`
	TracingSamplerRatio float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Set default values for development
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "chatroom")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("MAX_THREAD_DEPTH", 10)
	viper.SetDefault("PERFORMANCE_THRESHOLD", 100)
	viper.SetDefault("PERFORMANCE_CHILD_CAP", 50)
	viper.SetDefault("REPLY_CHILD_ORDER", "created_at")
	viper.SetDefault("DEFAULT_SORT_MODE", "hot")
	viper.SetDefault("DEFAULT_TIME_WINDOW", "day")
	viper.SetDefault("FEED_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("TRACING_OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.MaxThreadDepth <= 0 {
		return errors.New("MAX_THREAD_DEPTH must be positive")
	}
	if c.PerformanceThreshold <= 0 {
		return errors.New("PERFORMANCE_THRESHOLD must be positive")
	}
	if c.PerformanceChildCap <= 0 {
		return errors.New("PERFORMANCE_CHILD_CAP must be positive")
	}
	if c.ReplyChildOrder != "created_at" && c.ReplyChildOrder != "score" {
		return fmt.Errorf("REPLY_CHILD_ORDER must be 'created_at' or 'score', got %q", c.ReplyChildOrder)
	}
	if c.FeedCacheTTLSecs < 0 {
		return errors.New("FEED_CACHE_TTL_SECONDS must not be negative")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must be enabled in production")
		}
	}

	return nil
}

// DSN builds the postgres connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
