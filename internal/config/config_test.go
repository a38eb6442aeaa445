package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                  "development",
		DBPassword:           "password",
		DBSSLMode:            "disable",
		MaxThreadDepth:       10,
		PerformanceThreshold: 100,
		PerformanceChildCap:  50,
		ReplyChildOrder:      "created_at",
		DefaultSortMode:      "hot",
		DefaultTimeWindow:    "day",
		FeedCacheTTLSecs:     60,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Defaults are valid", func(c *Config) {}, false},
		{"Zero thread depth", func(c *Config) { c.MaxThreadDepth = 0 }, true},
		{"Negative performance threshold", func(c *Config) { c.PerformanceThreshold = -1 }, true},
		{"Zero child cap", func(c *Config) { c.PerformanceChildCap = 0 }, true},
		{"Unknown child order", func(c *Config) { c.ReplyChildOrder = "random" }, true},
		{"Score child order", func(c *Config) { c.ReplyChildOrder = "score" }, false},
		{"Negative cache TTL", func(c *Config) { c.FeedCacheTTLSecs = -5 }, true},
		{"Zero cache TTL disables caching", func(c *Config) { c.FeedCacheTTLSecs = 0 }, false},
		{"Production with default password", func(c *Config) { c.Env = "production"; c.DBSSLMode = "require" }, true},
		{"Production without SSL", func(c *Config) { c.Env = "production"; c.DBPassword = "s3cure" }, true},
		{"Production fully configured", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "s3cure"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, c.MaxThreadDepth)
	assert.Equal(t, 100, c.PerformanceThreshold)
	assert.Equal(t, 50, c.PerformanceChildCap)
	assert.Equal(t, "created_at", c.ReplyChildOrder)
	assert.Equal(t, "hot", c.DefaultSortMode)
	assert.Equal(t, "day", c.DefaultTimeWindow)
	assert.Equal(t, 60, c.FeedCacheTTLSecs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("MAX_THREAD_DEPTH")
	defer os.Unsetenv("DEFAULT_SORT_MODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("MAX_THREAD_DEPTH", "4")
	os.Setenv("DEFAULT_SORT_MODE", "top")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, c.MaxThreadDepth)
	assert.Equal(t, "top", c.DefaultSortMode)
}

func TestConfig_DSN(t *testing.T) {
	c := validConfig()
	c.DBHost = "db.internal"
	c.DBPort = "5433"
	c.DBUser = "svc"
	c.DBName = "chatroom"

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=password dbname=chatroom sslmode=disable",
		c.DSN())
}
