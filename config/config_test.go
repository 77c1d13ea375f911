package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/onboardu")
	t.Setenv("DB_HOST", "")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, "keep", cfg.ProductResubmitPolicy)
	assert.Equal(t, "/media/", cfg.MediaURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigReturnsIndependentValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "10")
	first := LoadConfig()
	t.Setenv("PAGE_SIZE", "30")
	second := LoadConfig()

	assert.NotSame(t, first, second)
	assert.Equal(t, 10, first.PageSize)
	assert.Equal(t, 30, second.PageSize)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("SALT_ROUND", "not-a-number")
	t.Setenv("PRODUCT_RESUBMIT_POLICY", "Update")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.Equal(t, "update", cfg.ProductResubmitPolicy)
	require.NoError(t, cfg.Validate())
}

func TestPostgresDSNFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "onboardu")
	t.Setenv("DB_PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "host=db user=app password=secret dbname=onboardu port=5432 sslmode=disable", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	base := Config{
		DBDriver:              "sqlite",
		DatabaseURL:           "file::memory:",
		ProductResubmitPolicy: "keep",
		PageSize:              10,
		MaxPageSize:           100,
		OTPLength:             6,
	}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"driver":     func(c *Config) { c.DBDriver = "oracle" },
		"url":        func(c *Config) { c.DatabaseURL = "" },
		"policy":     func(c *Config) { c.ProductResubmitPolicy = "merge" },
		"page size":  func(c *Config) { c.PageSize = 0 },
		"max page":   func(c *Config) { c.MaxPageSize = 5 },
		"otp length": func(c *Config) { c.OTPLength = 2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
