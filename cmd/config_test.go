package cmd_test

import (
	"testing"
	"time"

	"marketplace/cmd"

	"github.com/stretchr/testify/assert"
)

func validConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:        "8080",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "marketplace",
		DBPassword:      "secret",
		DBName:          "marketplace",
		RedisAddr:       "localhost:6379",
		CatalogCacheTTL: time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_ReportsEveryMissingValue(t *testing.T) {
	cfg := validConfig()
	cfg.DBHost = ""
	cfg.RedisAddr = ""
	cfg.RedisDB = -1

	err := cfg.Validate()

	assert.ErrorContains(t, err, "DB_HOST is required")
	assert.ErrorContains(t, err, "REDIS_ADDR is required")
	assert.ErrorContains(t, err, "REDIS_DB must not be negative")
}

func TestConfig_DSN(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t,
		"host=localhost port=5432 user=marketplace password=secret dbname=marketplace sslmode=disable",
		cfg.DSN())

	cfg.DBSslMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestConfig_HTTPAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", validConfig().HTTPAddr())
}
