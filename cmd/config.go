package cmd

import (
	"errors"
	"fmt"
	"net"
	"time"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CatalogCacheTTL    time.Duration
	NotifyPrefix       string
	VoucherExpiryCron  string
	LogLevel           string
	RunMigrations      bool
	RunBackfillOnStart bool
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"REDIS_ADDR", c.RedisAddr},
	}

	var problems []error
	for _, r := range required {
		if r.value == "" {
			problems = append(problems, fmt.Errorf("%s is required", r.name))
		}
	}
	if c.RedisDB < 0 {
		problems = append(problems, errors.New("REDIS_DB must not be negative"))
	}
	if c.CatalogCacheTTL < 0 {
		problems = append(problems, errors.New("CATALOG_CACHE_TTL must not be negative"))
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}
