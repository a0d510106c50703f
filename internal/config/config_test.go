package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:      "a-test-secret-that-is-long-enough-xx",
		Port:           "5000",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "user",
		DBPassword:     "strong-password",
		DBName:         "devconnector",
		DBSSLMode:      "require",
		RedisURL:       "localhost:6379",
		AllowedOrigins: "http://localhost:5173",
		Env:            "test",
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionStrictness(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	assert.NoError(t, cfg.Validate())

	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}

func TestValidateDevelopmentIsLenient(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "development"
	cfg.JWTSecret = "short-but-ok-in-dev"
	cfg.DBPassword = "password"
	assert.NoError(t, cfg.Validate())
}
