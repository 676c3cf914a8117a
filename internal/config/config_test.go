package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, DriverPostgres, cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "oaep", cfg.RSAPadding)
				assert.Equal(t, 2048, cfg.RSAMinKeyBits)
				assert.Equal(t, 14400*time.Second, cfg.SessionTokenTTL)
				assert.Equal(t, "gymbuddy", cfg.SessionTokenIssuer)
				assert.Equal(t, "Authorization", cfg.SessionTokenHeader)
				assert.Equal(t, "interactive", cfg.PasswordHashPolicy)
				assert.Empty(t, cfg.FallbackAccounts)
				assert.True(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 5.0, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 10, cfg.RateLimitLoginBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.OutboxEnabled)
				assert.Equal(t, 5*time.Second, cfg.OutboxInterval)
				assert.Equal(t, 100, cfg.OutboxBatchSize)
				assert.Equal(t, 3, cfg.OutboxMaxRetries)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "gymbuddy", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "sqlite",
				"DB_CONNECTION_STRING":    "file:gymbuddy.db",
				"DB_MAX_OPEN_CONNECTIONS": "1",
				"DB_MAX_IDLE_CONNECTIONS": "1",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverSQLite, cfg.DBDriver)
				assert.Equal(t, "file:gymbuddy.db", cfg.DBConnectionString)
				assert.Equal(t, 1, cfg.DBMaxOpenConnections)
				assert.Equal(t, 1, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom key material configuration",
			envVars: map[string]string{
				"RSA_PRIVATE_KEY_PATH":        "/etc/gymbuddy/private.pem",
				"RSA_PUBLIC_KEY_PATH":         "/etc/gymbuddy/public.pem",
				"RSA_PRIVATE_KEY_KMS_KEY_URI": "hashivault://transport",
				"RSA_PADDING":                 "pkcs1v15",
				"RSA_MIN_KEY_BITS":            "4096",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/etc/gymbuddy/private.pem", cfg.RSAPrivateKeyPath)
				assert.Equal(t, "/etc/gymbuddy/public.pem", cfg.RSAPublicKeyPath)
				assert.Equal(t, "hashivault://transport", cfg.RSAPrivateKeyKMSKeyURI)
				assert.Equal(t, "pkcs1v15", cfg.RSAPadding)
				assert.Equal(t, 4096, cfg.RSAMinKeyBits)
			},
		},
		{
			name: "load custom session configuration",
			envVars: map[string]string{
				"SESSION_TOKEN_SECRET":      "0123456789abcdef0123456789abcdef",
				"SESSION_TOKEN_TTL_SECONDS": "60",
				"SESSION_TOKEN_ISSUER":      "gym",
				"SESSION_TOKEN_HEADER":      "X-Session-Token",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.SessionTokenSecret)
				assert.Equal(t, time.Minute, cfg.SessionTokenTTL)
				assert.Equal(t, "gym", cfg.SessionTokenIssuer)
				assert.Equal(t, "X-Session-Token", cfg.SessionTokenHeader)
			},
		},
		{
			name: "load custom login rate limit",
			envVars: map[string]string{
				"RATE_LIMIT_LOGIN_ENABLED":          "false",
				"RATE_LIMIT_LOGIN_REQUESTS_PER_SEC": "1.5",
				"RATE_LIMIT_LOGIN_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 1.5, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitLoginBurst)
			},
		},
		{
			name: "load custom outbox configuration",
			envVars: map[string]string{
				"OUTBOX_ENABLED":     "false",
				"OUTBOX_INTERVAL":    "30",
				"OUTBOX_BATCH_SIZE":  "10",
				"OUTBOX_MAX_RETRIES": "7",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.OutboxEnabled)
				assert.Equal(t, 30*time.Second, cfg.OutboxInterval)
				assert.Equal(t, 10, cfg.OutboxBatchSize)
				assert.Equal(t, 7, cfg.OutboxMaxRetries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func validConfig() *Config {
	return &Config{
		ServerPort:         8080,
		DBDriver:           DriverSQLite,
		DBConnectionString: "file:test.db",
		RSAPrivateKeyPath:  "keys/private_key.pem",
		RSAPadding:         "oaep",
		RSAMinKeyBits:      2048,
		SessionTokenSecret: strings.Repeat("s", 32),
		SessionTokenTTL:    time.Hour,
		SessionTokenHeader: "Authorization",
		PasswordHashPolicy: "interactive",
		OutboxEnabled:      true,
		OutboxInterval:     time.Second,
		OutboxBatchSize:    10,
		OutboxMaxRetries:   3,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"missing session secret", func(cfg *Config) { cfg.SessionTokenSecret = "" }},
		{"short session secret", func(cfg *Config) { cfg.SessionTokenSecret = "too-short" }},
		{"unknown driver", func(cfg *Config) { cfg.DBDriver = "oracle" }},
		{"unknown padding", func(cfg *Config) { cfg.RSAPadding = "none" }},
		{"weak key size", func(cfg *Config) { cfg.RSAMinKeyBits = 1024 }},
		{"unknown hash policy", func(cfg *Config) { cfg.PasswordHashPolicy = "fast" }},
		{"zero outbox interval", func(cfg *Config) { cfg.OutboxInterval = 0 }},
		{"zero outbox batch", func(cfg *Config) { cfg.OutboxBatchSize = 0 }},
		{"no key material", func(cfg *Config) {
			cfg.RSAPrivateKey = ""
			cfg.RSAPrivateKeyPath = " "
		}},
	}

	t.Run("Success_OutboxDisabledSkipsOutboxRules", func(t *testing.T) {
		cfg := validConfig()
		cfg.OutboxEnabled = false
		cfg.OutboxInterval = 0
		cfg.OutboxBatchSize = 0
		require.NoError(t, cfg.Validate())
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
