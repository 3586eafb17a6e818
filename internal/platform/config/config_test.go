package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		check  func(t *testing.T, cfg *Config)
	}{
		{
			name: "lists are split and trimmed",
			values: map[string]any{
				"CASH_ACCOUNT_NAMES":   " Cash , Petty Cash,,",
				"CORS_ALLOWED_ORIGINS": "http://a.test,http://b.test",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Cash", "Petty Cash"}, cfg.CashAccountNames)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
			},
		},
		{
			name:   "unknown storage backend falls back to postgres",
			values: map[string]any{"STORAGE_DRIVER": "sqlite"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoragePostgres, cfg.StorageBackend)
			},
		},
		{
			name:   "memory backend is accepted case-insensitively",
			values: map[string]any{"STORAGE_DRIVER": " Memory "},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StorageMemory, cfg.StorageBackend)
			},
		},
		{
			name:   "invalid cache ttl falls back to five minutes",
			values: map[string]any{"ACCOUNT_CACHE_TTL": "soon"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Minute, cfg.AccountCacheTTL)
			},
		},
		{
			name:   "valid cache ttl is parsed",
			values: map[string]any{"ACCOUNT_CACHE_TTL": "90s"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 90*time.Second, cfg.AccountCacheTTL)
			},
		},
		{
			name:   "empty port and secret get defaults",
			values: map[string]any{"DISPLAY_CURRENCY": "eur"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.NotEmpty(t, cfg.JWTSecret)
				assert.Equal(t, "EUR", cfg.DisplayCurrency)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}
			tt.check(t, fromViper(v))
		})
	}
}
