package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		App:    AppConfig{Environment: "development"},
		Store:  StoreConfig{Driver: StoreMemory},
		Admin:  AdminConfig{Password: "secret", JWTSecret: "dev-only-admin-secret"},
		Chat:   ChatConfig{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev, https://b.dev ,")
	t.Setenv("PAGE_CACHE_TTL", "90s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CHAT_RATE_PER_MINUTE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "projects", cfg.Store.Collection)
	assert.Equal(t, 90*time.Second, cfg.Redis.PageTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30, cfg.Chat.RatePerMinute)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	_, err := Load()
	assert.ErrorContains(t, err, "FIREBASE_CREDENTIALS_PATH")
}

func TestLoadForToolsWithoutAdminPassword(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := Load()
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")

	cfg, err := LoadForTools()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)

	t.Setenv("STORE_DRIVER", "postgres")
	_, err = LoadForTools()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "STORE_DRIVER"},
		{"firestore without credentials", func(c *Config) { c.Store.Driver = StoreFirestore }, "FIREBASE_CREDENTIALS_PATH"},
		{"no admin password", func(c *Config) { c.Admin.Password = "" }, "ADMIN_PASSWORD"},
		{"default secret in production", func(c *Config) { c.App.Environment = "production" }, "ADMIN_JWT_SECRET"},
		{"inverted chat delays", func(c *Config) { c.Chat.MaxDelay = 0 }, "CHAT_MAX_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsHashOnly(t *testing.T) {
	cfg := validConfig()
	cfg.Admin.Password = ""
	cfg.Admin.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, cfg.Validate())
}
