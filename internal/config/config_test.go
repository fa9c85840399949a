package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "STORE_DRIVER", "STORE_TIMEOUT", "VENDOR_PUT_REPLACE", "MAX_BODY_BYTES", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.Vendor.PutReplace)
	assert.Empty(t, cfg.Logger.Level, "logger picks the level from APP_ENV")
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("STORE_TIMEOUT", "2")
	t.Setenv("SHUTDOWN_TIMEOUT", "1500ms")
	t.Setenv("VENDOR_PUT_REPLACE", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Vendor.PutReplace)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}
