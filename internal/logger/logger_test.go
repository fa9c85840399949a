package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/georgemunganga/bandiwala-backend/internal/config"
)

func TestNewRespectsLevel(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{AppEnv: "production"},
		Logger: config.LoggerConfig{Level: "warn", Encoding: "json"},
	}

	log, err := New(cfg)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewDefaultLevelFollowsEnvironment(t *testing.T) {
	dev, err := New(&config.Config{Server: config.ServerConfig{AppEnv: "development"}})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New(&config.Config{Server: config.ServerConfig{AppEnv: "production"}})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{AppEnv: "development"},
		Logger: config.LoggerConfig{Level: "loud"},
	}

	_, err := New(cfg)
	assert.Error(t, err)
}
