package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, ":8080", s.ListenAddr)
	assert.Equal(t, int64(1<<20), s.MaxBodyBytes)
	assert.Positive(t, s.Workers)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("HPGO_LOG_LEVEL", "debug")
	t.Setenv("HPGO_LOG_FORMAT", "json")
	t.Setenv("HPGO_MC_WORKERS", "3")
	t.Setenv("HPGO_LISTEN_ADDR", "127.0.0.1:9999")
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Workers)
	assert.Equal(t, "127.0.0.1:9999", s.ListenAddr)

	log := s.NewLogger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestLoadSettingsBadWorkers(t *testing.T) {
	t.Setenv("HPGO_MC_WORKERS", "many")
	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	log := Settings{LogLevel: "chatty"}.NewLogger()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
