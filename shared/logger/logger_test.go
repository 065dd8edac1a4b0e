package logger_test

import (
	"bytes"
	"dashboard/config"
	"dashboard/shared/constant"
	"dashboard/shared/logger"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	assert.NotNil(t, zerolog.ErrorStackMarshaler)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		logLevel string
		expected zerolog.Level
	}{
		{name: "explicit debug", env: constant.ServerEnvProduction, logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "case and spaces", env: constant.ServerEnvProduction, logLevel: " WARN ", expected: zerolog.WarnLevel},
		{name: "disabled", env: constant.ServerEnvProduction, logLevel: "disabled", expected: zerolog.Disabled},
		{name: "empty in production", env: constant.ServerEnvProduction, logLevel: "", expected: zerolog.InfoLevel},
		{name: "invalid in production", env: constant.ServerEnvProduction, logLevel: "loud", expected: zerolog.InfoLevel},
		{name: "empty in development", env: constant.ServerEnvDevelopment, logLevel: "", expected: zerolog.DebugLevel},
		{name: "unset env counts as development", env: "", logLevel: "", expected: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Env = tt.env
			cfg.Server.LogLevel = tt.logLevel

			assert.Equal(t, tt.expected, logger.Level(cfg))
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "error"

	logger.SetLogLevel(cfg)

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel-dashboard"
	cfg.Server.Env = constant.ServerEnvProduction

	var buf bytes.Buffer
	l := logger.New(cfg, &buf)
	l.Info().Str("room", "101").Msg("room created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "hotel-dashboard", line["app"])
	assert.Equal(t, "101", line["room"])
	assert.Equal(t, "room created", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_DevelopmentWritesConsole(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer
	l := logger.New(cfg, &buf)
	l.Info().Msg("booting")

	assert.Contains(t, buf.String(), "booting")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	logger.InitLogger()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("connection reset"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "connection reset", line["error"])
	assert.Contains(t, line, "stack")
}
