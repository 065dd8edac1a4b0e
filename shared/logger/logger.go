package logger

import (
	"dashboard/config"
	"dashboard/shared/constant"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger installs a console logger at trace level. It runs before the
// configuration is read so that config loading itself is logged.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// New builds the process logger for cfg. Development keeps the console
// writer; every other environment emits JSON lines tagged with the app name.
func New(cfg *config.Config, w io.Writer) zerolog.Logger {
	if isDevelopment(cfg.Server.Env) {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(w).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

// SetLogLevel switches to the configured logger and level. An empty or
// unknown SERVER_LOG_LEVEL falls back to debug in development and info elsewhere.
func SetLogLevel(cfg *config.Config) {
	log.Logger = New(cfg, os.Stdout)

	zerolog.SetGlobalLevel(Level(cfg))

	log.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Str("env", cfg.Server.Env).Msg("Logger configured.")
}

func Level(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel)))
	if err == nil && level != zerolog.NoLevel {
		return level
	}

	if isDevelopment(cfg.Server.Env) {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

func isDevelopment(env string) bool {
	return env == "" || env == constant.ServerEnvDevelopment
}
