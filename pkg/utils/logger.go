package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger. An explicit level wins over the
// environment default (debug in development, info elsewhere).
func InitLogger(environment, level string) {
	zerolog.SetGlobalLevel(parseLevel(environment, level))
	log.Logger = newLogger(environment, os.Stderr)

	log.Info().
		Str("level", zerolog.GlobalLevel().String()).
		Str("environment", environment).
		Msg("logger initialized")
}

func parseLevel(environment, level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil && parsed != zerolog.NoLevel {
			return parsed
		}
	}
	if environment == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func newLogger(environment string, out io.Writer) zerolog.Logger {
	if environment == "development" {
		// Pretty console output for development
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "instagram-profile-compare").
		Logger()
}
