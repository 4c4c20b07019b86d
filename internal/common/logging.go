package common

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a configured level name to zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogLevel picks the level given on the command line, falling back to the
// configured one when the flag was left empty
func LogLevel(flagLevel, configured string) string {
	if flagLevel != "" {
		return flagLevel
	}
	return configured
}

// SetupLogging configures the global logger. format "json" writes JSON lines,
// anything else pretty console output.
func SetupLogging(level, format string) {
	setupLogging(os.Stderr, level, format)
}

func setupLogging(out io.Writer, level, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
