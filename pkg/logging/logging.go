// pkg/logging/logging.go
// Package logging configures zerolog for the fixture manager and the bundled
// flow framework.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// logWriter stores the current log writer globally
	logWriter io.Writer
)

// init keeps the global logger at error level. The zerolog global level is
// left alone so per-command console loggers still emit info lines.
func init() {
	logWriter = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger().Level(zerolog.ErrorLevel)
}

// ConfigureGlobalLogging configures the global logger used by component
// loggers. It also raises the zerolog global level, which caps every logger in
// the process; only binaries should call it.
func ConfigureGlobalLogging(levelStr string) error {
	level := ParseLevel(levelStr)
	zerolog.SetGlobalLevel(level)

	logContext := zerolog.New(logWriter).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}

	log.Logger = logContext.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// ParseLevel converts a string log level to zerolog.Level, falling back to
// error for empty or unknown input.
func ParseLevel(levelString string) zerolog.Level {
	if levelString == "" {
		levelString = "error"
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil {
		log.Error().Err(err).
			Str("logLevel", levelString).
			Msg("Invalid log level provided. Defaulting to error level.")
		return zerolog.ErrorLevel
	}
	return level
}

// SetLogWriter sets the global log writer
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// NewLogger returns a child of the global logger tagged with component.
func NewLogger(component string, level zerolog.Level) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger().Level(level)
}

// NewLoggerWithWriter returns a JSON logger tagged with component that writes to w.
func NewLoggerWithWriter(component string, level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(level)
}

// NewConsoleLogger returns the human readable logger used by flow commands.
// Lines look like "INFO     Pipeline execution completed." so that tests can
// match on stable markers; timestamps are dropped and colours disabled.
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("%-8s", strings.ToUpper(fmt.Sprint(i)))
		},
	}
	return zerolog.New(cw).Level(level)
}
