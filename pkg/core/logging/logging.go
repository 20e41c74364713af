// Package logging provides the process-wide leveled logger.
//
// Levels follow the 0-9 scale of the --log-level flag: errors are always
// logged, warnings from 1, info from 3 and debug from 5.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LeveledLogger provides leveled logging functionality
type LeveledLogger struct {
	level  int
	logger zerolog.Logger
}

var defaultLogger = NewLeveledLogger(os.Stderr, 0)

// NewLeveledLogger creates a new leveled logger writing to w
func NewLeveledLogger(w io.Writer, level int) *LeveledLogger {
	return &LeveledLogger{
		level:  level,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).With().Timestamp().Logger(),
	}
}

// SetLevel sets the log level
func (l *LeveledLogger) SetLevel(level int) {
	l.level = level
}

// Level returns the current log level
func (l *LeveledLogger) Level() int {
	return l.level
}

// Zerolog exposes the underlying logger for structured fields.
func (l *LeveledLogger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// Debug logs at debug level (level 5-9)
func (l *LeveledLogger) Debug(format string, v ...interface{}) {
	if l.level >= 5 {
		l.logger.Debug().Msgf(format, v...)
	}
}

// Info logs at info level (level 3-9)
func (l *LeveledLogger) Info(format string, v ...interface{}) {
	if l.level >= 3 {
		l.logger.Info().Msgf(format, v...)
	}
}

// Warn logs at warning level (level 1-9)
func (l *LeveledLogger) Warn(format string, v ...interface{}) {
	if l.level >= 1 {
		l.logger.Warn().Msgf(format, v...)
	}
}

// Error logs at error level (level 0-9)
func (l *LeveledLogger) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// Initialize replaces the global logger. Output always goes to stderr so the
// stdio transport keeps stdout to itself.
func Initialize(level int) {
	defaultLogger = NewLeveledLogger(os.Stderr, level)
}

// SetOutput redirects the global logger, keeping its level.
func SetOutput(w io.Writer) {
	defaultLogger = NewLeveledLogger(w, defaultLogger.level)
}

// Default returns the global logger.
func Default() *LeveledLogger {
	return defaultLogger
}

func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }

// Err logs err at error level with structured fields, used where the cause
// must reach operators but not callers.
func Err(err error, msg string, fields map[string]interface{}) {
	defaultLogger.logger.Error().Err(err).Fields(fields).Msg(msg)
}
