// Package logging wraps zerolog with the console setup used by the CLI.
// Callers log lengths and scores only, never password text.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents logging level
type Level = zerolog.Level

// Logger levels
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	Disabled   = zerolog.Disabled
)

// Config holds logger configuration
type Config struct {
	Level      Level
	TimeFormat string
	Output     io.Writer
	NoColor    bool
}

// Logger wraps zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// New creates a console logger. A nil cfg logs warnings and above to stderr.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{Level: WarnLevel}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	tf := cfg.TimeFormat
	if tf == "" {
		tf = time.Kitchen
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: tf,
		NoColor:    cfg.NoColor,
	}
	zl := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel maps a config/flag string to a level. Empty means warn.
func ParseLevel(s string) (Level, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "":
		return WarnLevel, nil
	case "off", "none", "disabled":
		return Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(norm)
	if err != nil {
		return WarnLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(err error, msg string, fields ...interface{}) {
	l.zl.Error().Err(err).Fields(fields).Msg(msg)
}

// Enabled reports whether lvl would be written.
func (l *Logger) Enabled(lvl Level) bool {
	return l.zl.GetLevel() <= lvl && lvl != Disabled
}
