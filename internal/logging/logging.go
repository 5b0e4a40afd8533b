// Package logging adapts the pipeline's Logger interface onto zerolog.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging surface the pipeline components depend on.
// Kept as an interface (rather than a direct zerolog dependency in every
// constructor) so tests can inject a silent double.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
}

// NoOpLogger discards everything. Used by tests that don't care about log output.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...interface{}) {}
func (NoOpLogger) Info(string, ...interface{})  {}
func (NoOpLogger) Warn(string, ...interface{})  {}
func (NoOpLogger) Error(string, ...interface{}) {}

// ZerologAdapter wraps a zerolog.Logger and accepts alternating key/value pairs,
// matching the call convention the rest of this module already uses.
type ZerologAdapter struct {
	log zerolog.Logger
}

// New builds a ZerologAdapter writing to w at the given level name (parsed with
// zerolog.ParseLevel; an unrecognized name falls back to info).
func New(w io.Writer, levelName string) *ZerologAdapter {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return &ZerologAdapter{log: l}
}

// NewDefault writes to stderr at info level, for code paths that don't thread
// a configured logger through (e.g. package-level fallbacks).
func NewDefault() *ZerologAdapter {
	return New(os.Stderr, "info")
}

func (z *ZerologAdapter) Debug(msg string, kv ...interface{}) { z.event(z.log.Debug(), msg, kv) }
func (z *ZerologAdapter) Info(msg string, kv ...interface{})  { z.event(z.log.Info(), msg, kv) }
func (z *ZerologAdapter) Warn(msg string, kv ...interface{})  { z.event(z.log.Warn(), msg, kv) }
func (z *ZerologAdapter) Error(msg string, kv ...interface{}) { z.event(z.log.Error(), msg, kv) }

func (z *ZerologAdapter) event(e *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}
</content>
