// Package logadapter wires uthread.Logger to a real structured-logging
// backend, at the boundary the core scheduler package deliberately keeps
// free of any one backend dependency (see uthread's logging.go doc
// comment). This mirrors how this corpus's own logiface-zerolog ("izerolog")
// package supplies a zerolog backend for the logiface abstraction used
// throughout the rest of the joeycumines/go-* family.
package logadapter

import (
	"io"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"

	"github.com/joeycumines/go-uthread"
)

// ZerologLogger adapts uthread.Logger to a logiface.Logger backed by
// zerolog, the same pairing izerolog.L.WithZerolog sets up for the event
// loop package this module is modeled on.
type ZerologLogger struct {
	inner *logiface.Logger[*izerolog.Event]
}

// NewZerologLogger builds a uthread.Logger that writes newline-delimited
// JSON to w via zerolog, through logiface's level-mapping event model.
func NewZerologLogger(w io.Writer, minLevel uthread.LogLevel) *ZerologLogger {
	z := zerolog.New(w).With().Timestamp().Logger()
	return &ZerologLogger{
		inner: izerolog.L.New(
			izerolog.L.WithZerolog(z),
			toLogifaceLevel(minLevel),
		),
	}
}

func toLogifaceLevel(level uthread.LogLevel) logiface.Option[*izerolog.Event] {
	return izerolog.L.WithLevel(mapLevel(level))
}

// IsEnabled reports whether the underlying logiface logger would emit at
// level. Lower logiface.Level values are more severe, so level is enabled
// whenever it is at or below the logger's configured threshold.
func (z *ZerologLogger) IsEnabled(level uthread.LogLevel) bool {
	lvl := z.inner.Level()
	return lvl != logiface.LevelDisabled && mapLevel(level) <= lvl
}

// Log emits entry through the zerolog/logiface pipeline.
func (z *ZerologLogger) Log(entry uthread.LogEntry) {
	b := z.inner.Build(mapLevel(entry.Level))
	if b == nil {
		return
	}
	b.Str("category", entry.Category).
		Int("tid", int(entry.TID)).
		Int("quantum", int(entry.Quantum))
	if entry.Err != nil {
		b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func mapLevel(level uthread.LogLevel) logiface.Level {
	switch level {
	case uthread.LevelDebug:
		return logiface.LevelDebug
	case uthread.LevelWarn:
		return logiface.LevelWarning
	case uthread.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
