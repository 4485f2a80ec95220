package zerologadapter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xconsole"
)

// Subscriber forwards xconsole entries to an rs/zerolog logger.
//
//   - Fast pre-check using GetLevel() to avoid allocating zerolog.Event when
//     the level is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Subscriber struct {
	l zerolog.Logger
}

func New(l zerolog.Logger) *Subscriber {
	return &Subscriber{l: l}
}

// OnLog implements xconsole.Subscriber.
// The entry timestamp is written as "ts" with RFC3339Nano precision.
func (s *Subscriber) OnLog(e xconsole.Entry) error {
	zlvl := mapLevel(e.Level)

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < s.l.GetLevel() {
		return nil
	}

	ev := s.l.WithLevel(zlvl)

	// A string avoids global zerolog.TimeFieldFormat changes.
	ev.Str("ts", e.Timestamp.UTC().Format(time.RFC3339Nano))
	ev.Str("logger_id", e.ID)
	appendContext(ev, e.Context)

	ev.Msg(e.Message)
	return nil
}

// mapLevel converts xconsole.Level to zerolog.Level.
func mapLevel(l xconsole.Level) zerolog.Level {
	switch {
	case l <= xconsole.LevelDebug:
		return zerolog.DebugLevel
	case l <= xconsole.LevelInfo:
		return zerolog.InfoLevel
	case l <= xconsole.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func appendContext(ev *zerolog.Event, v any) {
	switch c := v.(type) {
	case nil:
	case string:
		ev.Str("context", c)
	case error:
		ev.AnErr("context", c)
	default:
		ev.Interface("context", c)
	}
}
