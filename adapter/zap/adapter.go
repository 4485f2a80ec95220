package zapadapter

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xconsole"
)

// Subscriber forwards xconsole entries to a go.uber.org/zap logger.
//
//   - Uses Logger.Check(level, msg) to avoid building fields when disabled.
//   - Writes the entry timestamp as an RFC3339Nano "ts" string so the zap
//     record carries the time of the original log call.
//   - The logger id is bound as "logger_id", the context as "context".
type Subscriber struct {
	l     *zap.Logger
	tsKey string
}

// New creates a subscriber for the provided zap logger.
func New(l *zap.Logger) *Subscriber {
	if l == nil {
		l = zap.NewNop()
	}
	return &Subscriber{l: l, tsKey: "ts"}
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, tsKey string) *Subscriber {
	s := New(l)
	if tsKey != "" {
		s.tsKey = tsKey
	}
	return s
}

// OnLog implements xconsole.Subscriber.
func (s *Subscriber) OnLog(e xconsole.Entry) error {
	ce := s.l.Check(toZapLevel(e.Level), e.Message)
	if ce == nil {
		return nil
	}

	zfs := make([]zap.Field, 0, 3)
	zfs = append(zfs,
		zap.String(s.tsKey, e.Timestamp.UTC().Format(time.RFC3339Nano)),
		zap.String("logger_id", e.ID),
	)
	if e.Context != nil {
		zfs = append(zfs, contextField(e.Context))
	}

	ce.Write(zfs...)
	return nil
}

// Sync flushes the underlying zap core.
func (s *Subscriber) Sync() error { return s.l.Sync() }

func toZapLevel(l xconsole.Level) zapcore.Level {
	switch {
	case l <= xconsole.LevelDebug:
		return zapcore.DebugLevel
	case l <= xconsole.LevelInfo:
		return zapcore.InfoLevel
	case l <= xconsole.LevelWarning:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}

func contextField(v any) zap.Field {
	if err, ok := v.(error); ok {
		return zap.NamedError("context", err)
	}
	return zap.Any("context", v)
}
