package slogadapter

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xconsole"
)

// Subscriber forwards xconsole entries to a log/slog handler. Unlike the zap
// and zerolog subscribers it reports handler errors back to Publish.
type Subscriber struct {
	h slog.Handler
}

func toSlog(l xconsole.Level) slog.Level {
	return slog.Level(l)
}

// New creates a subscriber for h; nil uses the handler of slog.Default().
func New(h slog.Handler) *Subscriber {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &Subscriber{h: h}
}

// OnLog implements xconsole.Subscriber. The record time is the entry time.
func (s *Subscriber) OnLog(e xconsole.Entry) error {
	ctx := context.Background()
	lvl := toSlog(e.Level)
	if !s.h.Enabled(ctx, lvl) {
		return nil
	}

	rec := slog.NewRecord(e.Timestamp, lvl, e.Message, 0)
	rec.AddAttrs(slog.String("logger_id", e.ID))
	if e.Context != nil {
		rec.AddAttrs(slog.Any("context", e.Context))
	}
	return s.h.Handle(ctx, rec)
}
