package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xconsole"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for forwarding xconsole
// entries to slog.
type Config struct {
	Writer         io.Writer            // default: os.Stderr
	Registry       *xconsole.Registry   // default: xconsole.DefaultRegistry()
	MinLevel       xconsole.Level       // slog handler level
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is managed by Use
}

// Use builds a slog handler from cfg, subscribes it to every level event of
// the registry and returns the subscriber with its subscriptions.
func Use(cfg Config) (*Subscriber, []*xconsole.Subscription) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	r := cfg.Registry
	if r == nil {
		r = xconsole.DefaultRegistry()
	}
	opts := slog.HandlerOptions{}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}
	opts.Level = toSlog(cfg.MinLevel)

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}

	s := New(h)
	return s, r.SubscribeLevels(s)
}
