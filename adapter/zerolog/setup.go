package zerologadapter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xconsole"
)

// Config is an explicit, code-first configuration for forwarding xconsole
// entries to zerolog.
type Config struct {
	Writer   io.Writer          // default: os.Stderr
	Registry *xconsole.Registry // default: xconsole.DefaultRegistry()
	MinLevel xconsole.Level
	Console  bool // zerolog.ConsoleWriter instead of JSON
}

// Use builds a zerolog logger from cfg, subscribes it to every level event of
// the registry and returns the subscriber with its subscriptions.
func Use(cfg Config) (*Subscriber, []*xconsole.Subscription) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	r := cfg.Registry
	if r == nil {
		r = xconsole.DefaultRegistry()
	}

	zl := zerolog.New(w).Level(mapLevel(cfg.MinLevel))
	s := New(zl)
	return s, r.SubscribeLevels(s)
}
