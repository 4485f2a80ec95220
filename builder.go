package xconsole

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trickstertwo/xclock"
)

// Config for constructing a Logger (Factory data structure).
// Start from DefaultConfig: the zero value disables debug output and colours.
type Config struct {
	// Debug gates Logger.Debug; no other level is affected.
	Debug bool
	// ID tags every entry. Empty means the process default, "[<pid>]".
	ID string
	// Formatter renders entries; nil selects the default renderer.
	Formatter Formatter
	// Colours enables ANSI styling of level labels and inspection keys.
	Colours bool

	Writer     io.Writer    // default: os.Stdout
	Registry   *Registry    // default: DefaultRegistry()
	Clock      xclock.Clock // optional; defaults to xclock.Default() at log time
	TimeFormat string       // default renderer layout; default DefaultTimeFormat
}

// DefaultConfig returns debug output and colours enabled, the process id,
// stdout and the shared registry.
func DefaultConfig() Config {
	return Config{
		Debug:      true,
		ID:         DefaultID(),
		Colours:    true,
		Writer:     os.Stdout,
		Registry:   DefaultRegistry(),
		TimeFormat: DefaultTimeFormat,
	}
}

// DefaultID returns the bracketed process id, left-padded to width 7.
func DefaultID() string {
	return fmt.Sprintf("%7s", fmt.Sprintf("[%d]", os.Getpid()))
}

func (c Config) validate() error {
	if strings.ContainsAny(c.ID, "\r\n") {
		return fmt.Errorf("%w: id %q contains a line break", ErrInvalidConfig, c.ID)
	}
	if strings.ContainsAny(c.TimeFormat, "\r\n") {
		return fmt.Errorf("%w: time format %q contains a line break", ErrInvalidConfig, c.TimeFormat)
	}
	return nil
}

// New constructs a Logger from cfg. Empty ID, nil Writer, nil Registry and
// empty TimeFormat take their defaults; malformed values are rejected here
// rather than on first use.
func New(cfg Config) (*Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = DefaultID()
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}
	return newLogger(cfg), nil
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg  Config
	subs []pendingSub
}

type pendingSub struct {
	event Event
	sub   Subscriber
}

func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

func (b *Builder) WithDebug(enabled bool) *Builder {
	b.cfg.Debug = enabled
	return b
}

func (b *Builder) WithID(id string) *Builder {
	b.cfg.ID = id
	return b
}

func (b *Builder) WithFormatter(f Formatter) *Builder {
	b.cfg.Formatter = f
	return b
}

func (b *Builder) WithColours(enabled bool) *Builder {
	b.cfg.Colours = enabled
	return b
}

func (b *Builder) WithWriter(w io.Writer) *Builder {
	b.cfg.Writer = w
	return b
}

func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.cfg.Registry = r
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithTimeFormat(layout string) *Builder {
	b.cfg.TimeFormat = layout
	return b
}

// Subscribe registers s for event on the logger's registry once Build succeeds.
func (b *Builder) Subscribe(event Event, s Subscriber) *Builder {
	b.subs = append(b.subs, pendingSub{event: event, sub: s})
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	l, err := New(b.cfg)
	if err != nil {
		return nil, err
	}
	for _, p := range b.subs {
		l.registry.Subscribe(p.event, p.sub)
	}
	return l, nil
}
