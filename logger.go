package xconsole

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/trickstertwo/xclock"
)

// Logger is an immutable configuration value plus the level operations.
// Derivations (WithID, WithFormatter) return new Loggers that share the
// registry and the output of their parent, so a Logger can be used from any
// number of goroutines without synchronization.
type Logger struct {
	debug      bool
	id         string
	formatter  Formatter // nil: default renderer
	colours    bool
	timeFormat string
	clock      xclock.Clock
	registry   *Registry
	out        *output
}

// output serializes writes of all loggers sharing a writer. Each log call is
// a single Write, so an entry and its inspection lines never interleave.
type output struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *output) write(p []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	n, err := o.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

// Factory: internal constructor. cfg is already validated and defaulted.
func newLogger(cfg Config) *Logger {
	return &Logger{
		debug:      cfg.Debug,
		id:         cfg.ID,
		formatter:  cfg.Formatter,
		colours:    cfg.Colours,
		timeFormat: cfg.TimeFormat,
		clock:      cfg.Clock,
		registry:   cfg.Registry,
		out:        &output{w: cfg.Writer},
	}
}

func (l *Logger) ID() string           { return l.id }
func (l *Logger) DebugEnabled() bool   { return l.debug }
func (l *Logger) Colours() bool        { return l.colours }
func (l *Logger) Registry() *Registry  { return l.registry }
func (l *Logger) Formatter() Formatter { return l.formatter }

// WithID returns a copy of l tagged with id.
func (l *Logger) WithID(id string) *Logger {
	child := *l
	child.id = id
	return &child
}

// WithFormatter returns a copy of l rendering with f. A nil f restores the
// default renderer.
func (l *Logger) WithFormatter(f Formatter) *Logger {
	child := *l
	child.formatter = f
	return &child
}

// Subscribe registers s for event on the registry shared by l and every
// logger derived from the same root.
func (l *Logger) Subscribe(event Event, s Subscriber) *Subscription {
	return l.registry.Subscribe(event, s)
}

// Debug logs at LevelDebug. When debug output is disabled nothing is written
// or published.
func (l *Logger) Debug(msg string, data ...any) error {
	if !l.debug {
		return nil
	}
	return l.log(LevelDebug, msg, collapse(data))
}

// Info logs at LevelInfo. Its context is inspected like every other level.
func (l *Logger) Info(msg string, data ...any) error {
	return l.log(LevelInfo, msg, collapse(data))
}

// Warning logs at LevelWarning.
func (l *Logger) Warning(msg string, data ...any) error {
	return l.log(LevelWarning, msg, collapse(data))
}

// Error logs v at LevelError with the context derived by BuildErrorContext.
// The message defaults to v's own message.
func (l *Logger) Error(v any, msg ...string) error {
	m := strings.Join(msg, " ")
	if len(msg) == 0 {
		m = messageOf(v)
	}
	return l.log(LevelError, m, BuildErrorContext(v))
}

// Inspect writes the diagnostic expansion of v. A nil v writes nothing.
func (l *Logger) Inspect(v any) error {
	lines := inspectLines(v, l.colours)
	if len(lines) == 0 {
		return nil
	}
	var buf bytes.Buffer
	writeLines(&buf, lines)
	return l.out.write(buf.Bytes())
}

// log writes the rendered entry followed by its inspection lines, then
// notifies subscribers. Write and subscriber failures are both reported.
func (l *Logger) log(level Level, msg string, data any) error {
	e := Entry{
		Timestamp: l.now(),
		Level:     level,
		Message:   msg,
		Context:   data,
		ID:        l.id,
	}

	var merr *multierror.Error

	line, err := l.render(e)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("log %s: %w", level, err))
	}
	var buf bytes.Buffer
	buf.WriteString(line)
	buf.WriteByte('\n')
	writeLines(&buf, inspectLines(data, l.colours))

	if err := l.out.write(buf.Bytes()); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("log %s: failed to write entry: %w", level, err))
	}
	if err := l.registry.Publish(level.Event(), e); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("log %s: failed to notify subscribers: %w", level, err))
	}
	return merr.ErrorOrNil()
}

// render applies the custom formatter, falling back to the default renderer
// if it panics.
func (l *Logger) render(e Entry) (line string, err error) {
	if l.formatter == nil {
		return DefaultFormatter(l.colours, l.timeFormat)(e), nil
	}
	defer func() {
		if r := recover(); r != nil {
			line = DefaultFormatter(l.colours, l.timeFormat)(e)
			err = fmt.Errorf("formatter panicked: %v", r)
		}
	}()
	return l.formatter(e), nil
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func writeLines(buf *bytes.Buffer, lines []string) {
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// collapse maps optional context arguments to a single value: none is nil,
// one is itself, several become a slice.
func collapse(data []any) any {
	switch len(data) {
	case 0:
		return nil
	case 1:
		return data[0]
	}
	return data
}

func messageOf(v any) string {
	if isNil(v) {
		return ""
	}
	switch vv := v.(type) {
	case error:
		return vv.Error()
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	case map[string]any:
		if m, ok := vv["message"].(string); ok {
			return m
		}
	}
	return fmt.Sprintf("%+v", v)
}
