package xconsole

import (
	"errors"
	"time"
)

var (
	// ErrInvalidConfig is returned by New and Builder.Build for unusable configuration.
	ErrInvalidConfig = errors.New("xconsole: invalid config")
	// ErrUnknownLevel is returned by ParseLevel.
	ErrUnknownLevel = errors.New("xconsole: unknown level")
	// ErrSubscriberPanic wraps a panic recovered from a subscriber during Publish.
	ErrSubscriberPanic = errors.New("xconsole: subscriber panicked")
)

// isoLayout is the millisecond ISO-8601 layout used for entry timestamps.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is the record produced by every log call and handed to subscribers.
// Timestamp and Level are always set by the Logger.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Context   any       `json:"context,omitempty"`
	ID        string    `json:"id"`
}

// ISOTimestamp renders the entry time in UTC with millisecond precision.
func (e Entry) ISOTimestamp() string {
	return e.Timestamp.UTC().Format(isoLayout)
}

// Formatter renders an entry into a single displayable line (without newline).
type Formatter func(Entry) string
