package xconsole

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry. Numeric values mirror slog so adapters
// can map them directly.
type Level int

const (
	LevelDebug   Level = -4
	LevelInfo    Level = 0
	LevelWarning Level = 4
	LevelError   Level = 8
)

// String returns the upper-case level name used in entries and rendered lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Event returns the registry event name published for entries of this level.
func (l Level) Event() Event {
	switch l {
	case LevelDebug:
		return EventDebug
	case LevelInfo:
		return EventInfo
	case LevelWarning:
		return EventWarning
	case LevelError:
		return EventError
	}
	return Event(strings.ToLower(l.String()))
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	lvl, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// ParseLevel parses a level name, case-insensitively. "warn" is accepted as an
// alias of "warning".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Levels returns all levels in ascending severity.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarning, LevelError}
}
