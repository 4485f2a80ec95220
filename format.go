package xconsole

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// DefaultTimeFormat is the timestamp layout of the default renderer.
const DefaultTimeFormat = "2006-01-02 15:04:05.000"

// labelWidth is the visible width of the level column.
const labelWidth = 7

const (
	colourReset  = "\x1b[0m"
	colourGreen  = "\x1b[32m"
	colourCyan   = "\x1b[96m"
	colourOrange = "\x1b[33m"
	colourRed    = "\x1b[31m"
)

func paint(enabled bool, colour, s string) string {
	if !enabled {
		return s
	}
	return colour + s + colourReset
}

func levelColour(l Level) string {
	switch l {
	case LevelDebug:
		return colourCyan
	case LevelInfo:
		return colourGreen
	case LevelWarning:
		return colourOrange
	default:
		return colourRed
	}
}

// Label returns the level name padded to a fixed visible width. Padding is
// applied before the colour codes are added, so coloured and plain lines keep
// their columns aligned.
func Label(l Level, colours bool) string {
	name := l.String()
	if pad := labelWidth - len(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	return paint(colours, levelColour(l), name)
}

// DefaultFormatter returns the built-in renderer:
//
//	<time> <LEVEL  > <id> | <message>
//
// timeFormat falls back to DefaultTimeFormat when empty.
func DefaultFormatter(colours bool, timeFormat string) Formatter {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return func(e Entry) string {
		var b strings.Builder
		b.Grow(len(timeFormat) + labelWidth + len(e.ID) + len(e.Message) + 16)
		b.WriteString(e.Timestamp.Format(timeFormat))
		b.WriteByte(' ')
		b.WriteString(Label(e.Level, colours))
		b.WriteByte(' ')
		b.WriteString(e.ID)
		b.WriteString(" | ")
		b.WriteString(e.Message)
		return b.String()
	}
}

// JSONFormatter renders each entry as a single JSON object. Contexts that
// cannot be encoded are replaced with their %+v form.
func JSONFormatter(e Entry) string {
	b, err := json.Marshal(e)
	if err != nil {
		e.Context = fmt.Sprintf("%+v", e.Context)
		b, err = json.Marshal(e)
		if err != nil {
			return fmt.Sprintf(`{"level":%q,"message":%q,"error":%q}`, e.Level, e.Message, err)
		}
	}
	return string(b)
}

// LogfmtFormatter renders each entry as a logfmt record.
func LogfmtFormatter(e Entry) string {
	var buf bytes.Buffer
	enc := logfmt.NewEncoder(&buf)
	kvs := []any{
		"ts", e.ISOTimestamp(),
		"level", e.Level.String(),
		"id", e.ID,
		"msg", e.Message,
	}
	if e.Context != nil {
		kvs = append(kvs, "context", fmt.Sprintf("%+v", e.Context))
	}
	if err := enc.EncodeKeyvals(kvs...); err != nil {
		return fmt.Sprintf("level=%s msg=%q logfmt_error=%q", e.Level, e.Message, err.Error())
	}
	return buf.String()
}
