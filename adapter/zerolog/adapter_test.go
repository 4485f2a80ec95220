package zerologadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xconsole"
)

func TestOnLog_EmitsTSAndContext(t *testing.T) {
	var buf bytes.Buffer
	s := New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	at := time.Date(2025, 1, 2, 3, 4, 5, 600000000, time.UTC)
	err := s.OnLog(xconsole.Entry{
		Timestamp: at,
		Level:     xconsole.LevelInfo,
		Message:   "started",
		Context:   map[string]any{"port": 8080},
		ID:        "svc1",
	})
	if err != nil {
		t.Fatalf("on log: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	if m["level"] != "info" || m["message"] != "started" {
		t.Fatalf("unexpected record: %v", m)
	}
	if m["ts"] != at.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: %v", m["ts"])
	}
	if m["logger_id"] != "svc1" {
		t.Fatalf("logger_id mismatch: %v", m["logger_id"])
	}
	ctx, ok := m["context"].(map[string]any)
	if !ok || ctx["port"] != float64(8080) {
		t.Fatalf("context mismatch: %v", m["context"])
	}
}

func TestOnLog_ContextKinds(t *testing.T) {
	tcs := map[string]struct {
		ctx  any
		want any
	}{
		"string": {ctx: "plain", want: "plain"},
		"error":  {ctx: errors.New("boom"), want: "boom"},
		"nil":    {ctx: nil, want: nil},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			s := New(zerolog.New(&buf))

			if err := s.OnLog(xconsole.Entry{Level: xconsole.LevelError, Message: "m", Context: tc.ctx}); err != nil {
				t.Fatalf("on log: %v", err)
			}

			var m map[string]any
			if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if m["context"] != tc.want {
				t.Fatalf("context: got %v want %v", m["context"], tc.want)
			}
		})
	}
}

func TestOnLog_BelowLevelIsDropped(t *testing.T) {
	var buf bytes.Buffer
	s := New(zerolog.New(&buf).Level(zerolog.WarnLevel))

	if err := s.OnLog(xconsole.Entry{Level: xconsole.LevelInfo, Message: "quiet"}); err != nil {
		t.Fatalf("on log: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestUse_ConsoleWriter(t *testing.T) {
	var out, console bytes.Buffer
	r := xconsole.NewRegistry()

	_, subs := Use(Config{Writer: &out, Registry: r, MinLevel: xconsole.LevelWarning, Console: true})
	defer func() {
		for _, s := range subs {
			s.Cancel()
		}
	}()

	l, err := xconsole.New(xconsole.Config{Writer: &console, Registry: r, ID: "svc1"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := l.Info("filtered"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if err := l.Warning("disk almost full"); err != nil {
		t.Fatalf("warning: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "filtered") {
		t.Fatalf("info should be filtered: %q", got)
	}
	if !strings.Contains(got, "disk almost full") || !strings.Contains(got, "logger_id=svc1") {
		t.Fatalf("console output mismatch: %q", got)
	}
}
