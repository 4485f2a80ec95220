package zapadapter

import (
	"io"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xconsole"
)

func newBenchZap(min zapcore.Level) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "", // disable zap own ts
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), min)
	return zap.New(core)
}

func benchOnLog(b *testing.B, zl *zap.Logger, ctx any) {
	s := New(zl)
	e := xconsole.Entry{
		Timestamp: time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC),
		Level:     xconsole.LevelInfo,
		Message:   "bench",
		Context:   ctx,
		ID:        "bench",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.OnLog(e)
	}
}

func BenchmarkOnLog_NoContext(b *testing.B) {
	benchOnLog(b, newBenchZap(zapcore.InfoLevel), nil)
}

func BenchmarkOnLog_MapContext(b *testing.B) {
	benchOnLog(b, newBenchZap(zapcore.InfoLevel), map[string]any{"a": "b", "i": 42, "ok": true})
}

func BenchmarkOnLog_Filtered(b *testing.B) {
	// Check returns nil before any field is built.
	benchOnLog(b, newBenchZap(zapcore.ErrorLevel), map[string]any{"a": "b"})
}
