package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xconsole"
)

// Config is an explicit, code-first configuration for forwarding xconsole
// entries to zap. One call to Use wires it.
type Config struct {
	Writer             io.Writer          // default: os.Stderr
	Registry           *xconsole.Registry // default: xconsole.DefaultRegistry()
	MinLevel           xconsole.Level
	Console            bool                  // console encoder instead of JSON
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	TimestampFieldName string                // default "ts"
}

// Use builds a zap logger from cfg, subscribes it to every level event of the
// registry and returns the subscriber with its subscriptions.
func Use(cfg Config) (*Subscriber, []*xconsole.Subscription) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	r := cfg.Registry
	if r == nil {
		r = xconsole.DefaultRegistry()
	}

	// Encoder config defaults: do not let zap inject its own time (entries carry "ts")
	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "",
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	} else {
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), toZapLevel(cfg.MinLevel))
	s := NewWithTimestampKey(zap.New(core), cfg.TimestampFieldName)

	return s, r.SubscribeLevels(s)
}
