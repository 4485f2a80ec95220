package xconsole

import "sync/atomic"

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// Default creates a logger from DefaultConfig: debug output and colours on,
// the process id, stdout and the shared registry.
func Default() *Logger {
	return newLogger(DefaultConfig())
}

// SetGlobal sets the global Logger (Singleton setter). A nil l resets it so
// the next L call builds a fresh Default logger.
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger, creating a Default one on first use.
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, Default())
	return global.Load()
}

// Use builds a logger from cfg, sets it as global, and returns it.
func Use(cfg Config) (*Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	SetGlobal(l)
	return l, nil
}
