package xconsole

// Facade helpers using global Singleton logger.
// Usage: xconsole.Info("listening", map[string]any{"port": 8080})

func Debug(msg string, data ...any) error   { return L().Debug(msg, data...) }
func Info(msg string, data ...any) error    { return L().Info(msg, data...) }
func Warning(msg string, data ...any) error { return L().Warning(msg, data...) }
func Error(v any, msg ...string) error      { return L().Error(v, msg...) }
func Inspect(v any) error                   { return L().Inspect(v) }

func Subscribe(event Event, s Subscriber) *Subscription {
	return L().Subscribe(event, s)
}
