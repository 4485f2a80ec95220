// Package main provides the xconsole CLI, which writes log entries through a
// configured xconsole.Logger. It is handy for shell scripts that want the same
// console format as the Go services around them.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trickstertwo/xconsole"
	"github.com/trickstertwo/xconsole/config"
)

var errArgs = errors.New("invalid arguments")

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "xconsole",
		Short:         "Write leveled console log lines",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	newLogger := func(cmd *cobra.Command) (*xconsole.Logger, error) {
		err := cfg.Load(viper.New(), cmd.Flags())
		if err != nil {
			return nil, err
		}

		return cfg.NewLogger(out)
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:       "log <debug|info|warning|error> <message> [key=value ...]",
			Short:     "Write one entry",
			Args:      cobra.MinimumNArgs(2),
			ValidArgs: []string{"debug", "info", "warning", "error"},
			RunE: func(cmd *cobra.Command, args []string) error {
				l, err := newLogger(cmd)
				if err != nil {
					return err
				}

				return runLog(l, args)
			},
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Write one entry per level, including a failed HTTP request",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				l, err := newLogger(cmd)
				if err != nil {
					return err
				}

				return runDemo(l, out)
			},
		},
	)

	return rootCmd
}

func runLog(l *xconsole.Logger, args []string) error {
	level, err := xconsole.ParseLevel(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", errArgs, err)
	}

	msg := args[1]

	var data []any

	kv := parsePairs(args[2:])
	if kv != nil {
		data = append(data, kv)
	}

	switch level {
	case xconsole.LevelDebug:
		return l.Debug(msg, data...)
	case xconsole.LevelWarning:
		return l.Warning(msg, data...)
	case xconsole.LevelError:
		if kv != nil {
			// Structured values are passed through as the error context.
			return l.Error(kv, msg)
		}

		return l.Error(errors.New(msg))
	default:
		return l.Info(msg, data...)
	}
}

// parsePairs turns key=value arguments into a context map. Arguments without
// "=" are stored under their position.
func parsePairs(args []string) map[string]any {
	if len(args) == 0 {
		return nil
	}

	kv := make(map[string]any, len(args))
	for i, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			kv[fmt.Sprintf("arg%d", i)] = arg
			continue
		}

		kv[k] = v
	}

	return kv
}

func runDemo(l *xconsole.Logger, out io.Writer) error {
	var published atomic.Int64

	counter := xconsole.SubscriberFunc(func(xconsole.Entry) error {
		published.Add(1)
		return nil
	})

	subs := l.Registry().SubscribeLevels(counter)
	defer func() {
		for _, s := range subs {
			s.Cancel()
		}
	}()

	req, err := http.NewRequest(http.MethodGet, "http://localhost:8080/orders/42", nil)
	if err != nil {
		return err
	}

	resp := &http.Response{StatusCode: http.StatusNotFound}

	errs := []error{
		l.Debug("resolving configuration", map[string]any{"source": "flags"}),
		l.Info("started"),
		l.WithID("worker").Warning("queue is filling up", map[string]any{"depth": 950, "capacity": 1000}),
		l.Error(xconsole.NewClientError(req, resp, "order not found", nil)),
		l.Error(errors.New("boom")),
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "published %d entries\n", published.Load())

	return err
}
