package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestLogCommand(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args     []string
		contains []string
		absent   []string
	}{
		"info": {
			args:     []string{"log", "info", "started", "--id=svc1", "--colours=false"},
			contains: []string{"INFO    svc1 | started"},
		},
		"warn alias with pairs": {
			args:     []string{"log", "warn", "slow", "ms=1200", "--id=api", "--colours=false"},
			contains: []string{"WARNING api | slow", "ms: 1200"},
		},
		"debug disabled": {
			args:   []string{"log", "debug", "hidden", "--debug=false", "--colours=false"},
			absent: []string{"hidden"},
		},
		"error with plain message": {
			args:     []string{"log", "error", "boom", "--colours=false"},
			contains: []string{"| boom", "xconsole.GenericErrorContext", "message: boom"},
		},
		"json format": {
			args:     []string{"log", "info", "started", "--format=json", "--id=svc1"},
			contains: []string{`"message":"started"`, `"id":"svc1"`},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestLogCommandErrors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "log", "fatal", "x")
	require.ErrorIs(t, err, errArgs)

	_, err = execute(t, "log", "info")
	require.Error(t, err)

	_, err = execute(t, "log", "info", "x", "--format=xml")
	require.Error(t, err)
}

// Not parallel: the demo counts entries published on the shared registry.
func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo", "--colours=false", "--id=demo")
	require.NoError(t, err)

	assert.Contains(t, out, "worker | queue is filling up")
	assert.Contains(t, out, "req_config: ")
	assert.Contains(t, out, "res_status: 404")
	assert.Contains(t, out, "published 5 entries")
	assert.Equal(t, 1, strings.Count(out, "| started"))
}

func TestParsePairs(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parsePairs(nil))
	assert.Equal(t,
		map[string]any{"a": "1", "arg1": "loose", "b": "x=y"},
		parsePairs([]string{"a=1", "loose", "b=x=y"}),
	)
}
