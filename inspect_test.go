package xconsole

import (
	"bytes"
	"reflect"
	"testing"
)

type inspectTarget struct {
	Name     string `json:"name"`
	Port     int
	Skipped  string `json:"-"`
	internal string
}

func TestInspectLines(t *testing.T) {
	t.Parallel()

	var nilTarget *inspectTarget

	tcs := map[string]struct {
		input   any
		colours bool
		want    []string
	}{
		"nil": {
			input: nil,
			want:  nil,
		},
		"scalar": {
			input: 42,
			want:  []string{"int", "42"},
		},
		"sorted map": {
			input: map[string]int{"b": 2, "a": 1},
			want:  []string{"map[string]int", "a: 1", "b: 2"},
		},
		"struct": {
			input: inspectTarget{Name: "api", Port: 80, Skipped: "x", internal: "y"},
			want:  []string{"xconsole.inspectTarget", "name: api", "Port: 80"},
		},
		"pointer to struct": {
			input: &inspectTarget{Name: "api"},
			want:  []string{"*xconsole.inspectTarget", "name: api", "Port: 0"},
		},
		"nil pointer": {
			input: nilTarget,
			want:  []string{"*xconsole.inspectTarget", "<nil>"},
		},
		"slice": {
			input: []string{"x", "y"},
			want:  []string{"[]string", "0: x", "1: y"},
		},
		"bytes": {
			input: []byte("payload"),
			want:  []string{"[]uint8", "payload"},
		},
		"coloured": {
			input:   map[string]int{"a": 1},
			colours: true,
			want:    []string{"\x1b[31mmap[string]int\x1b[0m", "\x1b[96ma\x1b[0m: 1"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := inspectLines(tc.input, tc.colours); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestInspectWritesNothingForNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newTestLogger(t, &buf, true)

	if err := l.Inspect(nil); err != nil {
		t.Fatalf("inspect nil: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	if err := l.Inspect(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if got, want := buf.String(), "map[string]string\nk: v\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
