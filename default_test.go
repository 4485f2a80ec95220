package xconsole

import (
	"bytes"
	"strings"
	"testing"
)

// Not parallel: these tests swap the package global.
func TestFacadeUsesGlobal(t *testing.T) {
	old := global.Load()
	defer SetGlobal(old)

	var buf bytes.Buffer
	l := newTestLogger(t, &buf, true)
	SetGlobal(l)

	if L() != l {
		t.Fatalf("L should return the installed logger")
	}

	rec := &recorder{}
	Subscribe(EventWarning, rec)

	calls := []func() error{
		func() error { return Debug("d") },
		func() error { return Info("i") },
		func() error { return Warning("w") },
		func() error { return Error("e") },
		func() error { return Inspect(42) },
	}
	for i, call := range calls {
		if err := call(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	out := buf.String()
	for _, want := range []string{"| d", "| i", "| w", "| e", "int\n42\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if len(rec.all()) != 1 {
		t.Fatalf("expected 1 warning event, got %d", len(rec.all()))
	}
}

func TestLInitializesDefault(t *testing.T) {
	old := global.Load()
	defer SetGlobal(old)

	SetGlobal(nil)
	l := L()
	if l == nil {
		t.Fatal("L returned nil")
	}
	if L() != l {
		t.Fatalf("L should keep returning the same logger")
	}
	if l.ID() != DefaultID() || !l.DebugEnabled() || !l.Colours() {
		t.Fatalf("lazy global should use DefaultConfig")
	}
	if l.Registry() != DefaultRegistry() {
		t.Fatalf("lazy global should use the default registry")
	}
}

func TestUseInstallsGlobal(t *testing.T) {
	old := global.Load()
	defer SetGlobal(old)

	var buf bytes.Buffer
	l, err := Use(Config{Writer: &buf, Registry: NewRegistry(), ID: "used"})
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if L() != l || L().ID() != "used" {
		t.Fatalf("Use should install the logger globally")
	}

	if _, err := Use(Config{ID: "bad\nid"}); err == nil {
		t.Fatalf("expected error for invalid config")
	}
	if L() != l {
		t.Fatalf("failed Use must not replace the global")
	}
}
