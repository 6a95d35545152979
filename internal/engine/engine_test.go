package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/scriptbox/internal/isolate"
	"github.com/GriffinCanCode/scriptbox/internal/outcome"
)

func run(t *testing.T, code string, opts Options) Raw {
	t.Helper()
	iso, err := isolate.NewManager(0).Create(isolate.ScopeOptions{AllowAsync: opts.AllowAsync})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	t.Cleanup(iso.Dispose)
	return Run(context.Background(), iso, code, opts)
}

func TestRunValue(t *testing.T) {
	tests := []struct {
		name string
		code string
		want any
	}{
		{"arithmetic", "return 1 + 1", int64(2)},
		{"string", `return "a" + "b"`, "ab"},
		{"boolean", "return 1 < 2", true},
		{"float", "return 0.5 + 0.25", 0.75},
		{"no return", "1 + 1", nil},
		{"explicit undefined", "return undefined", nil},
		{"explicit null", "return null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.code, Options{})
			if !res.OK() {
				t.Fatalf("execution failed: %s %s", res.Kind, res.Message)
			}
			if res.Value != tt.want {
				t.Errorf("got %v (%T), want %v", res.Value, res.Value, tt.want)
			}
		})
	}
}

func TestRunObjectExport(t *testing.T) {
	res := run(t, `return {name: "ada", tags: [1, 2]}`, Options{})
	if !res.OK() {
		t.Fatalf("execution failed: %s %s", res.Kind, res.Message)
	}
	obj, ok := res.Value.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map", res.Value)
	}
	if obj["name"] != "ada" {
		t.Errorf("name = %v", obj["name"])
	}
}

func TestRunThrow(t *testing.T) {
	res := run(t, `throw new Error("boom")`, Options{})
	if res.Kind != outcome.KindRuntime {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindRuntime)
	}
	if res.Message != "Error: boom" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunSyntaxError(t *testing.T) {
	res := run(t, "function {", Options{})
	if res.Kind != outcome.KindCompile {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindCompile)
	}
	if res.Message == "" {
		t.Error("expected a diagnostic message")
	}
}

func TestRunTimeoutTerminatesBusyLoop(t *testing.T) {
	start := time.Now()
	res := run(t, "while (true) {}", Options{Timeout: 100 * time.Millisecond})
	elapsed := time.Since(start)

	if res.Kind != outcome.KindTimeout {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindTimeout)
	}
	if elapsed > time.Second {
		t.Errorf("termination took %v, want well under 1s", elapsed)
	}
}

func TestRunContextCancel(t *testing.T) {
	iso, err := isolate.NewManager(0).Create(isolate.ScopeOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer iso.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	res := Run(ctx, iso, "while (true) {}", Options{Timeout: 10 * time.Second})
	if res.Kind != outcome.KindTimeout {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindTimeout)
	}
	if !strings.Contains(res.Message, "cancelled") {
		t.Errorf("message = %q, want cancellation notice", res.Message)
	}
}

func TestRunStackOverflow(t *testing.T) {
	iso, err := isolate.NewManager(64).Create(isolate.ScopeOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer iso.Dispose()

	res := Run(context.Background(), iso, "function f() { return f() } return f()", Options{})
	if res.Kind != outcome.KindResource {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindResource)
	}
}

func TestRunStrictMode(t *testing.T) {
	res := run(t, "x = 1; return x", Options{Strict: true})
	if res.Kind != outcome.KindRuntime {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindRuntime)
	}
	if !strings.Contains(res.Message, "ReferenceError") {
		t.Errorf("message = %q, want ReferenceError", res.Message)
	}

	res = run(t, "x = 1; return x", Options{})
	if !res.OK() {
		t.Fatalf("sloppy-mode run failed: %s %s", res.Kind, res.Message)
	}
}

func TestRunAsyncAwait(t *testing.T) {
	res := run(t, "const v = await Promise.resolve(41); return v + 1", Options{AllowAsync: true})
	if !res.OK() {
		t.Fatalf("execution failed: %s %s", res.Kind, res.Message)
	}
	if res.Value != int64(42) {
		t.Errorf("got %v, want 42", res.Value)
	}
}

func TestRunAsyncRejection(t *testing.T) {
	res := run(t, `await Promise.reject(new Error("denied"))`, Options{AllowAsync: true})
	if res.Kind != outcome.KindRuntime {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindRuntime)
	}
	if res.Message != "Error: denied" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunAsyncNeverSettles(t *testing.T) {
	res := run(t, "await new Promise(function() {})", Options{AllowAsync: true})
	if res.Kind != outcome.KindRuntime {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindRuntime)
	}
	if !strings.Contains(res.Message, "never settled") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunPromiseResultRejectedWhenAsyncDisabled(t *testing.T) {
	// Promise is gone from the global scope, but an async function
	// expression still produces one through the internal intrinsic.
	res := run(t, "return (async function() { return 1 })()", Options{})
	if res.Kind != outcome.KindRuntime {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindRuntime)
	}
	if !strings.Contains(res.Message, "not allowed") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunDisposedIsolate(t *testing.T) {
	iso, err := isolate.NewManager(0).Create(isolate.ScopeOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	iso.Dispose()

	res := Run(context.Background(), iso, "return 1", Options{})
	if res.Kind != outcome.KindDisposed {
		t.Fatalf("kind = %s, want %s", res.Kind, outcome.KindDisposed)
	}
}
