package isolate

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/GriffinCanCode/scriptbox/internal/inject"
)

// buildScope populates the isolate's global bindings: console capture,
// the async primitive when enabled, and the caller's context values.
func buildScope(vm *goja.Runtime, iso *Isolate, opts ScopeOptions) error {
	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error"} {
		if err := console.Set(level, iso.consoleFunc(level)); err != nil {
			return fmt.Errorf("building console: %w", err)
		}
	}
	if err := vm.Set("console", console); err != nil {
		return fmt.Errorf("building console: %w", err)
	}

	// The deferred-computation primitive is opt-in. Without it the
	// isolate has no way to express asynchrony at all.
	if !opts.AllowAsync {
		if err := vm.GlobalObject().Delete("Promise"); err != nil {
			return fmt.Errorf("removing Promise: %w", err)
		}
	}

	for name, value := range opts.Bindings {
		if err := inject.ValidateName(name); err != nil {
			return err
		}
		// A binding may not shadow anything already on the global
		// object (intrinsics, console, another binding).
		if existing := vm.GlobalObject().Get(name); existing != nil {
			return fmt.Errorf("context binding %q shadows a global", name)
		}
		if err := vm.Set(name, value); err != nil {
			return fmt.Errorf("binding %q: %w", name, err)
		}
	}
	return nil
}

// consoleFunc returns a capture function for one console level.
func (iso *Isolate) consoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var b strings.Builder
		for i, arg := range call.Arguments {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(arg.String())
		}

		iso.mu.Lock()
		if len(iso.console) < maxConsoleEntries {
			iso.console = append(iso.console, ConsoleEntry{Level: level, Message: b.String()})
		}
		iso.mu.Unlock()

		return goja.Undefined()
	}
}
