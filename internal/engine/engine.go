package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/GriffinCanCode/scriptbox/internal/isolate"
	"github.com/GriffinCanCode/scriptbox/internal/outcome"
)

// progName is the script name used at compile time. It is what appears
// in JS stack traces instead of a host file path.
const progName = "sandbox"

const (
	// DefaultTimeout applies when the caller passes no budget.
	DefaultTimeout = 5 * time.Second

	// DefaultGrace is how long an interrupt may take to land after the
	// budget expires before the execution goroutine is abandoned.
	DefaultGrace = 500 * time.Millisecond
)

// Options control one execution.
type Options struct {
	// Strict compiles the script in strict mode.
	Strict bool

	// AllowAsync wraps the script in an async function and settles the
	// resulting promise.
	AllowAsync bool

	// Timeout is the wall-clock budget for the run.
	Timeout time.Duration

	// Grace extends the budget for interrupt delivery only.
	Grace time.Duration
}

// Raw is the unnormalized outcome of one execution. Kind is empty on
// success.
type Raw struct {
	Value   any
	Kind    outcome.Kind
	Message string
}

// OK reports whether the execution produced a value.
func (r Raw) OK() bool { return r.Kind == "" }

// Run compiles and executes code inside iso under the options' budget.
// The isolate must not be shared with any other execution.
func Run(ctx context.Context, iso *isolate.Isolate, code string, opts Options) Raw {
	vm := iso.Runtime()
	if vm == nil {
		return Raw{Kind: outcome.KindDisposed, Message: "isolate has been disposed"}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}

	prg, err := compile(code, opts)
	if err != nil {
		kind, msg := outcome.Classify(err)
		return Raw{Kind: kind, Message: msg}
	}

	sup := &supervisor{vm: vm, budget: opts.Timeout, grace: opts.Grace}
	val, err := sup.run(ctx, prg)
	if err != nil {
		if errors.Is(err, errAbandoned) {
			return Raw{Kind: outcome.KindTimeout, Message: "execution exceeded its deadline and did not respond to interrupt"}
		}
		kind, msg := outcome.Classify(err)
		if kind == outcome.KindTimeout && sup.cancelled.Load() && !sup.timedOut.Load() {
			msg = "execution cancelled by caller"
		}
		return Raw{Kind: kind, Message: msg}
	}

	return settle(val, opts)
}

// compile wraps the script so top-level return is legal and compiles it
// once. The async wrapper turns the whole script body into an async
// function, which is what makes top-level await work.
func compile(code string, opts Options) (*goja.Program, error) {
	var b strings.Builder
	if opts.AllowAsync {
		b.WriteString("(async function() {\n")
	} else {
		b.WriteString("(function() {\n")
	}
	b.WriteString(code)
	b.WriteString("\n})()")
	return goja.Compile(progName, b.String(), opts.Strict)
}

// settle resolves the completion value, unwrapping a promise when async
// execution is enabled. The microtask queue has already drained by the
// time the value reaches here, so a pending promise is permanently
// pending.
func settle(val goja.Value, opts Options) Raw {
	if val == nil {
		return Raw{}
	}

	if p, ok := val.Export().(*goja.Promise); ok {
		if !opts.AllowAsync {
			return Raw{Kind: outcome.KindRuntime, Message: "asynchronous result is not allowed for this execution"}
		}
		switch p.State() {
		case goja.PromiseStateFulfilled:
			return Raw{Value: exportValue(p.Result())}
		case goja.PromiseStateRejected:
			return Raw{Kind: outcome.KindRuntime, Message: outcome.Scrub(outcome.FormatThrown(p.Result()))}
		default:
			return Raw{Kind: outcome.KindRuntime, Message: "asynchronous result never settled"}
		}
	}

	return Raw{Value: exportValue(val)}
}

// exportValue converts a JS completion value to Go. Both undefined and
// null collapse to nil.
func exportValue(val goja.Value) any {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
