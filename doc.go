/*
Package scriptbox executes untrusted JavaScript with hard isolation,
wall-clock budgets, and sanitized results.

# Overview

An Executor accepts source text and returns a structured Result. Every
call runs in a freshly created isolate: its own global object, its own
prototype graph, its own console capture. Nothing a script does —
polluting Array.prototype, redefining globals, throwing hostile objects
— can be observed by any other call or by the host.

# Security Model

Isolation is structural, not remedial. The sandbox runtime simply never
defines host-facing names (require, process, module, Buffer, __dirname),
so they evaluate to undefined rather than being hidden or proxied. The
call stack is capped, eval is removed, and injected context values are
deep-copied through a serialization round-trip so sandboxed mutations
cannot reach the caller's data.

# Limits

Each execution has a wall-clock budget enforced by preemptive
interruption: a busy loop like while(true){} is terminated from outside,
not trusted to yield. Failure messages never contain host file paths,
module paths, or goroutine dumps.

# Usage

	exec, err := scriptbox.New(scriptbox.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer exec.Dispose()

	res, err := exec.Execute(ctx, "return a + b", &scriptbox.Options{
		Context: map[string]any{"a": 1, "b": 2},
	})

Execute returns an error only when no execution was attempted (executor
disposed, invalid context, caller cancellation while queued). Everything
the script itself does — including failing — is reported in the Result.
*/
package scriptbox
