/*
Package engine compiles and runs scripts inside an isolate under a
wall-clock budget.

# Overview

Source is wrapped in an immediately-invoked function so top-level return
works, compiled once, then executed on a dedicated goroutine. A watchdog
fires at the budget and interrupts the runtime; interruption is
preemptive, so even `while(true){}` terminates. If the interrupt cannot
land within a short grace window the goroutine is abandoned along with
its isolate, which is never reused.

# Async

When async execution is enabled the wrapper is an async function and the
returned promise is settled by the time RunProgram returns, because the
runtime drains its microtask queue before handing control back. A
promise still pending at that point can never settle (the sandbox has no
timers or I/O) and is reported as a runtime error.
*/
package engine
