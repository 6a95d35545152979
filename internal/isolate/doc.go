/*
Package isolate creates and tears down independent execution
environments for untrusted scripts.

# Overview

Every execution gets a brand-new goja.Runtime. A runtime owns its global
object and its entire prototype graph, so isolation is structural: a
script that rewrites Array.prototype mutates only its own copy, and the
damage dies with the isolate. Nothing is snapshotted or restored after
the fact, because a remedial approach cannot protect concurrent
executions from observing a polluted state mid-flight.

# Scope

The global scope exposes only pure-data and pure-computation intrinsics
(Math, JSON, Date, String, Array, Object, Map, Set, ...), a console
capture object, and the caller's injected bindings. Host names such as
require, process, module, Buffer, or __dirname are never defined — goja
does not ship them — so they resolve to undefined rather than being
hidden copies.

# Guard

Before any user code runs the runtime is hardened: the call stack is
capped so runaway recursion surfaces as a resource error instead of
crashing the host, and eval is removed from the global object. Function
constructors remain available but can only synthesize code inside the
same runtime; code obtained that way still sees the sandboxed global,
never the host's.
*/
package isolate
