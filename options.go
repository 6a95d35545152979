package scriptbox

import "time"

// Options control a single execution. A nil *Options means defaults.
type Options struct {
	// Timeout is the wall-clock budget for this call. Zero uses the
	// executor's default; values above the executor's maximum are
	// clamped to it.
	Timeout time.Duration

	// AllowAsync enables top-level await and Promise. When false the
	// Promise constructor is absent from the sandbox and a promise
	// completion value is rejected.
	AllowAsync bool

	// DisableStrict compiles the script without strict mode. Strict is
	// the default: implicit global creation widens the escape surface.
	DisableStrict bool

	// Context values become global variables inside the sandbox. Each
	// value must serialize to JSON; the sandbox receives a deep copy.
	Context map[string]any
}

// DefaultOptions returns the per-call defaults: executor-default
// timeout, synchronous, strict mode, no context.
func DefaultOptions() *Options {
	return &Options{}
}
