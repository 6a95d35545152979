package scriptbox

import "time"

// Kind identifies the failure class of an unsuccessful execution.
type Kind string

const (
	KindCompileError      Kind = "compile_error"
	KindRuntimeError      Kind = "runtime_error"
	KindTimeout           Kind = "timeout"
	KindResourceExhausted Kind = "resource_exhausted"
	KindInternalError     Kind = "internal_error"
)

// Result is the outcome of one execution.
type Result struct {
	// ID uniquely identifies the execution, for log correlation.
	ID string `json:"id"`

	// Success reports whether the script ran to completion.
	Success bool `json:"success"`

	// Value is the script's completion value, exported to plain Go
	// types. It is nil when the script produced undefined or null, and
	// always nil on failure.
	Value any `json:"value,omitempty"`

	// Error is a sanitized failure message. Empty on success.
	Error string `json:"error,omitempty"`

	// Kind classifies the failure. Empty on success.
	Kind Kind `json:"kind,omitempty"`

	// Console holds output captured from console.log and friends, in
	// call order.
	Console []ConsoleEntry `json:"console,omitempty"`

	// Duration is the wall-clock time the execution took.
	Duration time.Duration `json:"-"`

	// DurationMS is Duration in milliseconds, for serialized results.
	DurationMS int64 `json:"duration_ms"`
}

// ConsoleEntry is one captured console call.
type ConsoleEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Stats are cumulative execution counters for one process.
type Stats struct {
	Total     int64 `json:"total"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	TimedOut  int64 `json:"timed_out"`
}
