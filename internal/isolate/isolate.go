package isolate

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"
)

var ErrDisposed = errors.New("isolate has been disposed")

// DefaultMaxStackDepth caps JS call depth when no limit is configured.
const DefaultMaxStackDepth = 1024

// maxConsoleEntries bounds how much console output one execution may
// accumulate.
const maxConsoleEntries = 1000

// Manager creates and destroys isolates.
type Manager struct {
	maxStackDepth int
}

// NewManager creates an isolate manager with the given stack depth cap.
func NewManager(maxStackDepth int) *Manager {
	if maxStackDepth <= 0 {
		maxStackDepth = DefaultMaxStackDepth
	}
	return &Manager{maxStackDepth: maxStackDepth}
}

// ScopeOptions control what a new isolate's global scope exposes.
type ScopeOptions struct {
	// AllowAsync keeps Promise available inside the isolate.
	AllowAsync bool
	// Bindings are caller context values, already deep-copied by the
	// injector. They become plain globals.
	Bindings map[string]any
}

// Isolate is one independent execution environment. It is owned by a
// single execution and must never be shared between calls.
type Isolate struct {
	vm       *goja.Runtime
	disposed atomic.Bool

	// console is guarded by mu: an execution abandoned by the timeout
	// supervisor may still be appending while the caller reads.
	mu      sync.Mutex
	console []ConsoleEntry
}

// ConsoleEntry is one captured console call.
type ConsoleEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Create allocates a fresh isolate. The backing runtime is always newly
// constructed; no storage is ever reused from a previous handle.
func (m *Manager) Create(opts ScopeOptions) (*Isolate, error) {
	vm := goja.New()
	iso := &Isolate{vm: vm}

	harden(vm, m.maxStackDepth)

	if err := buildScope(vm, iso, opts); err != nil {
		iso.Dispose()
		return nil, err
	}
	return iso, nil
}

// Runtime returns the underlying VM, or nil after Dispose.
func (iso *Isolate) Runtime() *goja.Runtime {
	if iso.disposed.Load() {
		return nil
	}
	return iso.vm
}

// Disposed reports whether the isolate has been torn down.
func (iso *Isolate) Disposed() bool {
	return iso.disposed.Load()
}

// Console returns a copy of the captured console output.
func (iso *Isolate) Console() []ConsoleEntry {
	iso.mu.Lock()
	defer iso.mu.Unlock()
	return append([]ConsoleEntry(nil), iso.console...)
}

// Dispose tears the isolate down. Any later use fails with ErrDisposed
// instead of touching a stale runtime. Dispose is idempotent.
func (iso *Isolate) Dispose() {
	if iso.disposed.CompareAndSwap(false, true) {
		iso.vm = nil
	}
}
