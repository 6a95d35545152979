package scriptbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/scriptbox/internal/engine"
	"github.com/GriffinCanCode/scriptbox/internal/inject"
	"github.com/GriffinCanCode/scriptbox/internal/isolate"
	"github.com/GriffinCanCode/scriptbox/internal/logging"
	"github.com/GriffinCanCode/scriptbox/internal/monitoring"
)

// Config holds executor-wide limits.
type Config struct {
	// MaxTimeout is the hard ceiling for any single execution. Per-call
	// timeouts above it are clamped.
	MaxTimeout time.Duration

	// DefaultTimeout applies when a call specifies no timeout.
	DefaultTimeout time.Duration

	// MaxConcurrent caps in-flight executions. Further calls queue
	// until a slot frees or their context is cancelled.
	MaxConcurrent int

	// MaxStackDepth caps JS call depth inside each isolate.
	MaxStackDepth int

	// Logger receives structured execution logs. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxTimeout:     30 * time.Second,
		DefaultTimeout: 5 * time.Second,
		MaxConcurrent:  16,
		MaxStackDepth:  isolate.DefaultMaxStackDepth,
	}
}

// Executor runs untrusted scripts. It is safe for concurrent use.
type Executor struct {
	cfg      Config
	log      *logging.Logger
	metrics  *monitoring.Metrics
	isolates *isolate.Manager
	slots    chan struct{}

	mu       sync.RWMutex
	disposed bool
	wg       sync.WaitGroup
}

// New creates an executor. Zero-valued limits fall back to defaults;
// negative or inconsistent limits are rejected.
func New(cfg Config) (*Executor, error) {
	def := DefaultConfig()
	if cfg.MaxTimeout == 0 {
		cfg.MaxTimeout = def.MaxTimeout
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = def.DefaultTimeout
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}
	if cfg.MaxStackDepth == 0 {
		cfg.MaxStackDepth = def.MaxStackDepth
	}

	if cfg.MaxTimeout < 0 || cfg.DefaultTimeout < 0 {
		return nil, fmt.Errorf("timeouts must be positive")
	}
	if cfg.DefaultTimeout > cfg.MaxTimeout {
		return nil, fmt.Errorf("default timeout %v exceeds maximum %v", cfg.DefaultTimeout, cfg.MaxTimeout)
	}
	if cfg.MaxConcurrent < 0 {
		return nil, fmt.Errorf("max concurrent must be positive")
	}
	if cfg.MaxStackDepth < 0 {
		return nil, fmt.Errorf("max stack depth must be positive")
	}

	return &Executor{
		cfg:      cfg,
		log:      logging.Wrap(cfg.Logger).Named("executor"),
		metrics:  monitoring.Shared(),
		isolates: isolate.NewManager(cfg.MaxStackDepth),
		slots:    make(chan struct{}, cfg.MaxConcurrent),
	}, nil
}

// Execute runs code in a fresh isolate and reports the outcome. The
// returned error is non-nil only when no execution was attempted:
// disposed executor, empty code, invalid context, or caller
// cancellation while waiting for a slot. Script failures of every kind
// are reported inside the Result with Success false.
func (e *Executor) Execute(ctx context.Context, code string, opts *Options) (*Result, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	e.mu.RLock()
	if e.disposed {
		e.mu.RUnlock()
		return nil, ErrDisposed
	}
	e.wg.Add(1)
	e.mu.RUnlock()
	defer e.wg.Done()

	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	bindings, err := inject.Clone(opts.Context)
	if err != nil {
		e.log.Warn("context rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidContext, err)
	}

	iso, err := e.isolates.Create(isolate.ScopeOptions{
		AllowAsync: opts.AllowAsync,
		Bindings:   bindings,
	})
	if err != nil {
		e.log.Warn("context rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidContext, err)
	}
	defer iso.Dispose()

	id := uuid.NewString()
	e.log.Debug("execution started", zap.String("id", id))
	e.metrics.ExecutionStarted()
	start := time.Now()

	raw := engine.Run(ctx, iso, code, engine.Options{
		Strict:     !opts.DisableStrict,
		AllowAsync: opts.AllowAsync,
		Timeout:    e.resolveTimeout(opts.Timeout),
	})

	elapsed := time.Since(start)
	res := &Result{
		ID:         id,
		Success:    raw.OK(),
		Value:      raw.Value,
		Error:      raw.Message,
		Kind:       Kind(raw.Kind),
		Console:    convertConsole(iso.Console()),
		Duration:   elapsed,
		DurationMS: elapsed.Milliseconds(),
	}

	label := "success"
	if !res.Success {
		label = string(res.Kind)
	}
	e.metrics.ExecutionFinished(label, elapsed)
	e.log.Debug("execution finished",
		zap.String("id", id),
		zap.String("outcome", label),
		zap.Duration("duration", elapsed),
	)

	return res, nil
}

// resolveTimeout applies the default and the ceiling to a per-call
// budget.
func (e *Executor) resolveTimeout(requested time.Duration) time.Duration {
	if requested <= 0 {
		return e.cfg.DefaultTimeout
	}
	if requested > e.cfg.MaxTimeout {
		return e.cfg.MaxTimeout
	}
	return requested
}

// Stats returns cumulative process-wide execution counters.
func (e *Executor) Stats() Stats {
	snap := e.metrics.Stats()
	return Stats{
		Total:     snap.Total,
		Succeeded: snap.Succeeded,
		Failed:    snap.Failed,
		TimedOut:  snap.TimedOut,
	}
}

// Dispose shuts the executor down. It blocks until in-flight executions
// finish; later Execute calls fail with ErrDisposed. Dispose is
// idempotent.
func (e *Executor) Dispose() error {
	e.mu.Lock()
	already := e.disposed
	e.disposed = true
	e.mu.Unlock()
	if already {
		return nil
	}

	e.wg.Wait()
	e.log.Info("executor disposed")
	return nil
}

func convertConsole(entries []isolate.ConsoleEntry) []ConsoleEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]ConsoleEntry, len(entries))
	for i, entry := range entries {
		out[i] = ConsoleEntry{Level: entry.Level, Message: entry.Message}
	}
	return out
}
