package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
)

// errAbandoned means the interrupt did not land within the grace window
// and the execution goroutine was left behind.
var errAbandoned = errors.New("execution unresponsive to interrupt")

// supervisor enforces the wall-clock budget on one execution. Interrupt
// is the only preemption goja offers; it is checked between bytecode
// ops, so it lands almost immediately for any real script. The grace
// window exists for the pathological case where it does not: rather
// than block the caller forever, the goroutine is abandoned and the
// isolate with it.
type supervisor struct {
	vm     *goja.Runtime
	budget time.Duration
	grace  time.Duration

	timedOut  atomic.Bool
	cancelled atomic.Bool
}

type runResult struct {
	value goja.Value
	err   error
}

func (s *supervisor) run(ctx context.Context, prg *goja.Program) (goja.Value, error) {
	// Buffered so an abandoned goroutine can still deposit its result
	// and exit instead of leaking on a blocked send.
	done := make(chan runResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runResult{err: fmt.Errorf("engine panic: %v", r)}
			}
		}()
		v, err := s.vm.RunProgram(prg)
		done <- runResult{value: v, err: err}
	}()

	watchdog := time.AfterFunc(s.budget, func() {
		s.timedOut.Store(true)
		s.vm.Interrupt("execution deadline exceeded")
	})
	defer watchdog.Stop()

	// Caller cancellation interrupts the same way the watchdog does.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.cancelled.Store(true)
			s.vm.Interrupt("execution cancelled")
		case <-stop:
		}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-time.After(s.budget + s.grace):
		return nil, errAbandoned
	}
}
