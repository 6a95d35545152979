package isolate

import "github.com/dop251/goja"

// harden applies runtime-level limits before any user code runs.
func harden(vm *goja.Runtime, maxStackDepth int) {
	// Runaway recursion becomes a catchable StackOverflowError instead
	// of exhausting the host goroutine's stack.
	vm.SetMaxCallStackSize(maxStackDepth)

	// Direct eval would let a script synthesize code outside strict-mode
	// wrapping. The Function constructor stays: it evaluates inside the
	// same runtime and sees only the sandboxed global.
	_ = vm.Set("eval", goja.Undefined())
}
