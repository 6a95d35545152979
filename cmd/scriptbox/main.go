// Command scriptbox runs a JavaScript file (or stdin) inside the
// sandbox and prints the structured result as JSON.
//
// Usage:
//
//	scriptbox [flags] [script.js]
//
// With no script argument the source is read from stdin. Exit status is
// 0 when the script succeeds, 1 when it fails, and 2 on host errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/scriptbox"
	"github.com/GriffinCanCode/scriptbox/internal/config"
	"github.com/GriffinCanCode/scriptbox/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		timeout     = flag.Duration("timeout", 0, "wall-clock budget for the run (0 = configured default)")
		async       = flag.Bool("async", false, "enable Promise and top-level await")
		sloppy      = flag.Bool("sloppy", false, "compile without strict mode")
		contextFile = flag.String("context", "", "JSON file of values to inject as globals")
	)
	flag.Parse()

	cfg := config.LoadOrDefault()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 2
	}
	defer log.Sync()

	code, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	bindings, err := readContext(*contextFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	exec, err := scriptbox.New(scriptbox.Config{
		MaxTimeout:     cfg.Executor.MaxTimeout,
		DefaultTimeout: cfg.Executor.DefaultTimeout,
		MaxConcurrent:  cfg.Executor.MaxConcurrent,
		MaxStackDepth:  cfg.Executor.MaxStackDepth,
		Logger:         log.Logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer exec.Dispose()

	res, err := exec.Execute(context.Background(), code, &scriptbox.Options{
		Timeout:       *timeout,
		AllowAsync:    *async,
		DisableStrict: *sloppy,
		Context:       bindings,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	out, err := sonic.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Println(string(out))

	if !res.Success {
		return 1
	}
	return 0
}

// readSource loads the script from a file, or from stdin when no path
// is given.
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return string(data), nil
}

// readContext parses the optional context file into bindings.
func readContext(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context: %w", err)
	}
	var bindings map[string]any
	if err := sonic.Unmarshal(data, &bindings); err != nil {
		return nil, fmt.Errorf("parsing context: %w", err)
	}
	return bindings, nil
}
