// Package outcome classifies execution failures and sanitizes the
// messages that cross the executor boundary.
package outcome

import (
	"errors"

	"github.com/dop251/goja"
)

// Kind identifies a failure class. An empty Kind means success.
type Kind string

const (
	KindCompile  Kind = "compile_error"
	KindRuntime  Kind = "runtime_error"
	KindTimeout  Kind = "timeout"
	KindResource Kind = "resource_exhausted"
	KindInternal Kind = "internal_error"
	KindDisposed Kind = "disposed"
)

// Classify maps an engine error to its failure kind and a sanitized
// message. Order matters: StackOverflowError embeds InterruptedError, so
// it must be matched first.
func Classify(err error) (Kind, string) {
	if err == nil {
		return KindInternal, "unknown failure"
	}

	var stackErr *goja.StackOverflowError
	if errors.As(err, &stackErr) {
		return KindResource, "stack overflow: call depth limit exceeded"
	}

	var interruptErr *goja.InterruptedError
	if errors.As(err, &interruptErr) {
		return KindTimeout, "execution interrupted: deadline exceeded"
	}

	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		return KindCompile, Scrub(firstLine(err.Error()))
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		return KindRuntime, Scrub(FormatThrown(exc.Value()))
	}

	return KindInternal, Scrub(err.Error())
}

// FormatThrown renders a thrown JS value as "Name: message" for Error
// objects and as its string form otherwise. Thrown objects can carry
// hostile property getters, so inspection failures degrade to a fixed
// message instead of propagating.
func FormatThrown(v goja.Value) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = "uninspectable thrown value"
		}
	}()

	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "thrown value was " + valueWord(v)
	}

	if obj, ok := v.(*goja.Object); ok {
		name := stringProp(obj, "name")
		message := stringProp(obj, "message")
		if name != "" {
			if message != "" {
				return name + ": " + message
			}
			return name
		}
	}

	return v.String()
}

func valueWord(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	return "null"
}

func stringProp(obj *goja.Object, key string) string {
	val := obj.Get(key)
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return ""
	}
	return val.String()
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
