// Package inject prepares caller-supplied context values for binding
// into an isolate.
package inject

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bytedance/sonic"
)

var (
	ErrBadName  = errors.New("invalid context binding name")
	ErrBadValue = errors.New("context value is not serializable")
)

// identPattern matches a plausible JS identifier. Binding names that fail
// it (including "__proto__"-style tricks hidden in odd encodings) are
// rejected outright.
var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// protoKey is dropped from injected objects at every depth so a
// maliciously shaped payload cannot graft onto the isolate's prototypes.
const protoKey = "__proto__"

// Clone deep-copies the caller's context map through a JSON round-trip.
// The copy is owned entirely by the isolate: mutations made by sandboxed
// code can never reach the caller's originals, and nothing survives into
// a later call. Functions, channels, and cyclic values are rejected
// before any code runs.
func Clone(ctx map[string]any) (map[string]any, error) {
	if len(ctx) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(ctx))
	for name, value := range ctx {
		if err := ValidateName(name); err != nil {
			return nil, err
		}

		data, err := sonic.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadValue, name)
		}

		var copied any
		if err := sonic.Unmarshal(data, &copied); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadValue, name)
		}

		out[name] = scrub(copied)
	}
	return out, nil
}

// ValidateName checks that a binding name is a plain JS identifier.
func ValidateName(name string) error {
	if name == protoKey || !identPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// scrub removes __proto__ keys at every nesting level.
func scrub(v any) any {
	switch t := v.(type) {
	case map[string]any:
		delete(t, protoKey)
		for k, vv := range t {
			t[k] = scrub(vv)
		}
	case []any:
		for i, vv := range t {
			t[i] = scrub(vv)
		}
	}
	return v
}
