package outcome

import (
	"regexp"
	"strings"
)

// Patterns that identify host deployment details. Leaking any of them to
// the caller of untrusted code is a containment failure, not cosmetics.
var (
	// Absolute or relative Go source paths, with optional :line:col.
	goFilePattern = regexp.MustCompile(`(?:[A-Za-z]:)?(?:[\w.~+-]*/)+[\w.~+-]+\.go(?::\d+(?::\d+)?)?`)

	// Go module paths of the host binary.
	modulePattern = regexp.MustCompile(`\b(?:github\.com|golang\.org|google\.golang\.org|go\.uber\.org)/[\w./@+-]+`)

	// Goroutine dump headers from recovered panics.
	goroutinePattern = regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:`)
)

const redacted = "[redacted]"

// Scrub removes host filesystem paths, module names, and goroutine dump
// fragments from a message before it leaves the executor boundary.
func Scrub(msg string) string {
	if msg == "" {
		return msg
	}
	msg = goFilePattern.ReplaceAllString(msg, redacted)
	msg = modulePattern.ReplaceAllString(msg, redacted)
	msg = goroutinePattern.ReplaceAllString(msg, redacted)
	return strings.TrimSpace(msg)
}
