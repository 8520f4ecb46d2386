// Package testkit holds shared test helpers: panic assertions and a fake
// upstream that counts calls per route
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails unless fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustNotPanic fails if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails when needle is not in haystack; long output is trimmed in the message
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	shown := haystack
	if len(shown) > 2048 {
		shown = shown[:2048] + "..."
	}
	t.Fatalf("missing %q in:\n%s", needle, shown)
}
