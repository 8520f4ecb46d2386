// Package strings holds the few string helpers shared by modules and adapters
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<name> is required" when s is blank
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns " cases/ " into "/cases"; the bare root panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Redact keeps a short scheme prefix and the last four characters of a secret.
// "ntn_abcdefgh1234" becomes "ntn_…1234"; short values are fully masked
func Redact(secret string) string {
	secret = std.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	const tail = 4
	prefix := ""
	if i := std.IndexByte(secret, '_'); i > 0 && i < 8 {
		prefix = secret[:i+1]
	}
	if len(secret) <= len(prefix)+tail*2 {
		return prefix + "…"
	}
	return prefix + "…" + secret[len(secret)-tail:]
}
