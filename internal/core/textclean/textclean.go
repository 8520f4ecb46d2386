// Package textclean turns user entered free text into plain text safe to forward upstream
// Pipeline order
// 1 drop control bytes and invalid UTF-8
// 2 strip markup with a strict sanitizer policy
// 3 unescape entities the sanitizer produced
// 4 Unicode NFC and removal of format chars (ZWJ ZWNJ FEFF etc)
// 5 collapse whitespace, keeping single line breaks
package textclean

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRichText is the upstream limit for a single rich text content block
const MaxRichText = 2000

var strict = bluemonday.StrictPolicy()

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Plain returns s as plain text following the pipeline described above
func Plain(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	s = Sanitize(s)
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return collapseSpaces(ns)
}

// Clip truncates s to at most n runes
func Clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// collapseSpaces converts whitespace runs to a single ASCII space, but preserves line breaks.
// Runs that contain any newline are collapsed to a single newline. Edges are trimmed
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
