// Package sniff classifies response bodies that claim to be data but are actually markup
// Gateways and misrouted endpoints answer with HTML error pages; parsing those as JSON
// yields confusing decode errors, so callers check here first
package sniff

import (
	"bytes"
	"mime"
	"strings"
)

var (
	bom      = []byte{0xEF, 0xBB, 0xBF}
	prefixes = [][]byte{[]byte("<!doctype"), []byte("<html")}
)

// IsMarkup reports whether a response is an HTML document
// True when the media type is text/html or application/xhtml+xml, or when the body
// (after an optional UTF-8 BOM and leading whitespace) starts with <!doctype or <html
// in any letter case
func IsMarkup(body []byte, contentType string) bool {
	if isMarkupType(contentType) {
		return true
	}
	b := bytes.TrimPrefix(body, bom)
	b = bytes.TrimLeft(b, " \t\r\n\f")
	for _, p := range prefixes {
		if len(b) >= len(p) && bytes.EqualFold(b[:len(p)], p) {
			return true
		}
	}
	return false
}

func isMarkupType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// fall back to a prefix check on malformed headers
		mt = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// Excerpt returns at most n bytes of body as a single line for diagnostics
func Excerpt(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return strings.Join(strings.Fields(string(bytes.ToValidUTF8(body, nil))), " ")
}
