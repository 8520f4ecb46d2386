package textclean

import (
	"strings"
	"unicode/utf8"
)

// Sanitize removes bytes/runes the upstream rejects or renders badly:
// - NUL (0x00)
// - ASCII controls except '\n', '\r', '\t'
// - DEL (0x7F)
// - C1 controls U+0080..U+009F
// It also drops invalid UTF-8 bytes.
// Fast path returns s unchanged when no cleaning is needed.
func Sanitize(s string) string {
	n := len(s)
	i := 0

	// scan until first bad byte/rune
	for i < n {
		b := s[i]
		if b < 0x80 {
			if b == 0x7F || (b < 0x20 && b != '\n' && b != '\r' && b != '\t') {
				break
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || (r >= 0x80 && r <= 0x9F) {
			break
		}
		i += size
	}
	if i == n {
		return s
	}

	var bldr strings.Builder
	bldr.Grow(n)
	bldr.WriteString(s[:i]) // keep clean prefix

	for i < n {
		c := s[i]
		if c < 0x80 {
			if c == 0x7F || (c < 0x20 && c != '\n' && c != '\r' && c != '\t') {
				i++
				continue
			}
			bldr.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			i++
		case r >= 0x80 && r <= 0x9F:
			i += size
		default:
			bldr.WriteString(s[i : i+size])
			i += size
		}
	}
	return bldr.String()
}
