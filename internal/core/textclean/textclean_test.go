package textclean

import "testing"

func TestPlain_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"identity", "Smith v. Jones", "Smith v. Jones"},
		{"blank", "   \t ", ""},
		{"strips tags", "<b>Smith</b> v. <i>Jones</i>", "Smith v. Jones"},
		{"drops script body", "<script>alert(1)</script>Doe", "Doe"},
		{"keeps ampersand", "Smith & Wesson", "Smith & Wesson"},
		{"unescapes entities", "A &amp; B", "A & B"},
		{"zero width removed", "Ro\u200be", "Roe"},
		{"nfc composes", "cafe\u0301", "caf\u00e9"},
		{"controls dropped", "a\x00b\x7fc", "abc"},
		{"collapses whitespace", "  a \t b\n\n  c  ", "a b\nc"},
		{"invalid utf8 dropped", string([]byte{'o', 0xff, 'k'}), "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.in); got != tt.out {
				t.Fatalf("Plain(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestClip(t *testing.T) {
	if got := Clip("abcdef", 3); got != "abc" {
		t.Fatalf("Clip = %q", got)
	}
	if got := Clip("héllo", 2); got != "hé" {
		t.Fatalf("Clip multibyte = %q", got)
	}
	if got := Clip("ab", 5); got != "ab" {
		t.Fatalf("Clip short = %q", got)
	}
	if got := Clip("ab", 0); got != "" {
		t.Fatalf("Clip zero = %q", got)
	}
}

func TestSanitize_FastPathReturnsInput(t *testing.T) {
	in := "already clean\nline"
	if got := Sanitize(in); got != in {
		t.Fatalf("Sanitize changed clean input: %q", got)
	}
	if got := Sanitize("x\u0085y"); got != "xy" {
		t.Fatalf("Sanitize C1 = %q", got)
	}
}
