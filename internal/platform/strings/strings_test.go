package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()
	if got := IfEmpty([]string{"GET"}, []string{"POST"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("non-empty input replaced: %v", got)
	}
	if got := IfEmpty(nil, []string{"POST"}); len(got) != 1 || got[0] != "POST" {
		t.Fatalf("default not used: %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()
	if got := MustString("cases", "module name"); got != "cases" {
		t.Fatalf("got %q", got)
	}
	defer func() {
		if r := recover(); r != "module name is required" {
			t.Fatalf("unexpected panic %v", r)
		}
	}()
	MustString("  ", "module name")
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"cases":     "/cases",
		"/cases/":   "/cases",
		" export ":  "/export",
		"//meta//":  "/meta",
		"/v1/cases": "/v1/cases",
	} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " / "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("MustPrefix(%q) should panic", in)
				}
			}()
			MustPrefix(in)
		}()
	}
}

func TestRedact(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", ""},
		{"ntn_abcdefgh1234", "ntn_…1234"},
		{"secret_abcdefghijkl9876", "secret_…9876"},
		{"ntn_short", "ntn_…"},
		{"plainvaluewithoutscheme42", "…me42"},
		{"tiny", "…"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
}
