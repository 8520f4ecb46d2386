package raw

import "testing"

func TestConf(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  warn ")
	t.Setenv("LOG_CALLER", "TRUE")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_FORMAT", "   ")
	t.Setenv("LOG_BAD_BOOL", "yes please")
	t.Setenv("LOG_NEG", "-3")

	c := New().Prefix("LOG_")
	if c != "LOG_" {
		t.Fatalf("prefix %q", c)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"trimmed", c.Get("LEVEL", "debug"), "warn"},
		{"blank uses default", c.Get("FORMAT", "console"), "console"},
		{"unset uses default", c.Get("SERVICE", "caserelay"), "caserelay"},
		{"bool", c.GetBool("CALLER", false), true},
		{"bad bool", c.GetBool("BAD_BOOL", true), true},
		{"int", c.GetInt("SAMPLE_EVERY", 0), 10},
		{"negative int", c.GetInt("NEG", 1), 1},
		{"unset int", c.GetInt("MISSING", 7), 7},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v want %v", tt.name, tt.got, tt.want)
		}
	}
}
