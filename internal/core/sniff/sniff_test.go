package sniff

import "testing"

func TestIsMarkup_Table(t *testing.T) {
	tests := []struct {
		name string
		body string
		ct   string
		want bool
	}{
		{"doctype with json content type", "<!doctype html><html></html>", "application/json", true},
		{"doctype upper", "<!DOCTYPE HTML>", "", true},
		{"html tag", "<html><body>502</body></html>", "", true},
		{"leading whitespace", "\n\t  <!DocType html>", "application/json", true},
		{"bom then html", "\xEF\xBB\xBF<html>", "", true},
		{"html content type json body", `{"object":"error"}`, "text/html; charset=utf-8", true},
		{"xhtml content type", "", "application/xhtml+xml", true},
		{"uppercase media type", "x", "TEXT/HTML", true},
		{"json", `{"object":"list"}`, "application/json; charset=utf-8", false},
		{"empty", "", "", false},
		{"xml is not html", `<?xml version="1.0"?><a/>`, "application/xml", false},
		{"short body", "<ht", "", false},
		{"malformed ct", `{}`, "text/html;;;", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarkup([]byte(tt.body), tt.ct); got != tt.want {
				t.Fatalf("IsMarkup(%q, %q) = %v, want %v", tt.body, tt.ct, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt([]byte("<html>\n  <body> Bad   Gateway </body>"), 200); got != "<html> <body> Bad Gateway </body>" {
		t.Fatalf("Excerpt = %q", got)
	}
	if got := Excerpt([]byte("abcdef"), 3); got != "abc" {
		t.Fatalf("Excerpt clip = %q", got)
	}
}
