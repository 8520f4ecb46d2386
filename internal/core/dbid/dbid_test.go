package dbid

import (
	"strings"
	"testing"

	perr "caserelay/internal/platform/errors"
)

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantMsg string
	}{
		{in: "40c4cef5c8cd4cb4891a35c3710df6e9", want: "40c4cef5c8cd4cb4891a35c3710df6e9"},
		{in: "40C4CEF5C8CD4CB4891A35C3710DF6E9", want: "40c4cef5c8cd4cb4891a35c3710df6e9"},
		{in: "40c4cef5-c8cd-4cb4-891a-35c3710df6e9", want: "40c4cef5c8cd4cb4891a35c3710df6e9"},
		{in: "40-c4cef5c8cd4cb4891a35c3710df6e-9", want: "40c4cef5c8cd4cb4891a35c3710df6e9"},
		{in: "-0123-4567-89AB-cdef-0123-4567-89ab-cdef-", want: "0123456789abcdef0123456789abcdef"},
		{in: "", wantMsg: "Database ID is required"},
		{in: "  40c4cef5c8cd4cb4891a35c3710df6e9 ", wantMsg: "Invalid database ID format"},
		{in: " 40c4cef5c8cd4cb4891a35c3710df6e9", wantMsg: "Invalid database ID format"},
		{in: "40c4cef5c8cd4cb4891a35c3710df6e9\n", wantMsg: "Invalid database ID format"},
		{in: "\t40c4cef5-c8cd-4cb4-891a-35c3710df6e9 ", wantMsg: "Invalid database ID format"},
		{in: " ", wantMsg: "Invalid database ID format"},
		{in: "----", wantMsg: "Invalid database ID format"},
		{in: "not-an-id", wantMsg: "Invalid database ID format"},
		{in: "40c4cef5c8cd4cb4891a35c3710df6e", wantMsg: "Invalid database ID format"},   // 31
		{in: "40c4cef5c8cd4cb4891a35c3710df6e90", wantMsg: "Invalid database ID format"}, // 33
		{in: "g0c4cef5c8cd4cb4891a35c3710df6e9", wantMsg: "Invalid database ID format"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantMsg != "" {
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("Normalize(%q) expected validation error, got %v", tt.in, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Normalize(%q) message %q missing %q", tt.in, err.Error(), tt.wantMsg)
			}
			if e, _ := perr.As(err); e.Field() != Field {
				t.Fatalf("expected field %q, got %q", Field, e.Field())
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("Normalize(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
