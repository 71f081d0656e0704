package utils

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}

	for _, tt := range tests {
		got := TruncateString(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("TruncateString(%q, %d): expected %q, got %q", tt.in, tt.width, tt.want, got)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"one", "one"},
		{"\n\n  two  \nthree", "two"},
	}

	for _, tt := range tests {
		if got := FirstLine(tt.in); got != tt.want {
			t.Errorf("FirstLine(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "project"); got != "1 project" {
		t.Errorf("expected %q, got %q", "1 project", got)
	}
	if got := Pluralize(0, "project"); got != "0 projects" {
		t.Errorf("expected %q, got %q", "0 projects", got)
	}
}
