package jsonutil_test

import (
	"testing"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

func TestTrimLeftWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"space", []byte("  32"), []byte("32")},
		{"tab", []byte("\t\t{ \"hello\": \"world\" }"), []byte("{ \"hello\": \"world\" }")},
		{"newline", []byte("\n\n[1, 2, 3]"), []byte("[1, 2, 3]")},
		{"carriage return", []byte("\r\r{}"), []byte("{}")},
		{"only whitespace", []byte(" \n"), []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jsonutil.TrimLeftWhitespace(tt.input)
			if string(got) != string(tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFirstByte(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  byte
	}{
		{" [1]", '['},
		{"\n{\"a\":1}", '{'},
		{"\"x\"", '"'},
		{"   ", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := jsonutil.FirstByte([]byte(tt.input)); got != tt.want {
			t.Errorf("FirstByte(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsNull(t *testing.T) {
	t.Parallel()

	if !jsonutil.IsNull([]byte(" null\n")) {
		t.Error("expected padded null to be null")
	}
	if jsonutil.IsNull([]byte(`"null"`)) {
		t.Error("string \"null\" must not be null")
	}
	if jsonutil.IsNull(nil) {
		t.Error("empty input must not be null")
	}
}
