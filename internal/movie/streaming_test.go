package movie

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestNormalizeReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "invalid byte replaced",
			input:    []byte{'a', 0xFF, 'b'},
			expected: "a\uFFFDb",
		},
		{
			name:     "multibyte kept",
			input:    []byte("Amélie,日本語"),
			expected: "Amélie,日本語",
		},
		{
			name:     "BOM only stripped at start",
			input:    append([]byte("a"), 0xEF, 0xBB, 0xBF),
			expected: "a\uFEFF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NormalizeReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	input := strings.Repeat("x", 10000)
	r := NewCountingReader(strings.NewReader(input))

	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 10000 || r.BytesRead != 10000 {
		t.Errorf("copied %d, BytesRead %d, want 10000", n, r.BytesRead)
	}
}
