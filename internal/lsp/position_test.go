package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line   string
		offset int
		want   uint32
	}{
		{"1+2", 2, 2},
		{"é+1", 2, 1},
		{"é+1", 3, 2},
		{"😀 1", 4, 2},
		{"😀 1", 5, 3},
		{"abc", 10, 3},
		{"abc", -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utf16Column(tt.line, tt.offset), "%q at %d", tt.line, tt.offset)
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		line      string
		character uint32
		want      int
	}{
		{"1+2", 1, 1},
		{"é+1", 1, 2},
		{"é+1", 3, 4},
		{"😀 1", 2, 4},
		{"😀 1", 3, 5},
		{"abc", 9, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, byteOffset(tt.line, tt.character), "%q at %d", tt.line, tt.character)
	}
}
