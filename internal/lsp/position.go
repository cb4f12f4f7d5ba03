package lsp

import "unicode/utf16"

// LSP positions count UTF-16 code units; parser spans count bytes.

// utf16Column converts a byte offset within line to a UTF-16 column.
func utf16Column(line string, offset int) uint32 {
	offset = min(max(offset, 0), len(line))
	col := 0
	for _, r := range line[:offset] {
		col += utf16.RuneLen(r)
	}
	return uint32(col)
}

// byteOffset converts a UTF-16 column within line to a byte offset. Columns
// past the end of the line clamp to its length.
func byteOffset(line string, character uint32) int {
	col := 0
	for i, r := range line {
		if col >= int(character) {
			return i
		}
		col += utf16.RuneLen(r)
	}
	return len(line)
}
