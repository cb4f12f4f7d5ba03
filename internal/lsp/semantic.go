package lsp

import (
	"calc/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
type SemanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	TokenType int
}

var tokenTypeOf = map[parser.TokenKind]string{
	parser.Integer: "number",
	parser.Plus:    "operator",
}

func collectSemanticTokens(doc *document) []SemanticToken {
	var tokens []SemanticToken

	for i, l := range doc.lines {
		for _, tok := range parser.NewScanner(l.source).ScanTokens() {
			name, ok := tokenTypeOf[tok.Kind]
			if !ok {
				continue
			}
			start := utf16Column(l.source, tok.Span.Start)
			tokens = append(tokens, SemanticToken{
				Line:      uint32(i),
				StartChar: start,
				Length:    utf16Column(l.source, tok.Span.End) - start,
				TokenType: indexOf(name, SemanticTokenTypes),
			})
		}
	}

	return tokens
}

// encodeSemanticTokens packs tokens into the LSP wire format (delta-line,
// delta-start compression).
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), 0)

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
