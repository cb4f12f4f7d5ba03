package parser

import "fmt"

type TokenKind int

const (
	// Special tokens
	Invalid TokenKind = iota
	EndOfInput

	// Literals
	Integer

	// Operators
	Plus

	// Brackets
	LParen
	RParen

	numTokenKinds
)

var tokenKindNames = [...]string{
	Invalid:    "Invalid",
	EndOfInput: "EndOfInput",
	Integer:    "Integer",
	Plus:       "Plus",
	LParen:     "LParen",
	RParen:     "RParen",
}

func (k TokenKind) String() string {
	if k >= 0 && k < numTokenKinds {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Describe returns the form used in diagnostics.
func (k TokenKind) Describe() string {
	switch k {
	case Integer:
		return "integer"
	case Plus:
		return "'+'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case EndOfInput:
		return "end of input"
	case Invalid:
		return "unrecognized input"
	default:
		return k.String()
	}
}

// Span is a half-open byte range [Start, End) into the input line.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Column is the 1-based column of the first byte.
func (s Span) Column() int {
	return s.Start + 1
}

// Text slices the spanned bytes out of the line the span was produced for.
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

type Token struct {
	Kind TokenKind
	Span Span
}
