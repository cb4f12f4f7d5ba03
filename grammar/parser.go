package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = buildParser()

func buildParser() *participle.Parser[Expr] {
	p, err := participle.Build[Expr](
		participle.Lexer(CalcLexer),
		participle.Elide(Elided...),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// ParseString parses a whole line with the strict grammar. It stops at the
// first error and performs no recovery.
func ParseString(source string) (*Expr, error) {
	return parser.ParseString("", source)
}

// FormatParseError renders a caret-style message for an error returned by
// ParseString.
func FormatParseError(src string, err error) string {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return color.RedString("Unexpected error: %s", err)
	}

	pos := pe.Position()
	var b strings.Builder
	b.WriteString(color.RedString("Syntax error at column %d:", pos.Column))
	b.WriteString("\n")
	b.WriteString(src)
	b.WriteString("\n")
	b.WriteString(color.HiRedString(strings.Repeat(" ", max(0, pos.Column-1)) + "^"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("→ %s", pe.Message()))
	return b.String()
}
