package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules is the lexical specification of the calculator language. Order
// matters: when two rules match the same number of bytes the earlier one wins.
var Rules = []lexer.SimpleRule{
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[ \t]+`},
}

// Elided names the rules that are recognised but never produce a token.
var Elided = []string{"Whitespace"}

var CalcLexer = lexer.MustSimple(Rules)
