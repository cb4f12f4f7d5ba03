package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a left-associative chain of terms joined by '+'.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Head   *Term   `@@`
	Tail   []*Term `( "+" @@ )*`
}

// Term is the extension point for higher-precedence operators.
type Term struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Factor *Factor `@@`
}

type Factor struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Parens  *Expr   `  "(" @@ ")"`
	Integer *string `| @Integer`
}
