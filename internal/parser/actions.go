package parser

import "calc/grammar"

// value is one entry on the parser's value stack: a shifted lexeme or the
// result of a reduction.
type value struct {
	tok      Token
	inserted bool
	res      Result
}

// action computes a production's result from the values of its right-hand
// side. src is the line being parsed.
type action func(src string, args []value) Result

func literalAction(src string, args []value) Result {
	lit := args[0]
	if lit.inserted {
		return Result{Err: ErrRepaired}
	}
	v, err := grammar.ParseLiteral(lit.tok.Span.Text(src))
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: v}
}

func parenAction(_ string, args []value) Result {
	if args[0].inserted || args[2].inserted {
		return Result{Err: ErrRepaired}
	}
	return args[1].res
}

func sumAction(_ string, args []value) Result {
	lhs, rhs := args[0].res, args[2].res
	if lhs.Err != nil {
		return lhs
	}
	if rhs.Err != nil {
		return rhs
	}
	if args[1].inserted {
		return Result{Err: ErrRepaired}
	}
	v, err := grammar.CheckedAdd(lhs.Value, rhs.Value)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: v}
}

func passThrough(_ string, args []value) Result {
	return args[0].res
}
