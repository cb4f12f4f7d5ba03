package parser

import (
	"calc/grammar"
	"errors"
	"fmt"
)

var (
	ErrOverflow       = grammar.ErrOverflow
	ErrInvalidLiteral = grammar.ErrInvalidLiteral

	// ErrRepaired marks a value computed from a token inserted by recovery.
	ErrRepaired = errors.New("expression contains repaired input")

	// ErrLexical marks a line that contained unrecognized characters.
	ErrLexical = errors.New("expression contains unrecognized input")
)

// Result is the outcome of evaluating a line that produced a parse tree.
// A nil *Result means no tree could be built at all.
type Result struct {
	Value uint64
	Err   error
}

// Ok reports whether r holds a value.
func (r *Result) Ok() bool {
	return r != nil && r.Err == nil
}

func (r *Result) String() string {
	switch {
	case r == nil:
		return "None"
	case r.Err != nil:
		return fmt.Sprintf("Err(%v)", r.Err)
	default:
		return fmt.Sprintf("Ok(%d)", r.Value)
	}
}
