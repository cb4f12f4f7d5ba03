package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"calc/internal/parser"
)

// ErrorBuilder provides a fluent interface for creating errors with suggestions
type ErrorBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *ErrorBuilder) WithSuggestion(message string, pos Position) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Position: pos})
	return b
}

// WithNote adds a note to the error
func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed error
func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// FromDiagnostic converts a parser diagnostic on the given 1-based line.
func FromDiagnostic(d parser.Diagnostic, line int) CompilerError {
	pos := Position{Line: line, Column: d.Span.Column()}

	switch d.Kind {
	case parser.LexicalError:
		return NewError(ErrorUnrecognizedInput,
			fmt.Sprintf("unrecognized character %q", d.Text), pos).
			WithLength(d.Span.Len()).
			WithHelp("only digits, '+', '(' and ')' are allowed").
			Build()

	case parser.UnrecoverableError:
		return NewError(ErrorUnrecoverable, syntaxMessage(d), pos).
			WithLength(d.Span.Len()).
			WithNote("no repair was found; the line has no value").
			Build()
	}

	b := NewError(ErrorSyntax, syntaxMessage(d), pos).WithLength(d.Span.Len())
	for _, r := range d.Repairs {
		b.WithSuggestion(r.String(), Position{Line: line, Column: r.Span.Column()})
	}
	return b.Build()
}

// FromResult converts the evaluation error of a line, if any. A nil result
// or one holding a value yields false.
func FromResult(res *parser.Result, line int, source string) (CompilerError, bool) {
	if res == nil || res.Err == nil {
		return CompilerError{}, false
	}
	pos := Position{Line: line, Column: 1}
	length := len(strings.TrimRight(source, " \t"))

	var code string
	switch {
	case stderrors.Is(res.Err, parser.ErrOverflow):
		code = ErrorOverflow
	case stderrors.Is(res.Err, parser.ErrInvalidLiteral):
		code = ErrorInvalidLiteral
	case stderrors.Is(res.Err, parser.ErrRepaired):
		code = ErrorRepairedValue
	case stderrors.Is(res.Err, parser.ErrLexical):
		code = ErrorTaintedValue
	default:
		code = ErrorToolInput
	}
	return NewError(code, res.Err.Error(), pos).
		WithLength(length).
		WithHelp(GetErrorDescription(code)).
		Build(), true
}

func syntaxMessage(d parser.Diagnostic) string {
	msg := d.Message()
	// Repairs and the unrecoverable marker are reported separately.
	if i := strings.Index(msg, "; "); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
