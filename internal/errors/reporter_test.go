package errors

import (
	"strings"
	"testing"

	"calc/internal/parser"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := "1+2\n(1+2\n3"
	reporter := NewErrorReporter("sums.calc", source)

	_, diags := parser.ParseLine("(1+2")
	require.Len(t, diags, 1)

	err := FromDiagnostic(diags[0], 2)
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorSyntax+"]")
	assert.Contains(t, formatted, "unexpected end of input")
	assert.Contains(t, formatted, "sums.calc:2:5")
	assert.Contains(t, formatted, "(1+2")
	assert.Contains(t, formatted, "repair: inserted ')'")
}

func TestFromDiagnosticLexical(t *testing.T) {
	_, diags := parser.ParseLine("1+@@")
	require.NotEmpty(t, diags)

	err := FromDiagnostic(diags[0], 1)
	assert.Equal(t, ErrorUnrecognizedInput, err.Code)
	assert.Equal(t, Position{Line: 1, Column: 3}, err.Position)
	assert.Equal(t, 2, err.Length)
	assert.Contains(t, err.Message, `"@@"`)
	assert.NotEmpty(t, err.HelpText)
}

func TestFromDiagnosticUnrecoverable(t *testing.T) {
	_, diags := parser.ParseLine("((((")
	require.Len(t, diags, 1)

	err := FromDiagnostic(diags[0], 4)
	assert.Equal(t, ErrorUnrecoverable, err.Code)
	assert.NotContains(t, err.Message, "no repair found")
	assert.Len(t, err.Notes, 1)
	assert.Equal(t, "4:5: unexpected end of input, expected integer or '('", err.Error())
}

func TestFromDiagnosticMultipleRepairs(t *testing.T) {
	d := parser.Diagnostic{
		Kind:  parser.SyntaxError,
		Span:  parser.Span{Start: 2, End: 3},
		Found: parser.RParen,
		Text:  ")",
		Repairs: []parser.Repair{
			{Kind: parser.RepairDelete, Token: parser.RParen, Span: parser.Span{Start: 2, End: 3}, Text: ")"},
			{Kind: parser.RepairInsert, Token: parser.Integer, Span: parser.Span{Start: 3, End: 3}},
		},
	}
	err := FromDiagnostic(d, 1)
	require.Len(t, err.Suggestions, 2)
	assert.Equal(t, "deleted ')'", err.Suggestions[0].Message)
	assert.Equal(t, 4, err.Suggestions[1].Position.Column)

	formatted := NewErrorReporter("<stdin>", "1+)").FormatError(err)
	assert.Contains(t, formatted, "then  inserted integer")
}

func TestFromResult(t *testing.T) {
	res, _ := parser.ParseLine("18446744073709551615+1")
	err, ok := FromResult(res, 1, "18446744073709551615+1")
	require.True(t, ok)
	assert.Equal(t, ErrorOverflow, err.Code)
	assert.Equal(t, "overflow detected", err.Message)
	assert.Equal(t, 22, err.Length)

	res, _ = parser.ParseLine("(1+2")
	err, ok = FromResult(res, 1, "(1+2")
	require.True(t, ok)
	assert.Equal(t, ErrorRepairedValue, err.Code)

	res, _ = parser.ParseLine("1 $ + 1")
	err, ok = FromResult(res, 1, "1 $ + 1")
	require.True(t, ok)
	assert.Equal(t, ErrorTaintedValue, err.Code)

	res, _ = parser.ParseLine("1+1")
	_, ok = FromResult(res, 1, "1+1")
	assert.False(t, ok)

	_, ok = FromResult(nil, 1, "")
	assert.False(t, ok)
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.calc", "12 + 345")

	marker := reporter.createMarker(6, 3, Error)
	assert.Equal(t, 5, strings.Count(marker, " "))
	assert.Equal(t, 3, strings.Count(marker, "^"))

	marker = reporter.createMarker(9, 0, Error)
	assert.Equal(t, 1, strings.Count(marker, "^"), "zero-width regions still get a caret")
}

func TestErrorLevels(t *testing.T) {
	reporter := NewErrorReporter("test.calc", "1")
	pos := Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	assert.Contains(t, reporter.FormatError(errorErr), "error:")
	assert.Contains(t, reporter.FormatError(warningErr), "warning:")
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Evaluation", GetErrorCategory(ErrorOverflow))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorToolInput))
	assert.Equal(t, "Unknown", GetErrorCategory("E0500"))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}
