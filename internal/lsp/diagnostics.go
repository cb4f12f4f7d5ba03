package lsp

import (
	"strings"

	calcerrors "calc/internal/errors"
	"calc/internal/parser"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertDiagnostics transforms the parser diagnostics of one 0-based line
// into LSP diagnostics. Repairs are appended to the message so editors show
// what the parser assumed.
func ConvertDiagnostics(line int, source string, diags []parser.Diagnostic) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, d := range diags {
		ce := calcerrors.FromDiagnostic(d, line+1)

		message := ce.Message
		if len(ce.Suggestions) > 0 {
			parts := make([]string, len(ce.Suggestions))
			for i, s := range ce.Suggestions {
				parts[i] = s.Message
			}
			message += " (" + strings.Join(parts, ", then ") + ")"
		}

		r := lineRange(line, source, d.Span.Start, d.Span.End)
		if r.End.Character == r.Start.Character {
			r.End.Character++ // zero-width spans still need a visible range
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    r,
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: ce.Code},
			Source:   ptrString(diagnosticSource(d.Kind)),
			Message:  message,
		})
	}

	return diagnostics
}

// convertResult reports an evaluation error for a line that parsed cleanly.
// Lines with parser diagnostics already explain why they have no value.
func convertResult(line int, l lineResult) []protocol.Diagnostic {
	if len(l.diagnostics) > 0 {
		return nil
	}
	ce, ok := calcerrors.FromResult(l.result, line+1, l.source)
	if !ok {
		return nil
	}
	start := len(l.source) - len(strings.TrimLeft(l.source, " \t"))
	end := len(strings.TrimRight(l.source, " \t"))

	return []protocol.Diagnostic{{
		Range:    lineRange(line, l.source, start, end),
		Severity: ptrSeverity(protocol.DiagnosticSeverityWarning),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString("calc-eval"),
		Message:  ce.Message,
	}}
}

func collectDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, l := range doc.lines {
		diagnostics = append(diagnostics, ConvertDiagnostics(i, l.source, l.diagnostics)...)
		diagnostics = append(diagnostics, convertResult(i, l)...)
	}
	return diagnostics
}

func diagnosticSource(kind parser.DiagnosticKind) string {
	if kind == parser.LexicalError {
		return "calc-scanner"
	}
	return "calc-parser"
}

// lineRange converts a byte span of source to an LSP range on line.
func lineRange(line int, source string, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: utf16Column(source, start)},
		End:   protocol.Position{Line: uint32(line), Character: utf16Column(source, end)},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
