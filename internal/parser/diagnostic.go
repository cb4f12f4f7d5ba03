package parser

import (
	"fmt"
	"strings"
)

type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	SyntaxError
	UnrecoverableError
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case UnrecoverableError:
		return "unrecoverable syntax error"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

type RepairKind int

const (
	RepairInsert RepairKind = iota
	RepairDelete
)

// Repair is one edit applied by error recovery. Inserted tokens have a
// zero-width span at the position they were inserted before.
type Repair struct {
	Kind  RepairKind
	Token TokenKind
	Span  Span
	Text  string
}

func (r Repair) String() string {
	if r.Kind == RepairInsert {
		return "inserted " + r.Token.Describe()
	}
	return "deleted " + describeFound(r.Token, r.Text)
}

// Diagnostic describes one problem found in a line. Everything needed to
// render it is captured when it is created.
type Diagnostic struct {
	Kind     DiagnosticKind
	Span     Span
	Found    TokenKind
	Text     string
	Expected []TokenKind
	Repairs  []Repair
}

// Message renders the diagnostic without its position.
func (d Diagnostic) Message() string {
	if d.Kind == LexicalError {
		return fmt.Sprintf("unrecognized character %q at offset %d", d.Text, d.Span.Start)
	}

	var b strings.Builder
	b.WriteString("unexpected ")
	b.WriteString(describeFound(d.Found, d.Text))
	if len(d.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(describeKinds(d.Expected))
	}

	switch {
	case d.Kind == UnrecoverableError:
		b.WriteString("; no repair found")
	case len(d.Repairs) > 0:
		parts := make([]string, len(d.Repairs))
		for i, r := range d.Repairs {
			parts[i] = r.String()
		}
		b.WriteString("; ")
		b.WriteString(strings.Join(parts, ", then "))
	}
	return b.String()
}

// String renders the diagnostic as a single line prefixed with line:column.
func (d Diagnostic) String() string {
	return fmt.Sprintf("1:%d: %s", d.Span.Column(), d.Message())
}

func describeFound(kind TokenKind, text string) string {
	switch kind {
	case Integer:
		return fmt.Sprintf("integer %s", text)
	case Invalid:
		return fmt.Sprintf("%q", text)
	default:
		return kind.Describe()
	}
}

// describeKinds joins kinds as "a, b or c".
func describeKinds(kinds []TokenKind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Describe())
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
