package grammar

import "strings"

func (e *Expr) String() string {
	var b strings.Builder
	b.WriteString(e.Head.String())
	for _, t := range e.Tail {
		b.WriteString(" + ")
		b.WriteString(t.String())
	}
	return b.String()
}

func (t *Term) String() string {
	return t.Factor.String()
}

func (f *Factor) String() string {
	if f.Parens != nil {
		return "(" + f.Parens.String() + ")"
	}
	if f.Integer != nil {
		return *f.Integer
	}
	return "<error>"
}
