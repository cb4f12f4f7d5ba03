package lsp

import (
	"strings"

	"calc/internal/parser"
)

// lineResult is the evaluation of one line of a document.
type lineResult struct {
	source      string
	result      *parser.Result
	diagnostics []parser.Diagnostic
}

func (l lineResult) blank() bool {
	return strings.TrimSpace(l.source) == ""
}

// document holds the text of an open file and the evaluation of each line.
type document struct {
	text  string
	lines []lineResult
}

func newDocument(text string, opts parser.Options) *document {
	raw := strings.Split(text, "\n")
	doc := &document{text: text, lines: make([]lineResult, len(raw))}
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		res, diags := parser.NewParser(line, opts).Parse()
		doc.lines[i] = lineResult{source: line, result: res, diagnostics: diags}
	}
	return doc
}

func (d *document) line(n int) (lineResult, bool) {
	if n < 0 || n >= len(d.lines) {
		return lineResult{}, false
	}
	return d.lines[n], true
}
