// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"calc/internal/parser"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
)

const PROMPT = ">>> "

// Options configures both the line REPL and the TUI.
type Options struct {
	Prompt string
	Parser parser.Options
}

func DefaultOptions() Options {
	return Options{Prompt: PROMPT, Parser: parser.DefaultOptions()}
}

var (
	diagColor   = color.New(color.FgRed)
	resultColor = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgYellow)
)

// Outcome is what the REPL reports for one line.
type Outcome struct {
	Result      *parser.Result
	Diagnostics []parser.Diagnostic
}

// Evaluate parses and evaluates one line.
func Evaluate(line string, opts parser.Options) Outcome {
	res, diags := parser.NewParser(line, opts).Parse()
	return Outcome{Result: res, Diagnostics: diags}
}

// Summary is the final line printed for an outcome.
func (o Outcome) Summary() string {
	if o.Result.Ok() {
		return fmt.Sprintf("Result: %d", o.Result.Value)
	}
	return "Unable to evaluate expression."
}

// Start reads lines from in until EOF, printing diagnostics and the value of
// each non-blank line to out.
func Start(in io.Reader, out io.Writer, opts Options) error {
	log := commonlog.GetLogger("calc.repl")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, opts.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		outcome := Evaluate(line, opts.Parser)
		log.Debugf("evaluated %q: %s", line, outcome.Result)

		for _, d := range outcome.Diagnostics {
			diagColor.Fprintln(out, d.String())
		}
		if outcome.Result.Ok() {
			resultColor.Fprintln(out, outcome.Summary())
		} else {
			failColor.Fprintln(out, outcome.Summary())
		}
	}
}
