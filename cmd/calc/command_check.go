package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	calcerrors "calc/internal/errors"
	"calc/repl"

	"github.com/fatih/color"
)

// CheckCmd represents the check command
type CheckCmd struct {
	File string `arg:"" help:"File with one expression per line" type:"path"`
}

// Run evaluates every non-blank line of the file. Problems are reported with
// source context; the command fails if any line has a diagnostic or no value.
func (cmd *CheckCmd) Run(ctx *Context) error {
	startTime := time.Now()

	source, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	reporter := calcerrors.NewErrorReporter(cmd.File, string(source))
	checked, failed := 0, 0

	for i, line := range strings.Split(string(source), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		checked++

		outcome := repl.Evaluate(line, ctx.Config.ParserOptions())
		for _, d := range outcome.Diagnostics {
			fmt.Fprint(ctx.Err, reporter.FormatError(calcerrors.FromDiagnostic(d, i+1)))
		}
		if len(outcome.Diagnostics) == 0 {
			if ce, ok := calcerrors.FromResult(outcome.Result, i+1, line); ok {
				fmt.Fprint(ctx.Err, reporter.FormatError(ce))
			}
		}

		if !outcome.Result.Ok() || len(outcome.Diagnostics) > 0 {
			failed++
		} else if ctx.Verbose {
			fmt.Fprintf(ctx.Out, "%s:%d: %d\n", cmd.File, i+1, outcome.Result.Value)
		}
	}

	duration := formatDuration(time.Since(startTime))
	if failed > 0 {
		fmt.Fprintln(ctx.Err, color.RedString("%d of %d expressions failed after %s", failed, checked, duration))
		return ErrEvaluationFailed
	}
	fmt.Fprintln(ctx.Out, color.GreenString("Checked %d expressions in %s", checked, duration))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
