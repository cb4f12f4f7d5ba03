package main

import (
	"fmt"

	"calc/grammar"
	"calc/repl"

	"github.com/fatih/color"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Expr   string `arg:"" help:"Expression to evaluate"`
	Strict bool   `help:"Stop at the first syntax error instead of repairing the input"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	if cmd.Strict {
		return cmd.runStrict(ctx)
	}

	outcome := repl.Evaluate(cmd.Expr, ctx.Config.ParserOptions())
	for _, d := range outcome.Diagnostics {
		fmt.Fprintln(ctx.Err, color.RedString(d.String()))
	}
	if !outcome.Result.Ok() {
		fmt.Fprintln(ctx.Err, color.YellowString(outcome.Summary()))
		if ctx.Verbose && outcome.Result != nil {
			fmt.Fprintf(ctx.Err, "cause: %v\n", outcome.Result.Err)
		}
		return ErrEvaluationFailed
	}
	fmt.Fprintln(ctx.Out, outcome.Result.Value)
	return nil
}

func (cmd *EvalCmd) runStrict(ctx *Context) error {
	expr, err := grammar.ParseString(cmd.Expr)
	if err != nil {
		fmt.Fprint(ctx.Err, grammar.FormatParseError(cmd.Expr, err))
		return ErrEvaluationFailed
	}
	if ctx.Verbose {
		fmt.Fprintf(ctx.Err, "parsed: %s\n", expr)
	}

	v, err := expr.Eval()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	fmt.Fprintln(ctx.Out, v)
	return nil
}
