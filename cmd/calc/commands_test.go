package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"calc/internal/config"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func newTestContext(in string) (*Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Context{
		Config: config.Default(),
		In:     strings.NewReader(in),
		Out:    &out,
		Err:    &errOut,
	}, &out, &errOut
}

func TestEvalCmd(t *testing.T) {
	ctx, out, errOut := newTestContext("")

	require.NoError(t, (&EvalCmd{Expr: "(1+2)+3"}).Run(ctx))
	assert.Equal(t, "6\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestEvalCmdRepairedInput(t *testing.T) {
	ctx, out, errOut := newTestContext("")

	err := (&EvalCmd{Expr: "(1+2"}).Run(ctx)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "inserted ')'")
	assert.Contains(t, errOut.String(), "Unable to evaluate expression.")
}

func TestEvalCmdStrict(t *testing.T) {
	ctx, out, _ := newTestContext("")
	require.NoError(t, (&EvalCmd{Expr: "1 + (2 + 3)", Strict: true}).Run(ctx))
	assert.Equal(t, "6\n", out.String())

	ctx, _, errOut := newTestContext("")
	err := (&EvalCmd{Expr: "1+)", Strict: true}).Run(ctx)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.Contains(t, errOut.String(), "Syntax error at column")

	ctx, _, _ = newTestContext("")
	err = (&EvalCmd{Expr: "18446744073709551615+1", Strict: true}).Run(ctx)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.Contains(t, err.Error(), "overflow detected")
}

func TestCheckCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sums.calc")
	require.NoError(t, os.WriteFile(path, []byte("1+2\n\n(3+4)+5\n"), 0o644))

	ctx, out, errOut := newTestContext("")
	ctx.Verbose = true
	require.NoError(t, (&CheckCmd{File: path}).Run(ctx))
	assert.Contains(t, out.String(), path+":1: 3")
	assert.Contains(t, out.String(), path+":3: 12")
	assert.Contains(t, out.String(), "Checked 2 expressions")
	assert.Empty(t, errOut.String())
}

func TestCheckCmdReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.calc")
	require.NoError(t, os.WriteFile(path, []byte("1+2\n(1+2\n18446744073709551615+1\n"), 0o644))

	ctx, _, errOut := newTestContext("")
	err := (&CheckCmd{File: path}).Run(ctx)
	assert.ErrorIs(t, err, ErrEvaluationFailed)

	report := errOut.String()
	assert.Contains(t, report, "error[E0101]")
	assert.Contains(t, report, path+":2:5")
	assert.Contains(t, report, "error[E0200]")
	assert.Contains(t, report, "2 of 3 expressions failed")
}

func TestCheckCmdMissingFile(t *testing.T) {
	ctx, _, _ := newTestContext("")
	err := (&CheckCmd{File: filepath.Join(t.TempDir(), "nope.calc")}).Run(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEvaluationFailed)
}

func TestReplCmdReadsInput(t *testing.T) {
	ctx, out, _ := newTestContext("1+1\n")
	require.NoError(t, (&ReplCmd{}).Run(ctx))
	assert.Equal(t, ">>> Result: 2\n>>> \n", out.String())
}

func TestVersionCmd(t *testing.T) {
	ctx, out, _ := newTestContext("")
	require.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Equal(t, "calc v"+version+"\n", out.String())
}

func TestCLIDefaultsToRepl(t *testing.T) {
	parser, err := kong.New(&CLI, kong.Name("calc"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, "repl", kctx.Command())

	kctx, err = parser.Parse([]string{"eval", "--strict", "1+2"})
	require.NoError(t, err)
	assert.Equal(t, "eval <expr>", kctx.Command())
	assert.True(t, CLI.Eval.Strict)
	assert.Equal(t, "1+2", CLI.Eval.Expr)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500*time.Nanosecond))
	assert.Equal(t, "1.5ms", formatDuration(1500*time.Microsecond))
	assert.Equal(t, "2.00s", formatDuration(2*time.Second))
}
