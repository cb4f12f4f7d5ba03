// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"calc/internal/config"
	"calc/repl"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

// ErrEvaluationFailed is returned when a command evaluated input that had
// diagnostics or no value.
var ErrEvaluationFailed = errors.New("evaluation failed")

// Context represents the global context for commands
type Context struct {
	Config  *config.Config
	Verbose bool
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
}

func (c *Context) replOptions() repl.Options {
	return repl.Options{
		Prompt: c.Config.Prompt,
		Parser: c.Config.ParserOptions(),
	}
}

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:"calc.yaml" type:"path"`
	NoColor bool   `help:"Disable colored output"`
	Verbose bool   `help:"Enable verbose output" short:"v"`

	Repl    ReplCmd    `cmd:"" default:"1" help:"Start the interactive evaluator (default)"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate a single expression"`
	Check   CheckCmd   `cmd:"" help:"Evaluate every line of a file and report problems"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Out, "calc v%s\n", version)
	return nil
}

func configureLogging(cfg *config.Config, verbose bool) {
	verbosity := cfg.Log.Verbosity
	if verbose && verbosity < 2 {
		verbosity = 2
	}
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(verbosity, path)
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("calc"),
		kong.Description("Evaluate unsigned 64-bit addition expressions."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if CLI.NoColor || !cfg.ColorEnabled() {
		color.NoColor = true
	}
	configureLogging(cfg, CLI.Verbose)

	appCtx := &Context{
		Config:  cfg,
		Verbose: CLI.Verbose,
		In:      os.Stdin,
		Out:     color.Output,
		Err:     color.Error,
	}

	if err := kctx.Run(appCtx); err != nil {
		if !errors.Is(err, ErrEvaluationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
