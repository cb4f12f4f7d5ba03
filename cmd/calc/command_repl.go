package main

import "calc/repl"

// ReplCmd represents the repl command
type ReplCmd struct {
	TUI bool `help:"Use the full-screen interface" name:"tui"`
}

// Run starts the line-oriented REPL, or the TUI when requested here or in
// the configuration
func (cmd *ReplCmd) Run(ctx *Context) error {
	if cmd.TUI || ctx.Config.TUI {
		return repl.RunTUI(ctx.replOptions())
	}
	return repl.Start(ctx.In, ctx.Out, ctx.replOptions())
}
