// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"calc/internal/config"
	"calc/internal/lsp"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "calc" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler
)

var CLI struct {
	Config string `help:"Configuration file path" default:"calc.yaml" type:"path"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("calc-lsp"),
		kong.Description("Language server for .calc files, speaking LSP over stdio."),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		// stdout belongs to the protocol
		os.Stderr.WriteString("calc-lsp: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(max(cfg.Log.Verbosity, 1), logPath)
	log := commonlog.GetLogger("calc.lsp")

	calcHandler := lsp.NewCalcHandler(cfg.ParserOptions())

	handler = protocol.Handler{
		Initialize:                     calcHandler.Initialize,
		Initialized:                    calcHandler.Initialized,
		Shutdown:                       calcHandler.Shutdown,
		SetTrace:                       calcHandler.SetTrace,
		TextDocumentDidOpen:            calcHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           calcHandler.TextDocumentDidClose,
		TextDocumentDidChange:          calcHandler.TextDocumentDidChange,
		TextDocumentHover:              calcHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: calcHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server v%s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
