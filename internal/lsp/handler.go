package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"calc/internal/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SemanticTokenTypes is the legend advertised to the client
var SemanticTokenTypes = []string{
	"number",
	"operator",
}

// SemanticTokenModifiers is empty: calc tokens carry no modifiers
var SemanticTokenModifiers = []string{}

// CalcHandler implements the LSP server handlers for .calc documents, where
// every line is an independent expression.
type CalcHandler struct {
	mu   sync.RWMutex
	docs map[string]*document
	opts parser.Options
	log  commonlog.Logger
}

// NewCalcHandler creates a handler that evaluates lines with opts
func NewCalcHandler(opts parser.Options) *CalcHandler {
	return &CalcHandler{
		docs: make(map[string]*document),
		opts: opts,
		log:  commonlog.GetLogger("calc.lsp"),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *CalcHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: ptrBool(true),
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *CalcHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *CalcHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

// SetTrace records the trace level requested by the client
func (h *CalcHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen evaluates a newly opened document and publishes its diagnostics
func (h *CalcHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.log.Debugf("opened %s", params.TextDocument.URI)

	doc := h.update(params.TextDocument.URI, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, collectDiagnostics(doc))
	return nil
}

// TextDocumentDidClose forgets a document
func (h *CalcHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	// Clear diagnostics left in the editor.
	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDidChange re-evaluates a document after an edit
func (h *CalcHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debugf("changed %s", uri)

	h.mu.RLock()
	text := ""
	if doc, ok := h.docs[uri]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	doc := h.update(uri, text)
	sendDiagnosticNotification(ctx, uri, collectDiagnostics(doc))
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *CalcHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc)),
	}, nil
}

// TextDocumentHover shows the value of the line under the cursor
func (h *CalcHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	l, ok := doc.line(int(params.Position.Line))
	if !ok || l.blank() {
		return nil, nil
	}

	var value string
	switch {
	case l.result.Ok():
		value = fmt.Sprintf("**Result:** `%d`", l.result.Value)
	case l.result != nil:
		value = fmt.Sprintf("Unable to evaluate expression: %v", l.result.Err)
	default:
		value = "Unable to evaluate expression."
	}

	line := params.Position.Line
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: utf16Column(l.source, len(l.source))},
		},
	}, nil
}

func (h *CalcHandler) update(uri protocol.DocumentUri, text string) *document {
	doc := newDocument(text, h.opts)

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	return doc
}

// getOrLoad returns an open document, reading it from disk when the client
// asks about a file it never opened.
func (h *CalcHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc = h.update(uri, string(content))
	sendDiagnosticNotification(ctx, uri, collectDiagnostics(doc))
	return doc, nil
}

// applyChange splices an incremental edit into text.
func applyChange(text string, c protocol.TextDocumentContentChangeEvent) string {
	if c.Range == nil {
		return c.Text
	}
	start := offsetOf(text, c.Range.Start)
	end := offsetOf(text, c.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + c.Text + text[end:]
}

func offsetOf(text string, pos protocol.Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}
	lineEnd := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	return offset + byteOffset(text[offset:lineEnd], pos.Character)
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
