package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/mgomes/escopo/escopo"
)

const lspName = "escopo-lsp"

var lspLog = commonlog.GetLogger("escopo.lsp")

func newLSPCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve the language server protocol over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := global.loadSettings(scriptDir(""))
			if err != nil {
				return err
			}
			server, err := newLSPServer(settings.Interpreter())
			if err != nil {
				return err
			}
			return server.server.RunStdio()
		},
	}
}

// lspServer keeps open documents and answers editor requests from a fresh
// analysis of the document text.
type lspServer struct {
	cfg escopo.Config
	kw  escopo.Keywords

	mu   sync.Mutex
	docs map[string]string

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

func newLSPServer(cfg escopo.Config) (*lspServer, error) {
	probe, err := escopo.NewInterpreter(cfg, nil)
	if err != nil {
		return nil, err
	}
	s := &lspServer{
		cfg:     probe.Config(),
		kw:      probe.Keywords(),
		docs:    make(map[string]string),
		version: "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}
	s.server = glspserver.NewServer(&s.handler, lspName, false)
	return s, nil
}

func (s *lspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	lspLog.Info("initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *lspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *lspServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *lspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *lspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	s.mu.Lock()
	s.docs[string(uri)] = text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, text)
	return nil
}

func (s *lspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	last := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.docs[string(uri)] = whole.Text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, whole.Text)
	return nil
}

func (s *lspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, string(uri))
	s.mu.Unlock()

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *lspServer) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[string(uri)]
	return text, ok
}

func (s *lspServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.complete(text, params.Position), nil
}

func (s *lspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.hover(text, params.Position), nil
}

func (s *lspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diagnostics := s.diagnostics(text)
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *lspServer) diagnostics(text string) []protocol.Diagnostic {
	report, err := escopo.Analyze(text, s.cfg)
	if err != nil {
		lspLog.Errorf("analyze: %s", err)
		return []protocol.Diagnostic{}
	}

	out := make([]protocol.Diagnostic, 0, len(report.Diagnostics))
	source := lspName
	for _, diag := range report.Diagnostics {
		severity := protocol.DiagnosticSeverityError
		switch diag.Kind {
		case escopo.DiagUnrecognized, escopo.DiagOutsideBlock, escopo.DiagUnclosedBlock:
			severity = protocol.DiagnosticSeverityWarning
		}
		code := protocol.IntegerOrString{Value: diag.Kind.String()}
		out = append(out, protocol.Diagnostic{
			Range:    diagnosticRange(text, diag),
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  diag.Message,
		})
	}
	return out
}

// diagnosticRange covers the span of diag on its line.
func diagnosticRange(text string, diag *escopo.Diagnostic) protocol.Range {
	line := max(diag.Pos.Line-1, 0)
	start, end, ok := diag.Span(text)
	if !ok {
		start, end = 1, 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(start - 1)},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(end - 1)},
	}
}

// complete offers keywords and the identifiers visible at the cursor line.
func (s *lspServer) complete(text string, pos protocol.Position) []protocol.CompletionItem {
	prefix := extractPrefix(text, pos)

	var items []protocol.CompletionItem
	for _, kw := range s.kw.List() {
		if !strings.HasPrefix(strings.ToLower(kw), strings.ToLower(prefix)) {
			continue
		}
		kind := protocol.CompletionItemKindKeyword
		detail := "keyword"
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kind, Detail: &detail})
	}

	visible := s.visibleAt(text, int(pos.Line))
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name < visible[j].Name })
	for _, tok := range visible {
		if !strings.HasPrefix(strings.ToLower(tok.Name), strings.ToLower(prefix)) {
			continue
		}
		kind := protocol.CompletionItemKindVariable
		detail := fmt.Sprintf("%s = %s", tok.Type, tok.Value)
		items = append(items, protocol.CompletionItem{Label: tok.Name, Kind: &kind, Detail: &detail})
	}
	return items
}

// visibleAt runs the lines before the zero-based line and returns what is
// in scope there.
func (s *lspServer) visibleAt(text string, line int) []escopo.Token {
	in, err := escopo.NewInterpreter(s.cfg, nil)
	if err != nil {
		return nil
	}
	lines := escopo.SplitLines(text)
	for i := 0; i < line && i < len(lines); i++ {
		in.Exec(lines[i])
	}
	return in.Visible()
}

func (s *lspServer) hover(text string, pos protocol.Position) *protocol.Hover {
	word := extractWord(text, pos)
	if word == "" {
		return nil
	}

	var value string
	switch word {
	case s.kw.Block:
		value = fmt.Sprintf("**%s** `label`\n\nOpens a block with a new scope.", word)
	case s.kw.End:
		value = fmt.Sprintf("**%s** `label`\n\nCloses the innermost block when the label matches.", word)
	case s.kw.Number, s.kw.String:
		value = fmt.Sprintf("**%s** `name [= literal], ...`\n\nDeclares variables in the current block.", word)
	case s.kw.Print:
		value = fmt.Sprintf("**%s** `name`\n\nPrints the value visible from the current block.", word)
	default:
		in, err := escopo.NewInterpreter(s.cfg, nil)
		if err != nil {
			return nil
		}
		lines := escopo.SplitLines(text)
		for i := 0; i <= int(pos.Line) && i < len(lines); i++ {
			in.Exec(lines[i])
		}
		tok, ok := in.Lookup(word)
		if !ok {
			return nil
		}
		block, _ := in.CurrentBlock()
		value = fmt.Sprintf("**%s** `%s`\n\n= `%s` (declared on line %d, visible in %s)", tok.Name, tok.Type, tok.Value, tok.Line, block)
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}
}

// extractPrefix returns the word fragment before the cursor for completion.
func extractPrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	runes := []rune(lines[pos.Line])
	col := min(int(pos.Character), len(runes))

	start := col
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	return string(runes[start:col])
}

// extractWord returns the full identifier under the cursor.
func extractWord(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	runes := []rune(lines[pos.Line])
	col := min(int(pos.Character), len(runes))

	start := col
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := col
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func boolPtr(b bool) *bool {
	return &b
}
