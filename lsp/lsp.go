package lsp

import (
	"net/url"

	"concord/driver"
	"concord/syntax"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var (
	handler protocol.Handler
	sources = map[protocol.DocumentUri]string{}
	results = map[protocol.DocumentUri]*driver.Result{}
)

func Run() error {
	commonlog.Configure(2, nil)

	handler = protocol.Handler{
		Initialize:            initialize,
		Shutdown:              shutdown,
		SetTrace:              setTrace,
		TextDocumentDidOpen:   didOpen,
		TextDocumentDidChange: didChange,
		TextDocumentHover:     hover,
	}

	server := server.NewServer(&handler, "concord", false)

	return server.RunStdio()
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()

	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}

	capabilities.HoverProvider = true

	return protocol.InitializeResult{Capabilities: capabilities}, nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func didOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	sources[params.TextDocument.URI] = params.TextDocument.Text

	update(context, params.TextDocument.URI)

	return nil
}

func didChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	source := params.ContentChanges[0].(protocol.TextDocumentContentChangeEventWhole).Text
	sources[params.TextDocument.URI] = source

	update(context, params.TextDocument.URI)

	return nil
}

func update(context *glsp.Context, uri protocol.DocumentUri) {
	source := sources[uri]

	result := driver.Check(path(uri), source)
	results[uri] = result

	diagnostics := []protocol.Diagnostic{}
	for _, diagnostic := range result.Diagnostics {
		diagnosticSeverity := protocol.DiagnosticSeverityError
		diagnosticSource := "concord"

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Severity: &diagnosticSeverity,
			Range:    convertSpan(diagnostic.Span),
			Message:  diagnostic.Message,
			Source:   &diagnosticSource,
		})
	}

	context.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func hover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	result, ok := results[params.TextDocument.URI]
	if !ok || result.Failed() {
		return nil, nil
	}

	source := sources[params.TextDocument.URI]

	entry, ok := result.TypeAt(index(source, params.Position))
	if !ok {
		return nil, nil
	}

	hoverRange := convertSpan(entry.Span)

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```\n" + entry.Span.Source + " :: " + entry.Type.String() + "\n```",
		},
		Range: &hoverRange,
	}, nil
}

func path(uri protocol.DocumentUri) string {
	parsed, err := url.Parse(string(uri))
	if err != nil {
		return string(uri)
	}

	return parsed.Path
}

// index converts an LSP position (zero-based line and character) into a byte
// offset into source.
func index(source string, position protocol.Position) int {
	line := 0
	for i := 0; i < len(source); i++ {
		if line == int(position.Line) {
			return i + int(position.Character)
		}

		if source[i] == '\n' {
			line++
		}
	}

	return len(source)
}

func convertSpan(span syntax.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(span.Start.Line - 1),
			Character: uint32(span.Start.Column - 1),
		},
		End: protocol.Position{
			Line:      uint32(span.End.Line - 1),
			Character: uint32(span.End.Column),
		},
	}
}
