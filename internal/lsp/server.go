// Package lsp serves the analysis core over the Language Server Protocol.
package lsp

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/lets-cli/lets-ls/internal/features"
	"github.com/lets-cli/lets-ls/internal/workspace"
)

// ServerName is reported to clients during initialization
const ServerName = "lets-ls"

// Config wires the server to its collaborators
type Config struct {
	Version   string
	Store     *workspace.Store
	Completer *features.Completer
	Definer   *features.Definer
	Logger    *slog.Logger
}

// Server handles LSP requests for lets configuration files
type Server struct {
	version   string
	store     *workspace.Store
	completer *features.Completer
	definer   *features.Definer
	logger    *slog.Logger

	exitOnce sync.Once
	exited   chan struct{}

	mu       sync.Mutex
	shutdown bool
}

// NewServer creates a server
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := config.Store
	if store == nil {
		store = workspace.NewStore()
	}
	return &Server{
		version:   config.Version,
		store:     store,
		completer: config.Completer,
		definer:   config.Definer,
		logger:    logger,
		exited:    make(chan struct{}),
	}
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if params != nil && params.ClientInfo != nil {
		s.logger.Info("initializing", "client", params.ClientInfo.Name, "client_version", params.ClientInfo.Version)
	} else {
		s.logger.Info("initializing")
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{" ", "-", "[", ","},
			},
			DefinitionProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	s.logger.Debug("client initialized")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.logger.Info("shutting down")
	return nil
}

// Exit stops Serve. It is safe to call more than once.
func (s *Server) Exit(ctx context.Context) error {
	s.exitOnce.Do(func() {
		s.mu.Lock()
		clean := s.shutdown
		s.mu.Unlock()
		s.logger.Info("exiting", "after_shutdown", clean)
		close(s.exited)
	})
	return nil
}

// Exited is closed once the client sent exit
func (s *Server) Exited() <-chan struct{} {
	return s.exited
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Debug("document opened", "uri", params.TextDocument.URI)
	s.store.Open(string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

// DidChange keeps the last full-text change; the server only asks for full sync
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	lastChange := params.ContentChanges[len(params.ContentChanges)-1]
	s.store.Update(string(params.TextDocument.URI), lastChange.Text)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Debug("document closed", "uri", params.TextDocument.URI)
	s.store.Close(string(params.TextDocument.URI))
	return nil
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	list := &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}

	req, ok := s.request(params.TextDocument.URI, params.Position)
	if !ok || s.completer == nil {
		return list, nil
	}

	candidates, err := s.completer.Complete(req)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		item := protocol.CompletionItem{
			Label: c.Label,
			Kind:  protocol.CompletionItemKindKeyword,
		}
		if c.Kind == features.KindFile {
			item.Kind = protocol.CompletionItemKindFile
		}
		list.Items = append(list.Items, item)
	}

	s.logger.Debug("completion", "uri", params.TextDocument.URI, "items", len(list.Items))
	return list, nil
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	req, ok := s.request(params.TextDocument.URI, params.Position)
	if !ok || s.definer == nil {
		return nil, nil
	}

	location, found, err := s.definer.Definition(req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return []protocol.Location{{
		URI: uri.File(location.Path),
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(location.Line)},
			End:   protocol.Position{Line: uint32(location.Line)},
		},
	}}, nil
}

// request builds a feature request from the stored snapshot of a document
func (s *Server) request(docURI protocol.DocumentURI, pos protocol.Position) (features.Request, bool) {
	text, ok := s.store.Get(string(docURI))
	if !ok {
		s.logger.Debug("request for unknown document", "uri", docURI)
		return features.Request{}, false
	}

	return features.Request{
		Path:     documentPath(docURI),
		Text:     text,
		Position: toParserPosition(text, pos),
	}, true
}

// documentPath returns the filesystem path of a file:// URI, or "" for
// documents that do not live on disk
func documentPath(docURI protocol.DocumentURI) string {
	if !strings.HasPrefix(string(docURI), uri.FileScheme+"://") {
		return ""
	}
	return uri.URI(docURI).Filename()
}
