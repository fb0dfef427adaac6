package lsp

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"gitlab.com/tozd/go/errors"
)

// codeRequestFailed is the LSP error code for a request that was valid
// but could not be fulfilled.
const codeRequestFailed = -32803

// Server represents the LSP server
type Server struct {
	rootPath         string
	conn             *jsonrpc2.Conn
	hoverProviders   []HoverProvider
	commands         map[string]CommandFunc
	commandsMu       sync.RWMutex
	initializedHooks []func(ctx context.Context)
	documentManager  *DocumentManager
	logger           zerolog.Logger
}

// NewServer creates a new LSP server
func NewServer(logger zerolog.Logger) *Server {
	return &Server{
		hoverProviders:  make([]HoverProvider, 0),
		commands:        make(map[string]CommandFunc),
		documentManager: NewDocumentManager(),
		logger:          logger,
	}
}

// RegisterHoverProvider registers a hover provider with the server
func (s *Server) RegisterHoverProvider(provider HoverProvider) {
	s.hoverProviders = append(s.hoverProviders, provider)
}

// RegisterCommandProvider registers all commands of a provider
func (s *Server) RegisterCommandProvider(provider CommandProvider) {
	s.commandsMu.Lock()
	defer s.commandsMu.Unlock()
	for method, fn := range provider.GetCommands(context.Background()) {
		s.commands[method] = fn
	}
}

// RegisterInitializedHook adds a function that runs once the client has
// sent the initialized notification
func (s *Server) RegisterInitializedHook(hook func(ctx context.Context)) {
	s.initializedHooks = append(s.initializedHooks, hook)
}

// RootPath returns the workspace root resolved during initialize
func (s *Server) RootPath() string {
	return s.rootPath
}

// DocumentManager returns the server's document manager
func (s *Server) DocumentManager() *DocumentManager {
	return s.documentManager
}

// Start runs the server on the given streams until the connection closes
func (s *Server) Start(in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewBufferedStream(rwc{in, out}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(s.handle))
	s.conn = conn

	<-conn.DisconnectNotify()
	return nil
}

// rwc combines a reader and writer into a single ReadWriteCloser
type rwc struct {
	io.Reader
	io.Writer
}

// Close implements io.Closer
func (rwc) Close() error {
	return nil
}

// handle processes incoming JSON-RPC requests and notifications
func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	ctx = s.logger.WithContext(ctx)

	// Handle exit notification after shutdown
	if req.Method == "exit" {
		s.logger.Info().Msg("received exit notification, exiting")
		if err := conn.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("error closing connection")
		}
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		var params protocol.InitializeParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeParseError, Message: err.Error()}
		}
		return s.initialize(ctx, &params), nil

	case "initialized":
		for _, hook := range s.initializedHooks {
			go hook(s.logger.WithContext(context.Background()))
		}
		return nil, nil

	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		s.documentManager.OpenDocument(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
		return nil, nil

	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		if len(params.ContentChanges) > 0 {
			s.documentManager.UpdateDocument(params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text, params.TextDocument.Version)
		}
		return nil, nil

	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		s.documentManager.CloseDocument(params.TextDocument.URI)
		return nil, nil

	case "textDocument/hover":
		var params protocol.HoverParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeParseError, Message: err.Error()}
		}
		hover, err := s.hover(ctx, &params)
		if err != nil {
			return nil, rpcError(err)
		}
		return hover, nil

	case "shutdown":
		s.logger.Info().Msg("received shutdown request, waiting for exit notification")
		return nil, nil

	default:
		s.commandsMu.RLock()
		command, ok := s.commands[req.Method]
		s.commandsMu.RUnlock()
		if ok {
			return command(ctx, req.Params)
		}

		// Check if this is a notification (no ID)
		if req.ID == (jsonrpc2.ID{}) {
			// This is a notification, no response needed
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "Method not implemented: " + req.Method}
	}
}

// initialize handles the LSP initialize request
func (s *Server) initialize(ctx context.Context, params *protocol.InitializeParams) interface{} {
	// Extract root path from params
	s.extractRootPath(params)

	// Define server capabilities
	return map[string]interface{}{
		"capabilities": map[string]interface{}{
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    1, // Full sync
			},
			"hoverProvider": true,
		},
	}
}

// extractRootPath extracts the root path from the initialize params
func (s *Server) extractRootPath(params *protocol.InitializeParams) {
	// Try to get from RootPath
	if params.RootPath != "" {
		s.rootPath = params.RootPath
		return
	}

	// Try to get from RootURI
	if params.RootURI != "" {
		s.rootPath = strings.TrimPrefix(params.RootURI, "file://")
		return
	}

	// Try to get from WorkspaceFolders
	if len(params.WorkspaceFolders) > 0 {
		s.rootPath = strings.TrimPrefix(params.WorkspaceFolders[0].URI, "file://")
		return
	}

	// Fall back to current directory
	s.rootPath, _ = os.Getwd()
}

// rpcError maps a typed rejection onto the wire error format, keeping
// the stable error code available to the client in the data field.
func rpcError(err error) error {
	var lspErr *protocol.LspError
	if errors.As(err, &lspErr) {
		data, marshalErr := json.Marshal(lspErr)
		if marshalErr != nil {
			return &jsonrpc2.Error{Code: codeRequestFailed, Message: lspErr.Message}
		}
		raw := json.RawMessage(data)
		return &jsonrpc2.Error{Code: codeRequestFailed, Message: lspErr.Message, Data: &raw}
	}
	return err
}
