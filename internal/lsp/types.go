package lsp

import (
	"context"
	"encoding/json"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
)

// HoverProvider is an interface for providing hover information
type HoverProvider interface {
	// GetHover returns hover information for the given parameters, or nil
	// when the provider has nothing to show at that position
	GetHover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
}

// CommandFunc handles a custom server command
type CommandFunc func(ctx context.Context, args *json.RawMessage) (interface{}, error)

// CommandProvider is an interface for contributing custom commands
type CommandProvider interface {
	// GetCommands returns the commands this provider handles, keyed by
	// the JSON-RPC method name
	GetCommands(ctx context.Context) map[string]CommandFunc
}
