package haxe

import (
	"context"
	"encoding/json"

	"github.com/hxkit/haxe-lsp/internal/lsp"
)

// CommandProvider contributes compiler lifecycle commands.
type CommandProvider struct {
	client *Client
}

// NewCommandProvider creates the compiler command provider.
func NewCommandProvider(client *Client) *CommandProvider {
	return &CommandProvider{client: client}
}

// GetCommands implements lsp.CommandProvider.
func (p *CommandProvider) GetCommands(ctx context.Context) map[string]lsp.CommandFunc {
	return map[string]lsp.CommandFunc{
		"haxe/restartServer": p.restartServer,
	}
}

func (p *CommandProvider) restartServer(ctx context.Context, args *json.RawMessage) (interface{}, error) {
	if err := p.client.Restart(ctx); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"message": "compiler server restarted",
	}, nil
}
