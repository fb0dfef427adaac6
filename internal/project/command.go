package project

import (
	"context"
	"encoding/json"

	"github.com/hxkit/haxe-lsp/internal/lsp"
	"gitlab.com/tozd/go/errors"
)

// CommandProvider contributes project configuration commands to the
// server.
type CommandProvider struct {
	projectRoot string
	// onVersionChange runs after the pinned version was written, e.g.
	// to restart the compiler with the new toolchain.
	onVersionChange func(ctx context.Context)
}

// NewCommandProvider creates a command provider for the workspace.
func NewCommandProvider(projectRoot string, onVersionChange func(ctx context.Context)) *CommandProvider {
	return &CommandProvider{
		projectRoot:     projectRoot,
		onVersionChange: onVersionChange,
	}
}

// GetCommands implements lsp.CommandProvider.
func (p *CommandProvider) GetCommands(ctx context.Context) map[string]lsp.CommandFunc {
	return map[string]lsp.CommandFunc{
		"haxe/selectVersion": p.selectVersion,
	}
}

func (p *CommandProvider) selectVersion(ctx context.Context, args *json.RawMessage) (interface{}, error) {
	var params struct {
		Version string `json:"version"`
	}
	if args == nil {
		return nil, errors.New("missing arguments")
	}
	if err := json.Unmarshal(*args, &params); err != nil {
		return nil, err
	}

	if err := SetVersion(p.projectRoot, params.Version); err != nil {
		return nil, err
	}

	if p.onVersionChange != nil {
		go p.onVersionChange(context.WithoutCancel(ctx))
	}

	return map[string]interface{}{
		"version": params.Version,
	}, nil
}
