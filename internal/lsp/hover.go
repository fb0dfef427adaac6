package lsp

import (
	"context"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/rs/zerolog"
)

// hover handles textDocument/hover requests
func (s *Server) hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	// Try each hover provider until one returns a result
	for _, provider := range s.hoverProviders {
		hover, err := provider.GetHover(ctx, params)
		if err != nil {
			return nil, err
		}
		if hover != nil {
			return hover, nil
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("uri", params.TextDocument.URI).
		Int("line", params.Position.Line).
		Int("character", params.Position.Character).
		Msg("no hover information available")

	return nil, nil
}
