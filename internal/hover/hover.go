// Package hover implements the textDocument/hover feature on top of the
// compiler's display service. It bridges two generations of that
// service: the structured JSON protocol and the legacy XML-over-text
// protocol, both rendered into the same markdown shape.
package hover

import (
	"context"
	"fmt"

	"github.com/hxkit/haxe-lsp/internal/haxe"
	"github.com/hxkit/haxe-lsp/internal/lsp"
	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/hxkit/haxe-lsp/internal/uri"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DocumentationSource supplies fallback documentation for metadata tags
// and compile-time defines whose occurrences carry no doc text.
type DocumentationSource interface {
	MetadataDoc(name string) (string, bool)
	DefineDoc(name string) (string, bool)
}

// Provider implements hover requests against the compiler bridge.
// It holds no state across requests: the capability table and the
// document store are read fresh every call.
type Provider struct {
	documents *lsp.DocumentManager
	client    haxe.DisplayClient
	docs      DocumentationSource
}

// NewProvider creates a hover provider. docs may be nil.
func NewProvider(documents *lsp.DocumentManager, client haxe.DisplayClient, docs DocumentationSource) *Provider {
	return &Provider{
		documents: documents,
		client:    client,
		docs:      docs,
	}
}

// hoverStrategy is one generation of the display protocol. The strategy
// is chosen per request so a compiler restart changes the path taken
// without any stale cached decision.
type hoverStrategy interface {
	resolveHover(ctx context.Context, doc *lsp.TextDocument, offset int) (*protocol.Hover, error)
}

// GetHover implements lsp.HoverProvider.
func (p *Provider) GetHover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	docURI := params.TextDocument.URI
	if !uri.IsFile(docURI) {
		return nil, protocol.NewLspError(protocol.CodeNotAFile, fmt.Sprintf("unable to provide hover for non-file URI %q", docURI))
	}

	doc, ok := p.documents.GetDocument(docURI)
	if !ok {
		return nil, protocol.NewLspError(protocol.CodeDocumentNotFound, fmt.Sprintf("document %q not found", docURI))
	}

	offset := doc.OffsetAt(params.Position)

	var strategy hoverStrategy
	if p.client.Supports(haxe.MethodDisplayHover) {
		strategy = &jsonStrategy{client: p.client, docs: p.docs}
	} else {
		strategy = &legacyStrategy{client: p.client}
	}

	zerolog.Ctx(ctx).Debug().
		Str("uri", docURI).
		Int("offset", offset).
		Bool("structured", p.client.Supports(haxe.MethodDisplayHover)).
		Msg("resolving hover")

	return strategy.resolveHover(ctx, doc, offset)
}

// jsonStrategy resolves hovers through the structured display protocol.
type jsonStrategy struct {
	client haxe.DisplayClient
	docs   DocumentationSource
}

func (s *jsonStrategy) resolveHover(ctx context.Context, doc *lsp.TextDocument, offset int) (*protocol.Hover, error) {
	occ, err := s.client.CallHover(ctx, haxe.HoverRequestArgs{
		File:     uri.ToFsPath(doc.URI),
		Contents: doc.Text,
		Offset:   offset,
	})
	if err != nil {
		if errors.Is(err, haxe.ErrCancelled) || errors.Is(err, context.Canceled) {
			return nil, nil
		}
		return nil, err
	}
	if occ == nil {
		return nil, nil
	}

	rangeText := ""
	if occ.Range != nil {
		rangeText = doc.TextAt(*occ.Range)
	}

	contents := render(occ, rangeText)
	documentation := occ.Item.Documentation()
	if documentation == "" {
		documentation = s.fallbackDocumentation(&occ.Item)
	}

	return Compose(contents, documentation, occ.Range), nil
}

func (s *jsonStrategy) fallbackDocumentation(item *haxe.DisplayItem) string {
	if s.docs == nil {
		return ""
	}
	switch item.Kind {
	case haxe.ItemMetadata:
		if args, err := item.Metadata(); err == nil {
			if doc, ok := s.docs.MetadataDoc(args.Name); ok {
				return doc
			}
		}
	case haxe.ItemDefine:
		if args, err := item.Define(); err == nil {
			if doc, ok := s.docs.DefineDoc(args.Name); ok {
				return doc
			}
		}
	}
	return ""
}
