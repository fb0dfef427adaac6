package hover

import (
	"strings"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/hxkit/haxe-lsp/internal/markdown"
)

// Compose assembles the final hover markdown from rendered contents, an
// optional raw documentation string and an optional source range.
//
// The documentation is normalized and trimmed first; if anything is
// left it gets a leading newline. The origin line, when present, is
// prepended before the documentation block. Sections are joined with a
// horizontal rule.
func Compose(contents HoverContents, documentation string, rng *protocol.Range) *protocol.Hover {
	doc := strings.TrimSpace(markdown.Normalize(documentation))
	if doc != "" {
		doc = "\n" + doc
	}
	if contents.Origin != "" {
		doc = "*" + contents.Origin + "*\n" + doc
	}

	sections := []string{contents.Definition}
	if doc != "" {
		sections = append(sections, doc)
	}
	sections = append(sections, contents.AdditionalSections...)

	hover := &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: strings.Join(sections, "\n---\n"),
		},
	}
	if rng != nil {
		r := *rng
		hover.Range = &r
	}
	return hover
}
