package lsp

import (
	"testing"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetAt(t *testing.T) {
	doc := &TextDocument{Text: "first\nsecond line\nthird\n"}

	testCases := []struct {
		name     string
		pos      protocol.Position
		expected int
	}{
		{name: "start of document", pos: protocol.Position{Line: 0, Character: 0}, expected: 0},
		{name: "middle of first line", pos: protocol.Position{Line: 0, Character: 3}, expected: 3},
		{name: "start of second line", pos: protocol.Position{Line: 1, Character: 0}, expected: 6},
		{name: "middle of second line", pos: protocol.Position{Line: 1, Character: 7}, expected: 13},
		{name: "column past line end stops at newline", pos: protocol.Position{Line: 0, Character: 99}, expected: 5},
		{name: "line past document end", pos: protocol.Position{Line: 99, Character: 0}, expected: 24},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, doc.OffsetAt(tc.pos))
		})
	}
}

func TestOffsetAtSurrogatePair(t *testing.T) {
	// 𝔸 is one rune but two UTF-16 units, which is what LSP columns count.
	doc := &TextDocument{Text: "a𝔸b\n"}
	assert.Equal(t, 1, doc.OffsetAt(protocol.Position{Line: 0, Character: 1}))
	assert.Equal(t, 2, doc.OffsetAt(protocol.Position{Line: 0, Character: 3}))
}

func TestPositionAt(t *testing.T) {
	doc := &TextDocument{Text: "first\nsecond\n"}

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, doc.PositionAt(0))
	assert.Equal(t, protocol.Position{Line: 0, Character: 4}, doc.PositionAt(4))
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, doc.PositionAt(6))
	assert.Equal(t, protocol.Position{Line: 1, Character: 3}, doc.PositionAt(9))
}

func TestTextAt(t *testing.T) {
	doc := &TextDocument{Text: "class Main {\n    var count = 0;\n}\n"}

	rng := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	assert.Equal(t, "count", doc.TextAt(rng))

	multiline := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 1, Character: 4},
	}
	assert.Equal(t, "Main {\n    ", doc.TextAt(multiline))

	inverted := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 0, Character: 0},
	}
	assert.Equal(t, "", doc.TextAt(inverted))
}

func TestDocumentManager(t *testing.T) {
	manager := NewDocumentManager()

	_, ok := manager.GetDocument("file:///a.hx")
	assert.False(t, ok)

	manager.OpenDocument("file:///a.hx", "class A {}", 1)
	doc, ok := manager.GetDocument("file:///a.hx")
	require.True(t, ok)
	assert.Equal(t, "class A {}", doc.Text)
	assert.Equal(t, 1, doc.Version)

	manager.UpdateDocument("file:///a.hx", "class A { }", 2)
	doc, _ = manager.GetDocument("file:///a.hx")
	assert.Equal(t, "class A { }", doc.Text)
	assert.Equal(t, 2, doc.Version)

	// An update for a document we never saw opened still registers it.
	manager.UpdateDocument("file:///b.hx", "class B {}", 1)
	_, ok = manager.GetDocument("file:///b.hx")
	assert.True(t, ok)

	manager.CloseDocument("file:///a.hx")
	_, ok = manager.GetDocument("file:///a.hx")
	assert.False(t, ok)
}
