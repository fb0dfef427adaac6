package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
)

// TextDocument represents a document open in the editor. The text held
// here is the single source of truth for position/offset conversion.
type TextDocument struct {
	URI     string
	Text    string
	Version int
}

// OffsetAt converts an LSP position (UTF-16 character units) into a
// character offset into the document text.
func (d *TextDocument) OffsetAt(pos protocol.Position) int {
	offset := 0
	line := 0
	col := 0
	for _, r := range d.Text {
		if line > pos.Line {
			break
		}
		if line == pos.Line {
			// A column past the line end clamps to the line end.
			if col >= pos.Character || r == '\n' {
				break
			}
			col += utf16.RuneLen(r)
		}
		if r == '\n' {
			line++
		}
		offset++
	}
	return offset
}

// PositionAt converts a character offset into an LSP position.
func (d *TextDocument) PositionAt(offset int) protocol.Position {
	line := 0
	col := 0
	i := 0
	for _, r := range d.Text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col += utf16.RuneLen(r)
		}
		i++
	}
	return protocol.Position{Line: line, Character: col}
}

// TextAt returns the document text covered by the given range.
func (d *TextDocument) TextAt(rng protocol.Range) string {
	start := d.byteIndexAt(rng.Start)
	end := d.byteIndexAt(rng.End)
	if start > end {
		return ""
	}
	return d.Text[start:end]
}

// LineCount returns the number of lines in the document.
func (d *TextDocument) LineCount() int {
	return strings.Count(d.Text, "\n") + 1
}

// byteIndexAt resolves an LSP position to a byte index into Text.
func (d *TextDocument) byteIndexAt(pos protocol.Position) int {
	line := 0
	col := 0
	for i, r := range d.Text {
		if line > pos.Line {
			return i
		}
		if line == pos.Line && (col >= pos.Character || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			col = 0
		} else if line == pos.Line {
			col += utf16.RuneLen(r)
		}
	}
	return len(d.Text)
}

// DocumentManager manages text documents
type DocumentManager struct {
	documents map[string]*TextDocument
	mu        sync.RWMutex
}

// NewDocumentManager creates a new document manager
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*TextDocument),
	}
}

// OpenDocument adds or updates a document
func (m *DocumentManager) OpenDocument(uri string, text string, version int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = &TextDocument{
		URI:     uri,
		Text:    text,
		Version: version,
	}
}

// UpdateDocument updates an existing document, creating it if the editor
// sent a change for a document we never saw opened
func (m *DocumentManager) UpdateDocument(uri string, text string, version int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, ok := m.documents[uri]; ok {
		doc.Text = text
		doc.Version = version
		return
	}
	m.documents[uri] = &TextDocument{
		URI:     uri,
		Text:    text,
		Version: version,
	}
}

// CloseDocument removes a document
func (m *DocumentManager) CloseDocument(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.documents, uri)
}

// GetDocument returns a document by URI
func (m *DocumentManager) GetDocument(uri string) (*TextDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[uri]
	return doc, ok
}
