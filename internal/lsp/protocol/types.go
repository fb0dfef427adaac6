package protocol

// Position represents a zero-based line/character position in a document.
// Character offsets count UTF-16 code units, as mandated by the LSP.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a span between two positions in a document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location represents a position inside a resource identified by URI
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// TextDocumentIdentifier identifies a document by its URI
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}
