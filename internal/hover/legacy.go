package hover

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/hxkit/haxe-lsp/internal/haxe"
	"github.com/hxkit/haxe-lsp/internal/lsp"
	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/hxkit/haxe-lsp/internal/uri"
	"gitlab.com/tozd/go/errors"
)

// legacyStrategy resolves hovers through the old textual display
// protocol: a byte-addressed @type call answered with an ad-hoc XML
// fragment. All the quirks of that protocol live in this file.
type legacyStrategy struct {
	client haxe.DisplayClient
}

// legacyElement is the single-root XML fragment the legacy protocol
// returns. The optional d attribute carries documentation, p a
// serialized source position.
type legacyElement struct {
	XMLName xml.Name
	Doc     string `xml:"d,attr"`
	Pos     string `xml:"p,attr"`
	Text    string `xml:",chardata"`
}

func (s *legacyStrategy) resolveHover(ctx context.Context, doc *lsp.TextDocument, offset int) (*protocol.Hover, error) {
	fsPath := uri.ToFsPath(doc.URI)
	bytePos := haxe.CharOffsetToByteOffset(doc.Text, offset)

	raw, err := s.client.CallLegacy(ctx, fmt.Sprintf("%s@%d@type", fsPath, bytePos), doc.Text)
	if err != nil {
		if errors.Is(err, haxe.ErrCancelled) || errors.Is(err, context.Canceled) {
			return nil, nil
		}
		return nil, err
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "cancelled" {
		return nil, nil
	}

	element, err := parseLegacyResponse(trimmed)
	if err != nil {
		return nil, protocol.NewLspError(protocol.CodeInvalidXmlResponse, "invalid display response: "+err.Error())
	}

	if element.XMLName.Local == "metadata" {
		text := strings.TrimSpace(element.Text)
		if text == "" {
			return nil, protocol.NewLspError(protocol.CodeNoMetadataInformation, "no metadata information")
		}
		return Compose(HoverContents{Definition: text}, "", nil), nil
	}

	text := strings.TrimSpace(element.Text)
	if text == "" {
		return nil, protocol.NewLspError(protocol.CodeNoTypeInformation, "no type information")
	}

	contents := HoverContents{
		Definition: codeBlock(reprintLegacyType(text), languageHaxeType),
	}

	var rng *protocol.Range
	if element.Pos != "" {
		rng = parsePositionString(element.Pos, doc)
	}
	return Compose(contents, element.Doc, rng), nil
}

// parseLegacyResponse parses the response as XML with exactly one
// top-level element.
func parseLegacyResponse(response string) (*legacyElement, error) {
	decoder := xml.NewDecoder(strings.NewReader(response))
	decoder.Strict = false

	var element legacyElement
	if err := decoder.Decode(&element); err != nil {
		return nil, err
	}
	if element.XMLName.Local == "" {
		return nil, errors.New("response has no root element")
	}

	// Anything but trailing whitespace after the root element means the
	// response was not a single XML fragment.
	for {
		tok, err := decoder.Token()
		if tok == nil {
			break
		}
		if err != nil {
			return nil, err
		}
		if chars, ok := tok.(xml.CharData); ok && strings.TrimSpace(string(chars)) == "" {
			continue
		}
		return nil, errors.New("response has more than one top-level element")
	}

	return &element, nil
}

// reprintLegacyType reformats the legacy server's type representation
// into the style the structured path produces. The grammar is
// deliberately tiny: a plain type, or arrow-separated argument tuples
// plus a return type. Unrecognized fragments render as "unknown" rather
// than failing the request.
func reprintLegacyType(s string) string {
	parts := splitTopLevel(s, "->")
	if len(parts) <= 1 {
		return cleanFragment(s)
	}

	ret := cleanFragment(parts[len(parts)-1])
	argParts := parts[:len(parts)-1]

	// A single Void argument is the legacy spelling of "no arguments".
	if len(argParts) == 1 && strings.TrimSpace(argParts[0]) == "Void" {
		return "():" + ret
	}

	args := make([]string, len(argParts))
	for i, part := range argParts {
		args[i] = reprintLegacyArgument(part)
	}
	return "(" + strings.Join(args, ", ") + "):" + ret
}

// reprintLegacyArgument reformats one "name : Type" tuple. A leading ?
// marks the argument optional and is kept.
func reprintLegacyArgument(s string) string {
	pieces := splitTopLevel(s, ":")
	if len(pieces) == 1 {
		return cleanFragment(s)
	}
	name := strings.TrimSpace(pieces[0])
	typ := cleanFragment(strings.Join(pieces[1:], ":"))
	if name == "" {
		return typ
	}
	return name + ":" + typ
}

func cleanFragment(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return "unknown"
}

// splitTopLevel splits s on sep wherever sep appears outside (), <> and
// {} nesting.
func splitTopLevel(s string, sep string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<', '{':
			depth++
		case ')', '>', '}':
			// '->' is an arrow, not a closing bracket
			if s[i] == '>' && i > 0 && s[i-1] == '-' {
				break
			}
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			// skip the '>' of an arrow we just attributed to the arrow
			parts = append(parts, s[start:i])
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

var positionRe = regexp.MustCompile(`^(.+):(\d+): (character|characters|line|lines) (\d+)-(\d+)$`)

// parsePositionString parses the compiler's serialized position format,
// e.g. "Main.hx:12: characters 7-13" or "Main.hx:3: lines 3-8". Byte
// columns are converted back to character columns against the document
// text. Returns nil when the string does not parse.
func parsePositionString(serialized string, doc *lsp.TextDocument) *protocol.Range {
	m := positionRe.FindStringSubmatch(serialized)
	if m == nil {
		return nil
	}
	line, _ := strconv.Atoi(m[2])
	first, _ := strconv.Atoi(m[4])
	second, _ := strconv.Atoi(m[5])
	if line < 1 {
		return nil
	}

	if strings.HasPrefix(m[3], "line") {
		endLine := second - 1
		if endLine < 0 {
			return nil
		}
		return &protocol.Range{
			Start: protocol.Position{Line: line - 1, Character: 0},
			End:   protocol.Position{Line: endLine, Character: lineLengthUTF16(doc, endLine)},
		}
	}

	lineText := lineAt(doc, line-1)
	return &protocol.Range{
		Start: protocol.Position{Line: line - 1, Character: byteColToUTF16(lineText, first)},
		End:   protocol.Position{Line: line - 1, Character: byteColToUTF16(lineText, second)},
	}
}

func lineAt(doc *lsp.TextDocument, line int) string {
	lines := strings.Split(doc.Text, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

func lineLengthUTF16(doc *lsp.TextDocument, line int) int {
	length := 0
	for _, r := range lineAt(doc, line) {
		length += utf16.RuneLen(r)
	}
	return length
}

// byteColToUTF16 converts a byte column within a line into UTF-16
// character units.
func byteColToUTF16(lineText string, col int) int {
	units := 0
	for i, r := range lineText {
		if i >= col {
			break
		}
		units += utf16.RuneLen(r)
	}
	return units
}
