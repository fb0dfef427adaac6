// Package uri converts between filesystem paths and the file:// document
// URIs used by the editor. The encoding mirrors the canonicalization the
// VSCode client performs, so URIs built here compare byte-for-byte equal
// to the ones the editor sends.
package uri

import (
	"regexp"
	"strings"
)

const fileScheme = "file://"

var driveLetterRe = regexp.MustCompile(`^(/?)([A-Z]):`)

// FromFsPath converts a filesystem path into a canonical file:// URI.
//
// The rules are a port of the editor's own conversion and must not be
// "fixed": backslashes become slashes, a leading slash is enforced, a
// leading drive letter is lowercased, and every path segment is
// percent-encoded independently with uppercase hex digits.
func FromFsPath(fsPath string) string {
	path := strings.ReplaceAll(fsPath, "\\", "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if m := driveLetterRe.FindStringSubmatch(path); m != nil {
		path = m[1] + strings.ToLower(m[2]) + ":" + path[len(m[0]):]
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = encodeSegment(segment)
	}
	return fileScheme + strings.Join(segments, "/")
}

// encodeSegment percent-encodes a single path segment. On top of the
// generic URL component encoding, the characters !'()* are escaped as
// well: they are legal in bare URLs but the editor escapes them in
// document URIs, and document identity matching is exact.
func encodeSegment(segment string) string {
	var sb strings.Builder
	for _, b := range []byte(segment) {
		if isSegmentSafe(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[b>>4])
			sb.WriteByte(upperhex[b&0x0f])
		}
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

func isSegmentSafe(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return false
}

// IsFile reports whether the URI uses the file scheme.
func IsFile(uri string) bool {
	return strings.HasPrefix(uri, fileScheme)
}

// ToFsPath converts a file:// URI back into a filesystem path. Percent
// escapes are decoded; invalid escapes are kept verbatim.
func ToFsPath(uri string) string {
	path := strings.TrimPrefix(uri, fileScheme)
	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		if path[i] == '%' && i+2 < len(path) {
			hi, okHi := unhex(path[i+1])
			lo, okLo := unhex(path[i+2])
			if okHi && okLo {
				sb.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		sb.WriteByte(path[i])
	}
	return sb.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
