package haxe

// CharOffsetToByteOffset converts a character offset into text to the
// corresponding byte offset. The legacy display protocol addresses
// positions in bytes while the editor works in characters, and the two
// diverge as soon as the document contains multi-byte characters.
func CharOffsetToByteOffset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	chars := 0
	for i := range text {
		if chars == offset {
			return i
		}
		chars++
	}
	return len(text)
}

// ByteOffsetToCharOffset is the inverse conversion.
func ByteOffsetToCharOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	chars := 0
	for i := range text {
		if i >= byteOffset {
			return chars
		}
		chars++
	}
	return chars
}
