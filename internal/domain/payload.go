package domain

import (
	"strings"
	"unicode/utf8"
)

// Payload is the text content of a file queued for transmission.
type Payload struct {
	text string
}

// NewPayload wraps text read from a source file.
func NewPayload(text string) Payload {
	return Payload{text: text}
}

// Text returns the original text.
func (p Payload) Text() string { return p.text }

// Empty reports whether there is nothing to send.
func (p Payload) Empty() bool { return len(p.text) == 0 }

// Bytes returns the UTF-8 encoding of the payload.
func (p Payload) Bytes() []byte { return []byte(p.text) }

// IsEcho reports whether received text, trimmed of surrounding whitespace,
// equals the payload trimmed the same way.
func (p Payload) IsEcho(received string) bool {
	return strings.TrimSpace(received) == strings.TrimSpace(p.text)
}

// Chunks splits b into consecutive windows of at most size bytes.
// The windows share b's backing array. A window may end inside a
// multi-byte rune. size must be positive.
func Chunks(b []byte, size int) [][]byte {
	if size <= 0 {
		panic("domain: chunk size must be positive")
	}
	out := make([][]byte, 0, (len(b)+size-1)/size)
	for start := 0; start < len(b); start += size {
		end := start + size
		if end > len(b) {
			end = len(b)
		}
		out = append(out, b[start:end:end])
	}
	return out
}

// DecodeLenient decodes b as UTF-8, dropping invalid byte sequences.
func DecodeLenient(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "")
}
