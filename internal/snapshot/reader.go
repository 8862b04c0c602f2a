package snapshot

// reader.go cleans up text exports before they reach the CSV parser:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF), added by Excel "CSV UTF-8" saves,
//     would otherwise become part of the first header name
//   - invalid UTF-8 bytes are replaced with '?', one byte each, so a stray
//     Latin-1 character does not abort the whole file
//
// The reader decodes into its own buffer, so a multi-byte rune split across
// source reads never depends on how much room the caller's slice has left.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

const sanitizeChunk = 32 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizingReader drops a leading BOM and replaces invalid UTF-8.
type sanitizingReader struct {
	src     *bufio.Reader
	checked bool

	// Bytes of an incomplete multi-byte sequence held back from the last read.
	pending []byte
	// Sanitized bytes not yet handed to the caller.
	out []byte
	err error
}

// newSanitizingReader wraps r for text decoding.
func newSanitizingReader(r io.Reader) io.Reader {
	return &sanitizingReader{src: bufio.NewReader(r)}
}

// Read implements io.Reader. It returns at least one byte unless the source
// is exhausted or failed.
func (s *sanitizingReader) Read(p []byte) (int, error) {
	if !s.checked {
		s.checked = true
		if head, _ := s.src.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
			_, _ = s.src.Discard(len(utf8BOM))
		}
	}
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill()
	}

	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

// fill reads the next chunk behind any held-back bytes and sanitizes it.
func (s *sanitizingReader) fill() {
	held := len(s.pending)
	data := make([]byte, held+sanitizeChunk)
	copy(data, s.pending)
	s.pending = s.pending[:0]

	n, err := s.src.Read(data[held:])
	data = data[:held+n]
	s.err = err

	s.out = data[:s.sanitize(data, err != nil)]
}

// sanitize rewrites data in place and returns the number of bytes to deliver.
// Unless atEOF, a trailing incomplete sequence is kept for the next read.
func (s *sanitizingReader) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		if data[read] < utf8.RuneSelf {
			data[write] = data[read]
			write++
			read++
			continue
		}

		if !atEOF && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}

		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}
