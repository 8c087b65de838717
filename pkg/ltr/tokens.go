package ltr

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"
)

// maxWordLength caps a single token. Longer runs of non-space text are split
// into several tokens, the same way a 255 byte read buffer would cut them.
const maxWordLength = 255

// Tokenizer splits a training corpus into candidate names.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer returns one raw word at a time from a stream.
type StreamTokenizer interface {
	// Next returns the next word. It returns io.EOF when the stream is
	// fully consumed.
	Next() (string, error)
}

// WordTokenizer treats every whitespace separated token as one name.
type WordTokenizer struct{}

// NewStream returns a stream over the whitespace separated words of r.
func (WordTokenizer) NewStream(r io.Reader) StreamTokenizer {
	s := bufio.NewScanner(r)
	s.Split(scanWords)
	return &wordStream{scanner: s}
}

type wordStream struct {
	scanner *bufio.Scanner
}

func (s *wordStream) Next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// scanWords is bufio.ScanWords with tokens capped at maxWordLength bytes.
func scanWords(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += width
	}
	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) {
			return i + width, data[start:i], nil
		}
		if i-start+width > maxWordLength {
			return i, data[start:i], nil
		}
		i += width
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
