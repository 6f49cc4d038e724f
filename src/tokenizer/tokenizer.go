// Package tokenizer splits text into the words counted by the concordance.
// A word is a run of ASCII letters, digits and apostrophes.
package tokenizer

import (
	"bufio"
	"io"
	"strings"
)

// MaxWordLength bounds a single token; longer runs fail with bufio.ErrTooLong.
const MaxWordLength = 1 << 20

func isWordByte(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		b == '\''
}

// ScanWords is a bufio.SplitFunc that yields words and drops separators.
func ScanWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && !isWordByte(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if !isWordByte(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

type Option func(*Reader)

func WithLowercase() Option {
	return func(r *Reader) {
		r.lower = true
	}
}

type Reader struct {
	scanner *bufio.Scanner
	lower   bool
}

func NewReader(r io.Reader, opts ...Option) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), MaxWordLength)
	s.Split(ScanWords)
	reader := &Reader{scanner: s}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Next returns the next word, or io.EOF when the input is exhausted.
func (r *Reader) Next() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	word := r.scanner.Text()
	if r.lower {
		word = strings.ToLower(word)
	}
	return word, nil
}

func (r *Reader) All() ([]string, error) {
	var words []string
	for {
		w, err := r.Next()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
}
