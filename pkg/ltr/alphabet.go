package ltr

import (
	"errors"
	"fmt"
	"unicode"
)

// DefaultSymbols is the alphabet the game understands: the 26 lowercase
// letters followed by the apostrophe and the hyphen.
const DefaultSymbols = "abcdefghijklmnopqrstuvwxyz'-"

// MaxAlphabetSize is the largest alphabet a file header can declare.
const MaxAlphabetSize = 255

// Alphabet is an ordered set of symbols with a bidirectional mapping between
// symbols and their indices. The order defines the order of every CDF.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

var defaultAlphabet = mustAlphabet(DefaultSymbols)

// DefaultAlphabet returns the canonical 28 symbol alphabet.
func DefaultAlphabet() *Alphabet {
	return defaultAlphabet
}

// NewAlphabet builds an alphabet from the symbols of s in order. Symbols must
// be unique and lowercase, since lookups fold case before matching.
func NewAlphabet(s string) (*Alphabet, error) {
	if s == "" {
		return nil, errors.New("alphabet is empty")
	}
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range s {
		if unicode.IsUpper(r) {
			return nil, fmt.Errorf("alphabet symbol %q is not lowercase", r)
		}
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet symbol %q appears more than once", r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	if len(a.symbols) > MaxAlphabetSize {
		return nil, fmt.Errorf("alphabet has %d symbols, at most %d are supported", len(a.symbols), MaxAlphabetSize)
	}
	return a, nil
}

func mustAlphabet(s string) *Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// IndexOf returns the index of r after folding it to lowercase. The boolean
// is false for anything outside the alphabet.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[unicode.ToLower(r)]
	return i, ok
}

// SymbolAt returns the symbol at index i. It panics if i is out of range.
func (a *Alphabet) SymbolAt(i int) rune {
	return a.symbols[i]
}

// String returns the symbols in alphabet order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Equal reports whether both alphabets hold the same symbols in the same order.
func (a *Alphabet) Equal(b *Alphabet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.symbols) != len(b.symbols) {
		return false
	}
	for i, r := range a.symbols {
		if b.symbols[i] != r {
			return false
		}
	}
	return true
}

// spell maps symbol indices back to a string.
func (a *Alphabet) spell(idx []int) string {
	out := make([]rune, len(idx))
	for i, v := range idx {
		out[i] = a.symbols[v]
	}
	return string(out)
}
