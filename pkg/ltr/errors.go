package ltr

import (
	"errors"
	"fmt"
)

// ErrEmptyModel is returned when sampling from a model whose singles start
// distribution has no mass.
var ErrEmptyModel = errors.New("model has no start distribution")

// ErrTooManyRestarts is returned when sampling gives up after the restart
// limit set with WithMaxRestarts.
var ErrTooManyRestarts = errors.New("name generation exceeded its restart limit")

// FormatError reports input that does not begin with the LTR magic tag.
type FormatError struct {
	Magic []byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("no valid LTR header: got magic %q, want %q", e.Magic, Magic)
}

// SizeMismatchError reports a file built for a different alphabet size.
type SizeMismatchError struct {
	Declared int
	Expected int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("file built for %d letters, alphabet has %d", e.Declared, e.Expected)
}

// TruncatedError reports a payload shorter than the header promises.
type TruncatedError struct {
	Want int
	Got  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated probability table: want %d bytes, got %d", e.Want, e.Got)
}

// IOError wraps a failure at the storage boundary.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// InvalidCharacterWarning describes a character dropped from a training word.
type InvalidCharacterWarning struct {
	Word string
	Char rune
}

func (w InvalidCharacterWarning) Error() string {
	return fmt.Sprintf("invalid character %q (%U) in name %q", w.Char, w.Char, w.Word)
}

// WordTooShortWarning describes a training word dropped for having fewer
// than three symbols left after filtering.
type WordTooShortWarning struct {
	Word string
}

func (w WordTooShortWarning) Error() string {
	return fmt.Sprintf("name %q is too short", w.Word)
}
