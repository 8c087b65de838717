package ltr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"

	"github.com/natefinch/atomic"
)

const (
	// Magic is the tag every .ltr file starts with. It is not NUL terminated.
	Magic = "LTR V1.0"
	// HeaderSize is the magic tag plus the one byte alphabet size.
	HeaderSize = len(Magic) + 1
)

// PayloadSize returns the number of table bytes that follow the header for
// an alphabet of n symbols.
func PayloadSize(n int) int {
	return (1 + n + n*n) * 3 * n * 4
}

// The file stores floats in the host's byte order, as the game does.
var byteOrder = binary.NativeEndian

// MarshalBinary encodes the model in the LTR V1.0 layout.
func (m *Model) MarshalBinary() ([]byte, error) {
	n := m.alphabet.Size()
	buf := make([]byte, HeaderSize+PayloadSize(n))
	copy(buf, Magic)
	buf[len(Magic)] = byte(n)

	off := HeaderSize
	for _, t := range m.tables() {
		for _, p := range Positions {
			for _, v := range t.Column(p) {
				byteOrder.PutUint32(buf[off:], math.Float32bits(v))
				off += 4
			}
		}
	}
	return buf, nil
}

// WriteTo writes the encoded model to w.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	data, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Decode parses an encoded model for the given alphabet. Bytes past the end
// of the payload are ignored.
func Decode(data []byte, alphabet *Alphabet) (*Model, error) {
	if err := checkHeader(data, alphabet); err != nil {
		return nil, err
	}
	return decodePayload(data[HeaderSize:], alphabet)
}

// ReadModel reads an encoded model from r.
func ReadModel(r io.Reader, alphabet *Alphabet) (*Model, error) {
	header := make([]byte, HeaderSize)
	got, err := io.ReadFull(r, header)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{Magic: header[:min(got, len(Magic))]}
		}
		return nil, &IOError{Op: "read", Err: err}
	}
	if err = checkHeader(header, alphabet); err != nil {
		return nil, err
	}

	payload := make([]byte, PayloadSize(alphabet.Size()))
	got, err = io.ReadFull(r, payload)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedError{Want: len(payload), Got: got}
		}
		return nil, &IOError{Op: "read", Err: err}
	}
	return decodePayload(payload, alphabet)
}

func checkHeader(data []byte, alphabet *Alphabet) error {
	if len(data) < HeaderSize || string(data[:len(Magic)]) != Magic {
		return &FormatError{Magic: bytes.Clone(data[:min(len(data), len(Magic))])}
	}
	if declared := int(data[len(Magic)]); declared != alphabet.Size() {
		return &SizeMismatchError{Declared: declared, Expected: alphabet.Size()}
	}
	return nil
}

func decodePayload(payload []byte, alphabet *Alphabet) (*Model, error) {
	want := PayloadSize(alphabet.Size())
	if len(payload) < want {
		return nil, &TruncatedError{Want: want, Got: len(payload)}
	}

	m := NewModel(alphabet)
	off := 0
	for _, t := range m.tables() {
		for _, p := range Positions {
			col := t.Column(p)
			for i := range col {
				col[i] = math.Float32frombits(byteOrder.Uint32(payload[off:]))
				off += 4
			}
		}
	}
	return m, nil
}

// LoadFile reads a .ltr file.
func LoadFile(path string, alphabet *Alphabet) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	m, err := ReadModel(bufio.NewReader(f), alphabet)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return nil, err
	}
	return m, nil
}

// SaveFile writes the model to path. The file is replaced atomically, so a
// failed save leaves any previous file untouched.
func SaveFile(path string, m *Model) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
