package ltr

import (
	"context"
	"math/rand/v2"
	"unicode"
)

const (
	// endThreshold and the name length decide when an ending is attempted:
	// an end is tried when IntN(endThreshold) < len(name). The value comes
	// from the game and is kept as is.
	endThreshold = 12
	// maxExtendFailures is how many dead ends a name may hit before it is
	// abandoned and started over.
	maxExtendFailures = 100
)

// Source supplies the random draws used by Generate. *rand.Rand satisfies it.
type Source interface {
	// Float32 returns a uniform value in [0, 1).
	Float32() float32
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewSource returns a Source seeded deterministically from seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

type generateOptions struct {
	maxRestarts int
}

// GenerateOption configures Generate and GenerateN.
type GenerateOption func(*generateOptions)

// WithMaxRestarts bounds how many times a single name may be started over
// before Generate gives up with ErrTooManyRestarts. A value of 0 or less,
// the default, never gives up.
func WithMaxRestarts(n int) GenerateOption {
	return func(o *generateOptions) { o.maxRestarts = n }
}

// Generate draws one name from the model. The first symbol is capitalized.
//
// Generation picks three leading symbols from the start distributions, then
// extends the name through the triples tier until an end symbol is drawn.
// Dead ends are handled by dropping the last symbol, and the whole name is
// started over when too little is left or too many dead ends were hit. The
// only errors are ErrEmptyModel, ErrTooManyRestarts and the context's error.
func Generate(ctx context.Context, m *Model, src Source, opts ...GenerateOption) (string, error) {
	options := &generateOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if !m.CanGenerate() {
		return "", ErrEmptyModel
	}

	name := make([]int, 0, 16)
	for restarts := 0; ; restarts++ {
		if options.maxRestarts > 0 && restarts > options.maxRestarts {
			return "", ErrTooManyRestarts
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var ok bool
		if name, ok = drawStart(m, src, name[:0]); !ok {
			continue
		}
		var err error
		if name, ok, err = extend(ctx, m, src, name); err != nil {
			return "", err
		}
		if ok {
			return capitalize(m.alphabet.spell(name)), nil
		}
	}
}

// GenerateN draws n names in sequence from the same Source.
func GenerateN(ctx context.Context, m *Model, src Source, n int, opts ...GenerateOption) ([]string, error) {
	names := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := Generate(ctx, m, src, opts...)
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

// drawStart picks the three leading symbols. It reports false when a draw
// falls past the end of a start distribution.
func drawStart(m *Model, src Source, name []int) ([]int, bool) {
	i, ok := pick(m.singles.Start, src.Float32())
	if !ok {
		return name, false
	}
	name = append(name, i)

	if i, ok = pick(m.Double(name[0]).Start, src.Float32()); !ok {
		return name, false
	}
	name = append(name, i)

	if i, ok = pick(m.Triple(name[0], name[1]).Start, src.Float32()); !ok {
		return name, false
	}
	return append(name, i), true
}

// extend grows name one symbol at a time until an end symbol is drawn. It
// reports false when the name has to be started over.
func extend(ctx context.Context, m *Model, src Source, name []int) ([]int, bool, error) {
	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return name, false, err
		}
		t := m.Triple(name[len(name)-2], name[len(name)-1])

		if src.IntN(endThreshold) < len(name) {
			if i, ok := pick(t.End, src.Float32()); ok {
				return append(name, i), true, nil
			}
		}

		if i, ok := pick(t.Middle, src.Float32()); ok {
			name = append(name, i)
			continue
		}

		// Dead end: back off one symbol and try again from there.
		name = name[:len(name)-1]
		if len(name) < minWordLength {
			return name, false, nil
		}
		if failures++; failures > maxExtendFailures {
			return name, false, nil
		}
	}
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}
