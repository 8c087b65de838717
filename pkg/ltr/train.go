package ltr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minWordLength is the shortest name that fills the order-3 window.
const minWordLength = 3

// commentMarker ends the usable part of a word.
const commentMarker = '#'

// TrainStats summarizes a training run.
type TrainStats struct {
	Tokens            int // Raw tokens read from the corpus
	Words             int // Tokens accepted as names
	MiddleWindows     int // Middle positions counted across all names
	InvalidCharacters int // Characters dropped for being outside the alphabet
	ShortWords        int // Tokens dropped for being shorter than three symbols
}

// Trainer builds models from a corpus of names.
type Trainer struct {
	alphabet  *Alphabet
	tokenizer Tokenizer
	logger    *slog.Logger
	onWarning func(error)
}

// NewTrainer returns a Trainer for the given alphabet that reads one name per
// whitespace separated token.
func NewTrainer(alphabet *Alphabet) *Trainer {
	return &Trainer{
		alphabet:  alphabet,
		tokenizer: WordTokenizer{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used for rejected characters and names. By
// default, all logs are discarded.
func (t *Trainer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// OnWarning registers fn to receive every InvalidCharacterWarning and
// WordTooShortWarning raised while training, in corpus order.
func (t *Trainer) OnWarning(fn func(error)) {
	t.onWarning = fn
}

// SetTokenizer replaces the tokenizer used by Train.
func (t *Trainer) SetTokenizer(tokenizer Tokenizer) {
	if tokenizer != nil {
		t.tokenizer = tokenizer
	}
}

// Train reads the whole corpus from r and returns the trained model. Invalid
// characters and short names are logged and skipped; only read failures and
// context cancellation abort training.
func (t *Trainer) Train(ctx context.Context, r io.Reader) (*Model, *TrainStats, error) {
	c := t.newCounter()
	stream := t.tokenizer.NewStream(r)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		word, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, &IOError{Op: "read corpus", Err: err}
		}
		c.add(ctx, word)
	}
	return t.finish(ctx, c)
}

// TrainWords trains a model from an in-memory list of names.
func (t *Trainer) TrainWords(ctx context.Context, words []string) (*Model, *TrainStats, error) {
	c := t.newCounter()
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		c.add(ctx, word)
	}
	return t.finish(ctx, c)
}

func (t *Trainer) finish(ctx context.Context, c *counter) (*Model, *TrainStats, error) {
	c.normalize()
	t.logger.InfoContext(ctx, "Training completed",
		slog.Int("tokens_read", c.stats.Tokens),
		slog.Int("names_accepted", c.stats.Words),
		slog.Int("middle_windows", c.stats.MiddleWindows),
		slog.Int("characters_skipped", c.stats.InvalidCharacters),
		slog.Int("names_skipped", c.stats.ShortWords),
	)
	if c.stats.Words == 0 {
		t.logger.WarnContext(ctx, "No names accepted, the model cannot generate names")
	}
	return c.model, &c.stats, nil
}

// counter accumulates raw counts into a model before normalization.
type counter struct {
	model  *Model
	lower  cases.Caser
	logger *slog.Logger
	warn   func(error)
	stats  TrainStats
	buf    []int
}

func (t *Trainer) newCounter() *counter {
	return &counter{
		model:  NewModel(t.alphabet),
		lower:  cases.Lower(language.Und),
		logger: t.logger,
		warn:   t.onWarning,
	}
}

func (c *counter) report(w error) {
	if c.warn != nil {
		c.warn(w)
	}
}

// filter truncates word at the comment marker, lowercases it and maps it to
// symbol indices, dropping anything outside the alphabet.
func (c *counter) filter(ctx context.Context, word string) []int {
	if i := strings.IndexRune(word, commentMarker); i >= 0 {
		word = word[:i]
	}
	word = c.lower.String(word)

	c.buf = c.buf[:0]
	for _, r := range word {
		idx, ok := c.model.alphabet.IndexOf(r)
		if !ok {
			c.stats.InvalidCharacters++
			w := InvalidCharacterWarning{Word: word, Char: r}
			c.logger.WarnContext(ctx, "Skipping invalid character",
				slog.String("name", w.Word),
				slog.String("character", string(w.Char)),
				slog.String("code_point", fmt.Sprintf("%U", w.Char)),
			)
			c.report(w)
			continue
		}
		c.buf = append(c.buf, idx)
	}
	return c.buf
}

func (c *counter) add(ctx context.Context, word string) {
	c.stats.Tokens++
	s := c.filter(ctx, word)
	if len(s) < minWordLength {
		c.stats.ShortWords++
		w := WordTooShortWarning{Word: c.model.alphabet.spell(s)}
		c.logger.WarnContext(ctx, "Skipping name that is too short",
			slog.String("name", w.Word),
			slog.Int("length", len(s)),
		)
		c.report(w)
		return
	}
	c.stats.Words++

	m := c.model
	l := len(s)
	m.singles.Start[s[0]]++
	m.Double(s[0]).Start[s[1]]++
	m.Triple(s[0], s[1]).Start[s[2]]++

	m.singles.End[s[l-1]]++
	m.Double(s[l-2]).End[s[l-1]]++
	m.Triple(s[l-3], s[l-2]).End[s[l-1]]++

	// Middle windows never touch the first or the last symbol.
	for p := 1; p <= l-4; p++ {
		m.singles.Middle[s[p]]++
		m.Double(s[p]).Middle[s[p+1]]++
		m.Triple(s[p], s[p+1]).Middle[s[p+2]]++
		c.stats.MiddleWindows++
	}
}

// normalize divides every count by its total and turns each column into a
// running sum in alphabet order. The sums carry across the contexts of a
// tier, which is how existing .ltr files are laid out.
func (c *counter) normalize() {
	words := float32(c.stats.Words)
	middles := float32(c.stats.MiddleWindows)
	for _, tier := range c.model.tiers() {
		var s, m, e float32
		for _, t := range tier {
			accumulate(t.Start, words, &s)
			accumulate(t.Middle, middles, &m)
			accumulate(t.End, words, &e)
		}
	}
}
