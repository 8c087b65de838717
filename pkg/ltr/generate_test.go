package ltr

import (
	"context"
	"errors"
	"sync"
	"testing"
	"unicode"
)

// restartLimit keeps a broken sampler from hanging the test run.
const restartLimit = 100000

func TestGenerateScripted(t *testing.T) {
	testCases := []struct {
		name   string
		corpus []string
		src    *scriptedSource
		want   string
	}{
		{
			name:   "Immediate end",
			corpus: []string{"abcd"},
			src:    &scriptedSource{floats: []float32{.5, .5, .5, .5}, ints: []int{0}},
			want:   "Abcd",
		},
		{
			name:   "Start draw past the distribution restarts",
			corpus: []string{"abcd"},
			src:    &scriptedSource{floats: []float32{1, .5, .5, .5, .5}, ints: []int{0}},
			want:   "Abcd",
		},
		{
			name:   "Dead end at length three restarts",
			corpus: []string{"abcd"},
			src:    &scriptedSource{floats: []float32{.5, .5, .5, .5, .5, .5, .5, .5}, ints: []int{5, 0}},
			want:   "Abcd",
		},
		{
			name:   "Middle extension then end",
			corpus: []string{"abcde"},
			src:    &scriptedSource{floats: []float32{.5, .5, .5, .5, .5}, ints: []int{5, 0}},
			want:   "Abcde",
		},
		{
			name:   "Backtrack after a dead end",
			corpus: []string{"abcde"},
			src:    &scriptedSource{floats: []float32{.5, .5, .5, .5, .5, .5, .5, .5}, ints: []int{5, 11, 0, 0}},
			want:   "Abcde",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := trainModel(t, tc.corpus)
			got, err := Generate(context.Background(), m, tc.src)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Generate() = %q, want %q", got, tc.want)
			}
			if len(tc.src.floats) != 0 || len(tc.src.ints) != 0 {
				t.Errorf("draws left over: %d floats, %d ints", len(tc.src.floats), len(tc.src.ints))
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	ctx := context.Background()
	m, _ := trainModel(t, sampleNames)

	first, err := GenerateN(ctx, m, NewSource(42), 25, WithMaxRestarts(restartLimit))
	if err != nil {
		t.Fatalf("GenerateN() error = %v", err)
	}
	second, err := GenerateN(ctx, m, NewSource(42), 25, WithMaxRestarts(restartLimit))
	if err != nil {
		t.Fatalf("GenerateN() error = %v", err)
	}
	if len(first) != 25 {
		t.Fatalf("got %d names, want 25", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("name %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestGenerateCapitalization(t *testing.T) {
	m, _ := trainModel(t, sampleNames)
	names, err := GenerateN(context.Background(), m, NewSource(7), 200, WithMaxRestarts(restartLimit))
	if err != nil {
		t.Fatalf("GenerateN() error = %v", err)
	}

	for _, name := range names {
		r := []rune(name)
		if len(r) < 4 {
			t.Errorf("name %q is shorter than four symbols", name)
			continue
		}
		if _, ok := DefaultAlphabet().IndexOf(r[0]); !ok {
			t.Errorf("name %q starts outside the alphabet", name)
		}
		if unicode.IsLetter(r[0]) && !unicode.IsUpper(r[0]) {
			t.Errorf("name %q does not start with an uppercase letter", name)
		}
		for _, c := range r[1:] {
			if unicode.IsUpper(c) {
				t.Errorf("name %q has an uppercase symbol after the first", name)
			}
			if _, ok := DefaultAlphabet().IndexOf(c); !ok {
				t.Errorf("name %q contains %q outside the alphabet", name, c)
			}
		}
	}
}

func TestGenerateEmptyModel(t *testing.T) {
	m, _ := trainModel(t, []string{"ab", "x"})
	_, err := Generate(context.Background(), m, NewSource(1))
	if !errors.Is(err, ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel, got %v", err)
	}
}

func TestGenerateRestartLimit(t *testing.T) {
	// Singles can start a name but no double ever follows it.
	m := NewModel(DefaultAlphabet())
	m.Singles().Start[0] = 1

	_, err := Generate(context.Background(), m, NewSource(1), WithMaxRestarts(3))
	if !errors.Is(err, ErrTooManyRestarts) {
		t.Errorf("expected ErrTooManyRestarts, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	m, _ := trainModel(t, sampleNames)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	names, err := GenerateN(ctx, m, NewSource(1), 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %d", len(names))
	}
}

func TestGenerateConcurrentSources(t *testing.T) {
	m, _ := trainModel(t, sampleNames)
	want, err := GenerateN(context.Background(), m, NewSource(99), 10, WithMaxRestarts(restartLimit))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]string, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = GenerateN(context.Background(), m, NewSource(99), 10, WithMaxRestarts(restartLimit))
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		for j := range want {
			if results[i][j] != want[j] {
				t.Errorf("worker %d name %d = %q, want %q", i, j, results[i][j], want[j])
			}
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	m, _ := trainModel(b, sampleNames)
	src := NewSource(1)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := Generate(ctx, m, src)
		if err != nil {
			b.Fatalf("Generate() failed: %v", err)
		}
		b.SetBytes(int64(len(s)))
	}
}
