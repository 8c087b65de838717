package ltr

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// sampleNames is a small corpus of fantasy names used across tests.
var sampleNames = []string{
	"Aribeth", "Bastila", "Belaros", "Calindra", "Daelan", "Deekin", "Drogan",
	"Elanee", "Fenthick", "Gannayev", "Grimgnaw", "Haedraline", "Isteval",
	"Jaboli", "Kaelyn", "Linu", "Maugrim", "Mischa", "Morag", "Nathyrra",
	"Neeshka", "Odesseiron", "Pertelope", "Quarra", "Rhiannon", "Safiya",
	"Sharwyn", "Tomi", "Tamsil", "Uthgar", "Valen", "Wulfgar", "Xanos",
	"Yvanna", "Zhjaeve", "D'Arnise", "Ka-Tesh", "Lor'Thyn", "Anariel",
	"Briella", "Corwin", "Danila", "Erevan", "Faelar", "Galandra", "Helarion",
	"Ilyrana", "Jhaeros", "Kethryllia", "Laeroth", "Melandra", "Naeryndam",
}

// scriptedSource replays fixed draws and panics when it runs dry.
type scriptedSource struct {
	floats []float32
	ints   []int
}

func (s *scriptedSource) Float32() float32 {
	if len(s.floats) == 0 {
		panic("scripted source: no floats left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scripted source: no ints left")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// trainModel trains a model over the default alphabet and fails the test on error.
func trainModel(t testing.TB, words []string) (*Model, *TrainStats) {
	t.Helper()
	m, stats, err := NewTrainer(DefaultAlphabet()).TrainWords(context.Background(), words)
	if err != nil {
		t.Fatalf("TrainWords() error = %v", err)
	}
	return m, stats
}

// setupTestLibrary creates a new SQLite database and a Library for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestLibrary(t *testing.T, alphabet *Alphabet) (*sql.DB, *Library) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	lib, err := NewLibrary(db, alphabet)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	t.Cleanup(lib.Close)

	return db, lib
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus repeats the sample names with varied suffixes to get
// a corpus large enough to time.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		suffixes := []string{"", "a", "on", "iel", "dor", "wyn", "-ka", "'el"}
		for i := 0; i < 200; i++ {
			for _, name := range sampleNames {
				sb.WriteString(name)
				sb.WriteString(suffixes[i%len(suffixes)])
				sb.WriteByte('\n')
			}
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
