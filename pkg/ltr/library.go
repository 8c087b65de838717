package ltr

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SetupSchema initializes the model table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaModels = `
CREATE TABLE IF NOT EXISTS ltr_models (
    model_id INTEGER PRIMARY KEY,
    model_name TEXT NOT NULL UNIQUE,
    num_letters INTEGER NOT NULL,
    data BLOB NOT NULL,
    created_at INTEGER NOT NULL
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaModels); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// ModelInfo holds the metadata of a stored model.
type ModelInfo struct {
	Id         int
	Name       string
	NumLetters int
	Size       int
	CreatedAt  time.Time
}

// LibraryStats summarizes the contents of a Library.
type LibraryStats struct {
	Models     int
	TotalBytes int64
}

// Library keeps named models in a SQLite database, each stored as the bytes
// of its .ltr file.
type Library struct {
	db         *sql.DB
	alphabet   *Alphabet
	stmtSave   *sql.Stmt
	stmtLoad   *sql.Stmt
	stmtModels *sql.Stmt
	stmtRemove *sql.Stmt
	stmtStats  *sql.Stmt
	logger     *slog.Logger
	now        func() time.Time
	stmts      []*sql.Stmt
}

// NewLibrary prepares the statements used by the Library. Models loaded
// through it are decoded for the given alphabet. SetupSchema must have been
// called on db first.
func NewLibrary(db *sql.DB, alphabet *Alphabet) (*Library, error) {
	l := &Library{
		db:       db,
		alphabet: alphabet,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	var err error
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = db.Prepare(query)
		if err == nil {
			l.stmts = append(l.stmts, stmt)
		}
		return stmt
	}

	l.stmtSave = prepare(`INSERT INTO ltr_models (model_name, num_letters, data, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(model_name) DO UPDATE SET num_letters = excluded.num_letters, data = excluded.data, created_at = excluded.created_at;`)
	l.stmtLoad = prepare(`SELECT data FROM ltr_models WHERE model_name = ?;`)
	l.stmtModels = prepare(`SELECT model_id, model_name, num_letters, length(data), created_at FROM ltr_models ORDER BY model_name;`)
	l.stmtRemove = prepare(`DELETE FROM ltr_models WHERE model_name = ?;`)
	l.stmtStats = prepare(`SELECT COUNT(*), coalesce(SUM(length(data)), 0) FROM ltr_models;`)
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("could not prepare library statements: %w", err)
	}
	return l, nil
}

// Close releases the prepared statements held by the Library.
func (l *Library) Close() {
	for _, stmt := range l.stmts {
		_ = stmt.Close()
	}
	l.stmts = nil
}

// SetLogger sets the logger for the Library. By default, all logs are discarded.
func (l *Library) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// SaveModel stores the model under name, replacing any model of that name.
func (l *Library) SaveModel(ctx context.Context, name string, m *Model) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err = l.stmtSave.ExecContext(ctx, name, m.alphabet.Size(), data, l.now().Unix()); err != nil {
		return fmt.Errorf("could not save model '%s': %w", name, err)
	}
	l.logger.InfoContext(ctx, "Model saved",
		slog.String("model_name", name),
		slog.Int("num_letters", m.alphabet.Size()),
		slog.Int("bytes", len(data)),
	)
	return nil
}

// LoadModel decodes the model stored under name. It returns sql.ErrNoRows
// when there is no such model, and the same decoding errors as Decode when
// the stored bytes do not fit the library's alphabet.
func (l *Library) LoadModel(ctx context.Context, name string) (*Model, error) {
	var data []byte
	if err := l.stmtLoad.QueryRowContext(ctx, name).Scan(&data); err != nil {
		return nil, err
	}
	m, err := Decode(data, l.alphabet)
	if err != nil {
		return nil, fmt.Errorf("could not decode model '%s': %w", name, err)
	}
	return m, nil
}

// ModelInfos lists the stored models ordered by name.
func (l *Library) ModelInfos(ctx context.Context) ([]ModelInfo, error) {
	rows, err := l.stmtModels.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []ModelInfo
	for rows.Next() {
		var info ModelInfo
		var created int64
		if err = rows.Scan(&info.Id, &info.Name, &info.NumLetters, &info.Size, &created); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(created, 0)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// RemoveModel deletes the model stored under name. Removing a missing model
// is not an error.
func (l *Library) RemoveModel(ctx context.Context, name string) error {
	res, err := l.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove model '%s': %w", name, err)
	}
	removed, _ := res.RowsAffected()
	l.logger.InfoContext(ctx, "Model removed",
		slog.String("model_name", name),
		slog.Int64("rows_removed", removed),
	)
	return nil
}

// Stats returns the number of stored models and their total size.
func (l *Library) Stats(ctx context.Context) (*LibraryStats, error) {
	var stats LibraryStats
	if err := l.stmtStats.QueryRowContext(ctx).Scan(&stats.Models, &stats.TotalBytes); err != nil {
		return nil, err
	}
	return &stats, nil
}
