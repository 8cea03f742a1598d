// Package store persists a snapshot of the document index to SQLite so that
// later tooling can query the last published state without reparsing sources.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/publisher/internal/index"
)

// DocumentRow is one indexed document as persisted.
type DocumentRow struct {
	Seq         int
	SourcePath  string
	SortKey     string
	Fingerprint string
	Fields      json.RawMessage
}

// RunRow describes the run that wrote the snapshot.
type RunRow struct {
	RunID     string
	WrittenAt time.Time
	Source    string
	Documents int
	Files     int
}

// SQLiteStore holds the latest index snapshot.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the snapshot database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		written_at INTEGER NOT NULL,
		source TEXT NOT NULL,
		documents INTEGER NOT NULL,
		files INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER NOT NULL,
		source_path TEXT PRIMARY KEY,
		sort_key TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		fields TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS files (
		seq INTEGER NOT NULL,
		path TEXT PRIMARY KEY
	);
	CREATE INDEX IF NOT EXISTS idx_documents_seq ON documents(seq);
	CREATE INDEX IF NOT EXISTS idx_runs_written ON runs(written_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Snapshot replaces the stored documents and files with the contents of idx,
// in order, and records runID. It runs in a single transaction.
func (s *SQLiteStore) Snapshot(ctx context.Context, runID string, idx *index.Index) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM documents", "DELETE FROM files"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	docs := idx.Ordered("")
	for i, d := range docs {
		var fields []byte
		fields, err = json.Marshal(d.Fields)
		if err != nil {
			return fmt.Errorf("marshal fields of %s: %w", d.SourcePath, err)
		}
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO documents (seq, source_path, sort_key, fingerprint, fields) VALUES (?, ?, ?, ?, ?)",
			i, d.SourcePath, d.SortKey.String(), d.Fingerprint, string(fields),
		); err != nil {
			return fmt.Errorf("insert document %s: %w", d.SourcePath, err)
		}
	}

	files := idx.Files()
	for i, f := range files {
		if _, err = tx.ExecContext(ctx, "INSERT INTO files (seq, path) VALUES (?, ?)", i, f); err != nil {
			return fmt.Errorf("insert file %s: %w", f, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO runs (run_id, written_at, source, documents, files) VALUES (?, ?, ?, ?, ?)",
		runID, time.Now().Unix(), idx.Source(), len(docs), len(files),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Documents returns the stored documents in index order.
func (s *SQLiteStore) Documents(ctx context.Context) ([]DocumentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, source_path, sort_key, fingerprint, fields FROM documents ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		var fields string
		if err := rows.Scan(&r.Seq, &r.SourcePath, &r.SortKey, &r.Fingerprint, &fields); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		r.Fields = json.RawMessage(fields)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Files returns the stored flat file list in discovery order.
func (s *SQLiteStore) Files(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT path FROM files ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// LastRun returns the most recent snapshot run, or nil when none was written.
func (s *SQLiteStore) LastRun(ctx context.Context) (*RunRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r RunRow
	var written int64
	err := s.db.QueryRowContext(ctx,
		"SELECT run_id, written_at, source, documents, files FROM runs ORDER BY written_at DESC, rowid DESC LIMIT 1",
	).Scan(&r.RunID, &written, &r.Source, &r.Documents, &r.Files)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	r.WrittenAt = time.Unix(written, 0)
	return &r, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
