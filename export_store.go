package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// exportStore keeps a history of written exports. Only metadata is stored;
// sheet contents stay in memory.
type exportStore struct {
	db   *sql.DB
	path string
}

type exportRecord struct {
	ID        int64
	Path      string
	Sheet     string
	Format    string
	Rows      int
	CreatedAt time.Time
}

func openExportStore(dir string) (*exportStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	sqlitePath := filepath.Join(dir, "exports.sqlite")
	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}
	if err := migrateExportStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &exportStore{db: db, path: sqlitePath}, nil
}

func migrateExportStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS exports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			sheet TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS exports_created_at ON exports (created_at DESC);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("export store migration failed: %w", err)
		}
	}
	return nil
}

func (s *exportStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *exportStore) Add(rec exportRecord) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	path := filepath.Clean(strings.TrimSpace(rec.Path))
	if path == "" || path == "." {
		return 0, fmt.Errorf("export path is empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO exports (path, sheet, format, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		path, rec.Sheet, rec.Format, rec.Rows, rec.CreatedAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *exportStore) Recent(limit int) ([]exportRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`SELECT id, path, sheet, format, row_count, created_at FROM exports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []exportRecord
	for rows.Next() {
		var (
			rec     exportRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Sheet, &rec.Format, &rec.Rows, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(created)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
