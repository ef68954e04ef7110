package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"json-prompt-generator/backend/internal/features/history/domain"
)

// OpenSQLite opens the sqlite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Store persists conversion history in sqlite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the schema if needed.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(
		ctx,
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			original_text TEXT NOT NULL,
			json_prompt TEXT NOT NULL,
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	)
	return err
}

func (s *Store) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(
		ctx,
		"INSERT INTO conversions (original_text, json_prompt, path, status, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.OriginalText,
		string(entry.JSONPrompt),
		entry.Path,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// List returns limit entries starting at offset, newest first, and the total count.
func (s *Store) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversions").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, original_text, json_prompt, path, status, created_at FROM conversions ORDER BY id DESC LIMIT ? OFFSET ?",
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var (
			e      domain.Entry
			prompt string
		)
		if err := rows.Scan(&e.ID, &e.OriginalText, &prompt, &e.Path, &e.Status, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.JSONPrompt = []byte(prompt)
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
