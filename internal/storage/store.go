/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage owns the on-disk catalog database: the users table for
// credential verification and the books table for the inventory. All access
// goes through a single pooled connection; SQLite autocommit provides the
// only isolation the application needs.
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golibrarian/internal/domain"
	applog "golibrarian/internal/log"
	"golibrarian/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DBFileName is the default database file name inside the data directory.
	DBFileName = "library.db"

	// schemaVersion tracks the local SQLite schema. Bump on breaking changes
	// and add a migration step in runMigrations.
	schemaVersion = 1

	// Default seeded credentials, created only when the users table is empty.
	defaultUsername = "admin"
	defaultPassword = "admin"
)

// Store wraps the catalog database. The zero value is not usable; construct
// with Open.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// DefaultPath returns the per-user location of the catalog database file.
func DefaultPath() string {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoLibrarian")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoLibrarian")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".local", "share", "golibrarian")
	}
	return filepath.Join(base, DBFileName)
}

// HashPassword returns the hex SHA-256 digest of the raw password. This is
// the single fixed digest scheme the credential store uses; there is no
// per-user salt.
func HashPassword(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Open creates the parent directory if needed, opens (or creates) the SQLite
// database at path, enables WAL mode, brings the schema up to date and seeds
// the default account on first run.
func Open(path string) (*Store, error) {
	l := applog.WithComponent("storage").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One pooled connection; the UI is strictly sequential and this avoids
	// the per-call open/close handshake of naive embedded usage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, path: path, log: l}
	if err := s.seedDefaultUser(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	l.Info("catalog ready")
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file location, used to derive export paths.
func (s *Store) Path() string { return s.path }

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS books (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			author     TEXT NOT NULL,
			category   TEXT,
			year       INTEGER,
			copies     INTEGER DEFAULT 1,
			available  INTEGER DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return seedVersionRow(ctx, db)
}

func seedVersionRow(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx,
			`INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`,
			schemaVersion, version.String(), now, now)
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur < schemaVersion {
		if err := runMigrations(ctx, db, cur); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE version SET schema=?, app=?, updated_at=? WHERE id=1`,
			schemaVersion, version.String(), now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// runMigrations upgrades the schema from the given version. Schema 1 is the
// baseline, so there is nothing to do yet.
func runMigrations(_ context.Context, _ *sql.DB, from int) error {
	if from >= schemaVersion {
		return nil
	}
	return nil
}

func (s *Store) seedDefaultUser(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username=?`, defaultUsername).Scan(&n); err != nil {
		return fmt.Errorf("check default user: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		defaultUsername, HashPassword(defaultPassword)); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	s.log.Info("seeded default account", slog.String("username", defaultUsername))
	return nil
}

// VerifyUser compares the stored hash for username against the digest of the
// supplied password. A missing user and a mismatch both report false; only
// storage faults return an error.
func (s *Store) VerifyUser(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE username=?`, username).Scan(&hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return hash == HashPassword(password), nil
}

// AddBook inserts a catalog row and returns the new id. Year and category may
// be absent and are stored as NULL.
func (s *Store) AddBook(ctx context.Context, p domain.Payload) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO books (title, author, category, year, copies, available) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Author, nullString(p.Category), nullInt(p.Year), p.Copies, p.Available)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert book id: %w", err)
	}
	s.log.Debug("book added", slog.Int64("id", id), slog.String("title", p.Title))
	return id, nil
}

// UpdateBook overwrites all mutable fields of the row with the given id.
// Updating a missing id is a silent no-op.
func (s *Store) UpdateBook(ctx context.Context, id int64, p domain.Payload) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE books SET title=?, author=?, category=?, year=?, copies=?, available=? WHERE id=?`,
		p.Title, p.Author, nullString(p.Category), nullInt(p.Year), p.Copies, p.Available, id)
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// DeleteBook hard-deletes the row with the given id, if any.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// FetchBooks returns all rows whose title, author or category contains the
// search term (case-insensitive); an empty term returns everything. Rows come
// back newest first; id breaks ties because created_at only carries second
// resolution.
func (s *Store) FetchBooks(ctx context.Context, search string) ([]domain.Book, error) {
	const base = `SELECT id, title, author, category, year, copies, available, created_at FROM books`
	const order = ` ORDER BY created_at DESC, id DESC`

	var rows *sql.Rows
	var err error
	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		rows, err = s.db.QueryContext(ctx,
			base+` WHERE lower(title) LIKE ? OR lower(author) LIKE ? OR lower(coalesce(category,'')) LIKE ?`+order,
			like, like, like)
	} else {
		rows, err = s.db.QueryContext(ctx, base+order)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		var category sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &category, &year, &b.Copies, &b.Available, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.Category = category.String
		if year.Valid {
			y := int(year.Int64)
			b.Year = &y
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	return books, nil
}

// Summary aggregates the catalog in one pass over the books table. NULL sums
// from an empty table coerce to zero.
func (s *Store) Summary(ctx context.Context) (domain.Summary, error) {
	var sum domain.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(available), 0),
		       COALESCE(SUM(copies), 0),
		       COALESCE(SUM(CASE WHEN available=0 THEN 1 ELSE 0 END), 0)
		FROM books`).Scan(&sum.Total, &sum.Available, &sum.Copies, &sum.Issued)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summary: %w", err)
	}
	return sum, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
