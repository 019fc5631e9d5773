// Package sqlite is the single shared bookmark store. Every statement
// runs under one exclusive lock: callers get per-call linearizability
// but no cross-call atomicity (see Create).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkoval/markd/internal/domain"
)

// ErrNotFound is returned when an id has no matching bookmark.
var ErrNotFound = errors.New("bookmark not found")

// Store wraps the SQLite database behind an exclusive lock. The lock is
// held per statement, never across external calls and never across the
// write/re-read gap in Create and Update.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The mutex serializes access; a single connection keeps the
	// sqlite driver from queueing writers behind it.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		category TEXT,
		tags TEXT,
		icon_url TEXT,
		notes TEXT,
		reminder TEXT,
		visit_count INTEGER DEFAULT 0,
		last_visited TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_category ON bookmarks(category);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_created_at ON bookmarks(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

const bookmarkColumns = `id, title, url, category, tags, icon_url, notes, reminder,
	visit_count, last_visited, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBookmark maps one row to a domain bookmark. Malformed tags or
// reminder payloads degrade to empty/nil instead of failing the read,
// so listing stays resilient to partially-corrupt historical rows.
func scanBookmark(row rowScanner) (*domain.Bookmark, error) {
	var (
		bm          domain.Bookmark
		category    sql.NullString
		tagsJSON    sql.NullString
		iconURL     sql.NullString
		notes       sql.NullString
		reminder    sql.NullString
		lastVisited sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(&bm.ID, &bm.Title, &bm.URL, &category, &tagsJSON, &iconURL,
		&notes, &reminder, &bm.VisitCount, &lastVisited, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	bm.Category = category.String
	bm.IconURL = iconURL.String
	bm.Notes = notes.String

	bm.Tags = []string{}
	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &bm.Tags); err != nil {
			bm.Tags = []string{}
		}
	}
	if reminder.Valid {
		var r domain.Reminder
		if err := json.Unmarshal([]byte(reminder.String), &r); err == nil {
			bm.Reminder = &r
		}
	}
	if lastVisited.Valid {
		if t, err := time.Parse(time.RFC3339, lastVisited.String); err == nil {
			bm.LastVisited = &t
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		bm.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		bm.UpdatedAt = t
	}

	return &bm, nil
}

// Create inserts a bookmark and returns the stored row. The lock is
// released between the insert and the re-read, so another writer may
// interleave; it cannot target the not-yet-returned id, but Create is
// not one atomic transaction. Known consistency gap, kept deliberately.
func (s *Store) Create(ctx context.Context, input domain.CreateInput) (*domain.Bookmark, error) {
	tagsJSON, err := marshalTags(input.Tags)
	if err != nil {
		return nil, err
	}
	reminderJSON, err := marshalReminder(input.Reminder)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (title, url, category, tags, notes, reminder, visit_count, last_visited, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?, ?)`,
		input.Title, input.URL, nullable(input.Category), tagsJSON,
		nullable(input.Notes), reminderJSON, now, now)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	id, err := res.LastInsertId()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	return s.Get(ctx, id)
}

// Get returns one bookmark or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`, id)
	bm, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return bm, nil
}

// All returns every bookmark, newest first.
func (s *Store) All(ctx context.Context) ([]*domain.Bookmark, error) {
	return s.queryMany(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY created_at DESC`)
}

// Search matches q against title, url, category and notes.
func (s *Store) Search(ctx context.Context, q string) ([]*domain.Bookmark, error) {
	pattern := "%" + q + "%"
	return s.queryMany(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks
		 WHERE title LIKE ?1 OR url LIKE ?1 OR category LIKE ?1 OR notes LIKE ?1
		 ORDER BY created_at DESC`, pattern)
}

// Candidates returns bookmarks whose reminder field is present, any
// enabled state. Filtering by enabled happens in due evaluation, not
// here.
func (s *Store) Candidates(ctx context.Context) ([]*domain.Bookmark, error) {
	return s.queryMany(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks
		 WHERE reminder IS NOT NULL ORDER BY created_at DESC`)
}

func (s *Store) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]*domain.Bookmark, 0)
	for rows.Next() {
		bm, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bm)
	}
	return bookmarks, rows.Err()
}

// Update replaces fields on a stored bookmark and returns the new row.
// Title and URL fall back to the stored value when absent; category,
// tags, notes and reminder are replaced wholesale (absent clears them).
// Like Create, the re-read happens outside the lock.
func (s *Store) Update(ctx context.Context, id int64, input domain.UpdateInput) (*domain.Bookmark, error) {
	tagsJSON, err := marshalTags(input.Tags)
	if err != nil {
		return nil, err
	}
	reminderJSON, err := marshalReminder(input.Reminder)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	res, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET
			title = COALESCE(?, title),
			url = COALESCE(?, url),
			category = ?,
			tags = ?,
			notes = ?,
			reminder = ?,
			updated_at = ?
		 WHERE id = ?`,
		input.Title, input.URL, input.Category, tagsJSON, input.Notes,
		reminderJSON, now, id)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}

	return s.Get(ctx, id)
}

// ReplaceReminder overwrites only the reminder column (and updated_at),
// leaving every other field untouched. There is no transaction spanning
// the caller's read and this write: a racing full update can silently
// lose one of the two reminder values. Last-writer-wins, accepted.
func (s *Store) ReplaceReminder(ctx context.Context, id int64, r *domain.Reminder) (*domain.Bookmark, error) {
	reminderJSON, err := marshalReminder(r)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	res, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET reminder = ?, updated_at = ? WHERE id = ?`,
		reminderJSON, now, id)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("replace reminder: %w", err)
	}
	n, err := res.RowsAffected()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("replace reminder: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}

	return s.Get(ctx, id)
}

// RecordVisit bumps the visit counter and stamps last_visited.
func (s *Store) RecordVisit(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET visit_count = visit_count + 1, last_visited = ? WHERE id = ?`,
		now, id)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a bookmark or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

func marshalReminder(r *domain.Reminder) (any, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal reminder: %w", err)
	}
	return string(data), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
