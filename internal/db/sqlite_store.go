// Package db implements the remote persistence collaborator on SQLite: a
// row per interview owned by a user, with the nested config serialized as a
// JSON blob, plus the user accounts for auth.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/beanup/interview-guide/internal/interview"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("db: not found")

// Open opens (and creates if missing) the SQLite database at path.
// Use ":memory:" for tests.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return conn, nil
}

// User is an account row.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the SQLite-backed remote row store. Its interview operations
// implement the sync contract: FetchAll, Upsert, Delete.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an opened database. now may be nil.
func NewStore(conn *sql.DB, now func() time.Time) (*Store, error) {
	if conn == nil {
		return nil, errors.New("db: nil connection")
	}
	if now == nil {
		now = time.Now
	}
	return &Store{db: conn, now: now}, nil
}

func encodeTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateUser inserts a new account row.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the account row for email, or ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	var created sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = decodeTime(created)
	return &u, nil
}

// GetUser returns the account row by id, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	var created sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = decodeTime(created)
	return &u, nil
}

// FetchAll returns every interview owned by userID, newest created first.
// Rows with malformed config blobs are repaired by the normalizer instead
// of failing the fetch.
func (s *Store) FetchAll(ctx context.Context, userID string) ([]*interview.Interview, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, visibility, scheduled_at, conducted_at, created_at, updated_at, config
		 FROM interviews WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select interviews: %w", err)
	}
	defer rows.Close()

	now := s.now()
	var out []*interview.Interview
	for rows.Next() {
		var (
			iv        interview.Interview
			scheduled sql.NullString
			conducted sql.NullString
			created   sql.NullString
			updated   sql.NullString
			config    []byte
		)
		if err := rows.Scan(&iv.ID, &iv.Name, &iv.Status, &iv.Visibility,
			&scheduled, &conducted, &created, &updated, &config); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		iv.ScheduledAt = decodeTime(scheduled)
		iv.ConductedAt = decodeTime(conducted)
		iv.CreatedAt = decodeTime(created)
		iv.UpdatedAt = decodeTime(updated)
		iv.Config = interview.DecodeConfig(config, now)
		out = append(out, interview.NormalizeInterview(&iv, now))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interviews: %w", err)
	}
	return out, nil
}

// Upsert writes one interview row for userID, replacing any existing row
// with the same id.
func (s *Store) Upsert(ctx context.Context, userID string, iv *interview.Interview) error {
	config, err := json.Marshal(iv.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO interviews (id, user_id, name, status, visibility, scheduled_at, conducted_at, created_at, updated_at, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			visibility = excluded.visibility,
			scheduled_at = excluded.scheduled_at,
			conducted_at = excluded.conducted_at,
			updated_at = excluded.updated_at,
			config = excluded.config`,
		iv.ID, userID, iv.Name, string(iv.Status), string(iv.Visibility),
		encodeTime(iv.ScheduledAt), encodeTime(iv.ConductedAt),
		encodeTime(iv.CreatedAt), encodeTime(iv.UpdatedAt), string(config))
	if err != nil {
		return fmt.Errorf("upsert interview %s: %w", iv.ID, err)
	}
	return nil
}

// Delete removes one interview row. Deleting a missing row is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete interview %s: %w", id, err)
	}
	return nil
}
