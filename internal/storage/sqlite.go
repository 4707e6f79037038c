package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/garrettladley/wellness/internal/migrations"
	"github.com/garrettladley/wellness/internal/xslog"
)

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens the database at path and applies pending migrations.
// Transactions begin IMMEDIATE so a profile update takes the write lock
// before it reads.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger := xslog.FromContext(ctx)
	for _, name := range applied {
		logger.InfoContext(ctx, "applied migration", xslog.Driver("sqlite"), xslog.File(name))
	}
	return db, nil
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateProfile(ctx context.Context, p *Profile) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	doc, err := encodeProfile(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		p.UserID, string(doc), now, now)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM profiles WHERE user_id = ?`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}

	p, err := decodeProfile([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, userID string, fn UpdateFunc) (*Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var doc string
	err = tx.QueryRowContext(ctx, `SELECT document FROM profiles WHERE user_id = ?`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}

	p, err := decodeProfile([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	createdAt := p.CreatedAt

	if err := fn(p); err != nil {
		return nil, err
	}
	p.UserID = userID
	p.CreatedAt = createdAt
	p.UpdatedAt = time.Now().UTC()

	next, err := encodeProfile(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET document = ?, updated_at = ? WHERE user_id = ?`,
		string(next), p.UpdatedAt, userID); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateAPIKey(ctx context.Context, key APIKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (id, user_id, key_hash, name, revoked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key.ID, key.UserID, key.Hash, key.Name, key.Revoked, key.CreatedAt)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

const sqliteAPIKeyColumns = `id, user_id, key_hash, name, revoked, created_at, last_used_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteAPIKey(row rowScanner) (*APIKey, error) {
	var (
		key      APIKey
		lastUsed sql.NullTime
	)
	if err := row.Scan(&key.ID, &key.UserID, &key.Hash, &key.Name, &key.Revoked, &key.CreatedAt, &lastUsed); err != nil {
		return nil, err
	}
	if lastUsed.Valid {
		key.LastUsedAt = &lastUsed.Time
	}
	return &key, nil
}

func (s *SQLiteStore) GetAPIKeyByHash(ctx context.Context, hash string) (*APIKey, error) {
	key, err := scanSQLiteAPIKey(s.db.QueryRowContext(ctx,
		`SELECT `+sqliteAPIKeyColumns+` FROM api_keys WHERE key_hash = ?`, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select api key: %w", err)
	}
	return key, nil
}

func (s *SQLiteStore) ListAPIKeys(ctx context.Context, userID string) ([]APIKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteAPIKeyColumns+` FROM api_keys WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var keys []APIKey
	for rows.Next() {
		key, err := scanSQLiteAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, *key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

func (s *SQLiteStore) RevokeAPIKey(ctx context.Context, id string) (*APIKey, error) {
	key, err := scanSQLiteAPIKey(s.db.QueryRowContext(ctx,
		`UPDATE api_keys SET revoked = TRUE WHERE id = ? RETURNING `+sqliteAPIKeyColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("revoke api key: %w", err)
	}
	return key, nil
}

func (s *SQLiteStore) TouchAPIKey(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE api_keys SET last_used_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
