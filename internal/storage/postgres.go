package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

const pgUniqueViolation = "23505"

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateProfile(ctx context.Context, p *Profile) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	doc, err := encodeProfile(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO NOTHING`,
		p.UserID, doc, now)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM profiles WHERE user_id = $1`, userID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}

	p, err := decodeProfile(doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// UpdateProfile holds a row lock for the duration of fn.
func (s *PostgresStore) UpdateProfile(ctx context.Context, userID string, fn UpdateFunc) (*Profile, error) {
	var updated *Profile
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var doc []byte
		err := tx.QueryRow(ctx, `SELECT document FROM profiles WHERE user_id = $1 FOR UPDATE`, userID).Scan(&doc)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("select profile for update: %w", err)
		}

		p, err := decodeProfile(doc)
		if err != nil {
			return fmt.Errorf("unmarshal profile: %w", err)
		}
		createdAt := p.CreatedAt

		if err := fn(p); err != nil {
			return err
		}
		p.UserID = userID
		p.CreatedAt = createdAt
		p.UpdatedAt = time.Now().UTC()

		next, err := encodeProfile(p)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE profiles SET document = $2, updated_at = $3 WHERE user_id = $1`,
			userID, next, p.UpdatedAt); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) DeleteProfile(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key APIKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO api_keys (id, user_id, key_hash, name, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		key.ID, key.UserID, key.Hash, key.Name, key.Revoked, key.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

const pgAPIKeyColumns = `id, user_id, key_hash, name, revoked, created_at, last_used_at`

func scanPGAPIKey(row pgx.Row) (*APIKey, error) {
	var key APIKey
	if err := row.Scan(&key.ID, &key.UserID, &key.Hash, &key.Name, &key.Revoked, &key.CreatedAt, &key.LastUsedAt); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *PostgresStore) GetAPIKeyByHash(ctx context.Context, hash string) (*APIKey, error) {
	key, err := scanPGAPIKey(s.pool.QueryRow(ctx,
		`SELECT `+pgAPIKeyColumns+` FROM api_keys WHERE key_hash = $1`, hash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select api key: %w", err)
	}
	return key, nil
}

func (s *PostgresStore) ListAPIKeys(ctx context.Context, userID string) ([]APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgAPIKeyColumns+` FROM api_keys WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (APIKey, error) {
		key, err := scanPGAPIKey(row)
		if err != nil {
			return APIKey{}, err
		}
		return *key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) RevokeAPIKey(ctx context.Context, id string) (*APIKey, error) {
	key, err := scanPGAPIKey(s.pool.QueryRow(ctx,
		`UPDATE api_keys SET revoked = TRUE WHERE id = $1 RETURNING `+pgAPIKeyColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("revoke api key: %w", err)
	}
	return key, nil
}

func (s *PostgresStore) TouchAPIKey(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
