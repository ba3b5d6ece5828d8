package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/railalert/internal/domain"
	"github.com/hamed0406/railalert/internal/repo"
)

var _ repo.IncidentStore = (*Store)(nil)

// SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: pgxpool.New: %v", repo.ErrUnavailable, err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", repo.ErrUnavailable, err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the incidents table if absent. Real migration policy
// lives outside this tool; this only covers the first run against a fresh
// database.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS incidents (
			identity    TEXT PRIMARY KEY,
			occurred_at TIMESTAMPTZ NOT NULL,
			description TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: ensure schema: %v", repo.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) KnownIdentities(ctx context.Context) (map[domain.Identity]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT identity FROM incidents`)
	if err != nil {
		return nil, fmt.Errorf("%w: load identities: %v", repo.ErrUnavailable, err)
	}
	defer rows.Close()

	out := make(map[domain.Identity]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan identity: %v", repo.ErrUnavailable, err)
		}
		out[domain.Identity(id)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load identities: %v", repo.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Store) Commit(ctx context.Context, incidents []domain.Incident) error {
	if len(incidents) == 0 {
		return nil
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", repo.ErrUnavailable, err)
	}
	defer tx.Rollback(ctx) // no-op once committed

	for _, inc := range incidents {
		_, err := tx.Exec(ctx,
			`INSERT INTO incidents (identity, occurred_at, description)
			 VALUES ($1, $2, $3)`,
			string(inc.Identity()), inc.OccurredAt.UTC(), inc.Description,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", repo.ErrDuplicateIdentity, inc.Identity())
			}
			return fmt.Errorf("%w: insert incident: %v", repo.ErrUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", repo.ErrUnavailable, err)
	}
	s.log.Debug("incidents_committed", zap.Int("count", len(incidents)))
	return nil
}
