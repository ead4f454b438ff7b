package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fsd_recorder/internal/models"
)

// PostgresArchive keeps every record in PostgreSQL for long term queries.
// It is written alongside the local SQLite store and never pruned.
type PostgresArchive struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL and creates the
// archive table
func OpenPostgres(ctx context.Context, dsn string) (*PostgresArchive, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 4
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	a := &PostgresArchive{pool: pool}
	if err := a.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// CreateSchema creates the archive table
func (a *PostgresArchive) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS fsd_messages (
		id              BIGSERIAL PRIMARY KEY,
		received_at     TIMESTAMPTZ NOT NULL,
		kind            TEXT NOT NULL,
		sender          TEXT,
		recipient       TEXT,
		raw             TEXT NOT NULL,
		payload         JSONB,
		error           TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_fsd_messages_received_at ON fsd_messages(received_at);
	CREATE INDEX IF NOT EXISTS idx_fsd_messages_kind ON fsd_messages(kind, received_at);
	CREATE INDEX IF NOT EXISTS idx_fsd_messages_sender ON fsd_messages(sender, received_at);
	`

	if _, err := a.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create postgres schema: %w", err)
	}
	return nil
}

// InsertBatch copies the records into the archive table
func (a *PostgresArchive) InsertBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}

	_, err := a.pool.CopyFrom(ctx,
		pgx.Identifier{"fsd_messages"},
		[]string{"received_at", "kind", "sender", "recipient", "raw", "payload", "error"},
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			r := recs[i]
			var payload any
			if len(r.Payload) > 0 {
				payload = string(r.Payload)
			}
			return []any{
				r.ReceivedAt.UTC(),
				r.Kind,
				nullString(r.Sender),
				nullString(r.Recipient),
				r.Raw,
				payload,
				nullString(r.Error),
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy into postgres: %w", err)
	}
	return nil
}

// CountSince counts archived records received at or after since
func (a *PostgresArchive) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := a.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM fsd_messages WHERE received_at >= $1`, since.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count postgres messages: %w", err)
	}
	return n, nil
}

// Close closes the connection pool
func (a *PostgresArchive) Close() error {
	a.pool.Close()
	return nil
}
