package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fsd_recorder/internal/models"
)

// MessageSink accepts batches of records. The SQLite repository and the
// archive stores all implement it.
type MessageSink interface {
	InsertBatch(ctx context.Context, recs []*models.Record) error
}

type MessageRepository interface {
	MessageSink
	// DeleteBefore removes records received before t and returns how many
	// were removed
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
	// CountByKind counts records received at or after since, per kind
	CountByKind(ctx context.Context, since time.Time) (map[string]int64, error)
}

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// InsertBatch inserts one or more records in a single transaction
func (r *messageRepository) InsertBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO fsd_messages (
		received_at, kind, sender, recipient, raw, payload, error
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.ReceivedAt.UTC(),
			rec.Kind,
			nullString(rec.Sender),
			nullString(rec.Recipient),
			rec.Raw,
			nullString(string(rec.Payload)),
			nullString(rec.Error),
		); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *messageRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fsd_messages WHERE received_at < ?`, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (r *messageRepository) CountByKind(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM fsd_messages WHERE received_at >= ? GROUP BY kind`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
