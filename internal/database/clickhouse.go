package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"fsd_recorder/internal/models"
)

// ClickHouseConfig holds ClickHouse connection settings
type ClickHouseConfig struct {
	Addr     string
	Database string
	User     string
	Password string
}

// ClickHouseArchive keeps every record in a ClickHouse MergeTree table
type ClickHouseArchive struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse and creates the archive
// table
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseArchive, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	a := &ClickHouseArchive{conn: conn}
	if err := a.CreateSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return a, nil
}

// CreateSchema creates the archive table
func (a *ClickHouseArchive) CreateSchema(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS fsd_messages (
		received_at     DateTime64(3),
		kind            LowCardinality(String),
		sender          LowCardinality(String),
		recipient       String,
		raw             String,
		payload         String,
		error           String,
		created_at      DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(received_at)
	ORDER BY (kind, received_at)`

	if err := a.conn.Exec(ctx, q); err != nil {
		return fmt.Errorf("create clickhouse schema: %w", err)
	}
	return nil
}

// InsertBatch sends the records as one ClickHouse batch
func (a *ClickHouseArchive) InsertBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}

	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO fsd_messages (received_at, kind, sender, recipient, raw, payload, error)
	`)
	if err != nil {
		return fmt.Errorf("prepare clickhouse batch: %w", err)
	}

	for _, r := range recs {
		err := batch.Append(r.ReceivedAt.UTC(), r.Kind, r.Sender, r.Recipient, r.Raw, string(r.Payload), r.Error)
		if err != nil {
			batch.Abort()
			return fmt.Errorf("append to clickhouse batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send clickhouse batch: %w", err)
	}
	return nil
}

// CountSince counts archived records received at or after since
func (a *ClickHouseArchive) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n uint64
	err := a.conn.QueryRow(ctx,
		`SELECT count() FROM fsd_messages WHERE received_at >= ?`, since.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count clickhouse messages: %w", err)
	}
	return int64(n), nil
}

// Close closes the connection
func (a *ClickHouseArchive) Close() error {
	return a.conn.Close()
}
