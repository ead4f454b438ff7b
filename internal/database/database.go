package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported SQLite drivers. sqlite3 is the cgo build, sqlite the pure Go one.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// DB is the local SQLite store for received lines and station state
type DB struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath with the given driver
func New(driver, dbPath string) (*DB, error) {
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY between the collector and the
	// retention task
	db.SetMaxOpenConns(1)

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite applies the pragma set used for a long running writer
func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		stmt string
		what string
	}{
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		// 64MB of page cache
		{"PRAGMA cache_size=-64000", "set cache size"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA temp_store=MEMORY", "set temp_store"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// MessageRepository returns the repository for received lines
func (d *DB) MessageRepository() MessageRepository {
	return NewMessageRepository(d.db)
}

// StationRepository returns the repository for station state
func (d *DB) StationRepository() StationRepository {
	return NewStationRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	messagesSchema := `CREATE TABLE IF NOT EXISTS fsd_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TIMESTAMP NOT NULL,
		kind TEXT NOT NULL,
		sender TEXT,
		recipient TEXT,
		raw TEXT NOT NULL,
		payload TEXT,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	stationsSchema := `CREATE TABLE IF NOT EXISTS stations (
		callsign TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		real_name TEXT,
		rating INTEGER,
		latitude REAL,
		longitude REAL,
		altitude REAL,
		ground_speed INTEGER,
		heading REAL,
		squawk TEXT,
		frequency TEXT,
		aircraft_type TEXT,
		origin TEXT,
		destination TEXT,
		last_seen TIMESTAMP NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_fsd_messages_received_at ON fsd_messages(received_at)`,
		`CREATE INDEX IF NOT EXISTS idx_fsd_messages_kind ON fsd_messages(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_fsd_messages_sender_received_at ON fsd_messages(sender, received_at)`,
		`CREATE INDEX IF NOT EXISTS idx_stations_last_seen ON stations(last_seen)`,
	}

	if _, err := d.db.Exec(messagesSchema); err != nil {
		return fmt.Errorf("failed to create fsd_messages table: %w", err)
	}

	if _, err := d.db.Exec(stationsSchema); err != nil {
		return fmt.Errorf("failed to create stations table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
