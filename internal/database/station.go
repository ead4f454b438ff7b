package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fsd_recorder/internal/models"
)

// ErrStationNotFound is returned by Get for an unknown callsign
var ErrStationNotFound = errors.New("station not found")

type StationRepository interface {
	UpsertBatch(ctx context.Context, stations []*models.Station) error
	List(ctx context.Context) ([]*models.Station, error)
	Get(ctx context.Context, callsign string) (*models.Station, error)
	Delete(ctx context.Context, callsigns ...string) error
}

type stationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) StationRepository {
	return &stationRepository{db: db}
}

const stationColumns = `callsign, type, real_name, rating, latitude, longitude, altitude,
	ground_speed, heading, squawk, frequency, aircraft_type, origin, destination, last_seen`

// UpsertBatch inserts or replaces one or more stations in a single transaction
func (r *stationRepository) UpsertBatch(ctx context.Context, stations []*models.Station) error {
	if len(stations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO stations (`+stationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range stations {
		if _, err := stmt.ExecContext(ctx,
			s.Callsign, string(s.Type), s.RealName, s.Rating,
			s.Latitude, s.Longitude, s.Altitude, s.GroundSpeed, s.Heading,
			s.Squawk, s.Frequency, s.AircraftType, s.Origin, s.Destination,
			s.LastSeen.UTC(),
		); err != nil {
			return fmt.Errorf("failed to upsert station %s: %w", s.Callsign, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns all stations, most recently seen first
func (r *stationRepository) List(ctx context.Context) ([]*models.Station, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY last_seen DESC, callsign`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer rows.Close()

	var stations []*models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

func (r *stationRepository) Get(ctx context.Context, callsign string) (*models.Station, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stationColumns+` FROM stations WHERE callsign = ?`, callsign)
	s, err := scanStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	return s, err
}

func (r *stationRepository) Delete(ctx context.Context, callsigns ...string) error {
	for _, cs := range callsigns {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE callsign = ?`, cs); err != nil {
			return fmt.Errorf("failed to delete station %s: %w", cs, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var (
		s        models.Station
		kind     string
		realName sql.NullString
		squawk   sql.NullString
		freq     sql.NullString
		acType   sql.NullString
		origin   sql.NullString
		dest     sql.NullString
	)
	err := row.Scan(&s.Callsign, &kind, &realName, &s.Rating,
		&s.Latitude, &s.Longitude, &s.Altitude, &s.GroundSpeed, &s.Heading,
		&squawk, &freq, &acType, &origin, &dest, &s.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan station: %w", err)
	}

	s.Type = models.StationType(kind)
	s.RealName = realName.String
	s.Squawk = squawk.String
	s.Frequency = freq.String
	s.AircraftType = acType.String
	s.Origin = origin.String
	s.Destination = dest.String
	return &s, nil
}
