package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"fsd_recorder/internal/database"
	"fsd_recorder/internal/fsd"
	"fsd_recorder/internal/models"
)

// StationTracker keeps the last known state of every station heard within
// the TTL. Changes are written to the station repository on Flush; stations
// that deregister, expire or are evicted are deleted from it.
type StationTracker struct {
	repo  database.StationRepository
	cache *expirable.LRU[string, *models.Station]

	mu    sync.Mutex
	dirty map[string]struct{}

	// gone is filled from the eviction callback, which runs with the cache
	// lock held, so it has its own lock and nothing else is taken under it
	goneMu sync.Mutex
	gone   map[string]struct{}
}

// NewStationTracker creates a tracker holding up to size stations (0 for no
// limit). A station is dropped ttl after it was last heard.
func NewStationTracker(repo database.StationRepository, size int, ttl time.Duration) *StationTracker {
	t := &StationTracker{
		repo:  repo,
		dirty: make(map[string]struct{}),
		gone:  make(map[string]struct{}),
	}
	t.cache = expirable.NewLRU[string, *models.Station](size, t.evicted, ttl)
	return t
}

func (t *StationTracker) evicted(callsign string, _ *models.Station) {
	t.goneMu.Lock()
	t.gone[callsign] = struct{}{}
	t.goneMu.Unlock()
}

// Observe updates the tracked state from one decoded message
func (t *StationTracker) Observe(msg fsd.Message, seen time.Time) {
	switch msg.(type) {
	case fsd.AtcDeregister, fsd.PilotDeregister:
		t.forget(msg.Sender())
		return
	}

	update, ok := models.StationFromMessage(msg, seen)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	merged := *update
	if existing, ok := t.cache.Peek(update.Callsign); ok {
		merged = *existing
		merged.Merge(update)
	}
	// Add also refreshes the TTL
	t.cache.Add(merged.Callsign, &merged)
	t.dirty[merged.Callsign] = struct{}{}
}

func (t *StationTracker) forget(callsign string) {
	if callsign == "" {
		return
	}

	t.mu.Lock()
	delete(t.dirty, callsign)
	removed := t.cache.Remove(callsign)
	t.mu.Unlock()

	// Not tracked here, but may still be stored from an earlier run
	if !removed {
		t.evicted(callsign, nil)
	}
}

// Get returns a copy of the tracked state for callsign
func (t *StationTracker) Get(callsign string) (models.Station, bool) {
	s, ok := t.cache.Peek(callsign)
	if !ok {
		return models.Station{}, false
	}
	return *s, true
}

// Len returns the number of stations currently tracked
func (t *StationTracker) Len() int {
	return t.cache.Len()
}

// Flush writes changed stations and deletes stations that went away
func (t *StationTracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	upserts := make([]*models.Station, 0, len(t.dirty))
	for cs := range t.dirty {
		if s, ok := t.cache.Peek(cs); ok {
			upserts = append(upserts, s)
		}
	}
	t.dirty = make(map[string]struct{})
	t.mu.Unlock()

	t.goneMu.Lock()
	gone := t.gone
	t.gone = make(map[string]struct{})
	t.goneMu.Unlock()

	var deletes []string
	for cs := range gone {
		// Heard again since it went away
		if _, ok := t.cache.Peek(cs); ok {
			continue
		}
		deletes = append(deletes, cs)
	}

	if len(deletes) > 0 {
		if err := t.repo.Delete(ctx, deletes...); err != nil {
			t.requeue(nil, deletes)
			return fmt.Errorf("delete stations: %w", err)
		}
	}

	if err := t.repo.UpsertBatch(ctx, upserts); err != nil {
		t.requeue(upserts, nil)
		return fmt.Errorf("upsert stations: %w", err)
	}

	if len(upserts) > 0 || len(deletes) > 0 {
		slog.Debug("Flushed stations", "updated", len(upserts), "removed", len(deletes), "tracked", t.Len())
	}
	return nil
}

// requeue marks stations again after a failed flush
func (t *StationTracker) requeue(upserts []*models.Station, deletes []string) {
	t.mu.Lock()
	for _, s := range upserts {
		t.dirty[s.Callsign] = struct{}{}
	}
	t.mu.Unlock()

	t.goneMu.Lock()
	for _, cs := range deletes {
		t.gone[cs] = struct{}{}
	}
	t.goneMu.Unlock()
}
