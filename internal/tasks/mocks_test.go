package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fsd_recorder/internal/fsd"
	"fsd_recorder/internal/models"
)

// mockSink is a simple mock implementation of database.MessageSink
type mockSink struct {
	mu      sync.Mutex
	records []*models.Record
	batches int
	errors  []error
}

func (m *mockSink) InsertBatch(ctx context.Context, recs []*models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
	if len(m.errors) > 0 {
		err := m.errors[0]
		m.errors = m.errors[1:]
		return err
	}
	m.records = append(m.records, recs...)
	return nil
}

func (m *mockSink) stored() []*models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Record(nil), m.records...)
}

// mockMessageRepository adds the retention and stats queries to mockSink
type mockMessageRepository struct {
	mockSink
	deletedBefore time.Time
	deleteCount   int64
	countsSince   time.Time
	counts        map[string]int64
	err           error
}

func (m *mockMessageRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedBefore = t
	return m.deleteCount, m.err
}

func (m *mockMessageRepository) CountByKind(ctx context.Context, since time.Time) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countsSince = since
	return m.counts, m.err
}

type mockPublisher struct {
	mu   sync.Mutex
	recs []*models.Record
	err  error
}

func (m *mockPublisher) Publish(rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *mockPublisher) Stats() (uint64, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.recs)), 0
}

type mockObserver struct {
	mu   sync.Mutex
	msgs []fsd.Message
}

func (m *mockObserver) Observe(msg fsd.Message, seen time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

func (m *mockObserver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

// mockStationRepository keeps stations in a map
type mockStationRepository struct {
	mu       sync.Mutex
	stations map[string]models.Station
	deleted  []string
	err      error
}

func newMockStationRepository() *mockStationRepository {
	return &mockStationRepository{stations: make(map[string]models.Station)}
}

func (m *mockStationRepository) UpsertBatch(ctx context.Context, stations []*models.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, s := range stations {
		m.stations[s.Callsign] = *s
	}
	return nil
}

func (m *mockStationRepository) List(ctx context.Context) ([]*models.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Station
	for _, s := range m.stations {
		s := s
		out = append(out, &s)
	}
	return out, nil
}

func (m *mockStationRepository) Get(ctx context.Context, callsign string) (*models.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stations[callsign]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockStationRepository) Delete(ctx context.Context, callsigns ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, cs := range callsigns {
		delete(m.stations, cs)
		m.deleted = append(m.deleted, cs)
	}
	return nil
}

func (m *mockStationRepository) has(callsign string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stations[callsign]
	return ok
}

type mockSender struct {
	mu   sync.Mutex
	sent []fsd.Message
	err  error
}

func (m *mockSender) Send(msg fsd.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func mustParse(t *testing.T, line string) fsd.Message {
	t.Helper()
	msg, err := fsd.Parse(line)
	require.NoError(t, err)
	return msg
}

func newLine(raw string) models.Line {
	return models.Line{ReceivedAt: time.Now().UTC(), Raw: raw}
}
