package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fsd_recorder/internal/database"
	"fsd_recorder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationTracker_Observe(t *testing.T) {
	seen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lines     []string
		checkFunc func(t *testing.T, tr *StationTracker)
	}{
		{
			name:  "register then position merges",
			lines: []string{"#APBAW123:SERVER:1234567:pass:1:100:7:Joe Bloggs", "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"},
			checkFunc: func(t *testing.T, tr *StationTracker) {
				s, ok := tr.Get("BAW123")
				require.True(t, ok)
				assert.Equal(t, models.StationPilot, s.Type)
				assert.Equal(t, "Joe Bloggs", s.RealName)
				assert.Equal(t, "2200", s.Squawk)
				assert.InDelta(t, 51.477, s.Latitude, 1e-9)
				assert.Equal(t, 1, tr.Len())
			},
		},
		{
			name:  "flight plan fills route",
			lines: []string{"$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK:/v/:DCT"},
			checkFunc: func(t *testing.T, tr *StationTracker) {
				s, ok := tr.Get("BAW123")
				require.True(t, ok)
				assert.Equal(t, "B738", s.AircraftType)
				assert.Equal(t, "EGLL", s.Origin)
				assert.Equal(t, "EGPH", s.Destination)
			},
		},
		{
			name:  "messages without station state are ignored",
			lines: []string{"#TMBAW123:EGLL_TWR:ready", "$PIBAW123:SERVER:1"},
			checkFunc: func(t *testing.T, tr *StationTracker) {
				assert.Zero(t, tr.Len())
			},
		},
		{
			name:  "deregister forgets",
			lines: []string{"%EGPH_TWR:18100&18500:4:50:5:55.95000:-3.37250:100", "#DAEGPH_TWR:123456"},
			checkFunc: func(t *testing.T, tr *StationTracker) {
				_, ok := tr.Get("EGPH_TWR")
				assert.False(t, ok)
				assert.Zero(t, tr.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewStationTracker(newMockStationRepository(), 0, time.Hour)
			for i, l := range tt.lines {
				tr.Observe(mustParse(t, l), seen.Add(time.Duration(i)*time.Second))
			}
			tt.checkFunc(t, tr)
		})
	}
}

func TestStationTracker_Flush(t *testing.T) {
	ctx := context.Background()
	repo := newMockStationRepository()
	tr := NewStationTracker(repo, 0, time.Hour)
	now := time.Now().UTC()

	tr.Observe(mustParse(t, "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"), now)
	tr.Observe(mustParse(t, "%EGPH_TWR:18100:4:50:5:55.95000:-3.37250:100"), now)
	require.NoError(t, tr.Flush(ctx))
	assert.True(t, repo.has("BAW123"))
	assert.True(t, repo.has("EGPH_TWR"))

	// Nothing changed, nothing written
	repo.stations = map[string]models.Station{}
	require.NoError(t, tr.Flush(ctx))
	assert.Empty(t, repo.stations)

	// Deregister of a station only known to the repository
	repo.stations["OLD_CTR"] = models.Station{Callsign: "OLD_CTR"}
	tr.Observe(mustParse(t, "#DAOLD_CTR:1"), now)
	tr.Observe(mustParse(t, "#DPBAW123:1234567"), now)
	require.NoError(t, tr.Flush(ctx))
	assert.False(t, repo.has("OLD_CTR"))
	assert.ElementsMatch(t, []string{"OLD_CTR", "BAW123"}, repo.deleted)
}

func TestStationTracker_FlushErrorRequeues(t *testing.T) {
	ctx := context.Background()
	repo := newMockStationRepository()
	repo.err = errors.New("locked")
	tr := NewStationTracker(repo, 0, time.Hour)

	tr.Observe(mustParse(t, "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"), time.Now())
	require.Error(t, tr.Flush(ctx))
	assert.False(t, repo.has("BAW123"))

	repo.err = nil
	require.NoError(t, tr.Flush(ctx))
	assert.True(t, repo.has("BAW123"))
}

func TestStationTracker_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := newMockStationRepository()
	tr := NewStationTracker(repo, 0, 50*time.Millisecond)

	tr.Observe(mustParse(t, "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"), time.Now())
	require.NoError(t, tr.Flush(ctx))
	require.True(t, repo.has("BAW123"))

	require.Eventually(t, func() bool {
		if err := tr.Flush(ctx); err != nil {
			return false
		}
		return !repo.has("BAW123")
	}, 2*time.Second, 20*time.Millisecond)
	assert.Zero(t, tr.Len())
}

func TestStationTracker_Capacity(t *testing.T) {
	ctx := context.Background()
	repo := newMockStationRepository()
	tr := NewStationTracker(repo, 1, time.Hour)
	now := time.Now()

	tr.Observe(mustParse(t, "%EGPH_TWR:18100:4:50:5:55.95000:-3.37250:100"), now)
	require.NoError(t, tr.Flush(ctx))
	tr.Observe(mustParse(t, "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"), now)
	require.NoError(t, tr.Flush(ctx))

	assert.Equal(t, 1, tr.Len())
	assert.False(t, repo.has("EGPH_TWR"))
	assert.True(t, repo.has("BAW123"))
}

func TestStationTracker_WithSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(database.DriverPureGo, filepath.Join(t.TempDir(), "stations.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := db.StationRepository()
	tr := NewStationTracker(repo, 0, time.Hour)
	now := time.Now().UTC()

	tr.Observe(mustParse(t, "#APBAW123:SERVER:1234567:pass:1:100:7:Joe Bloggs"), now)
	tr.Observe(mustParse(t, "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12"), now.Add(time.Second))
	require.NoError(t, tr.Flush(ctx))

	s, err := repo.Get(ctx, "BAW123")
	require.NoError(t, err)
	assert.Equal(t, "Joe Bloggs", s.RealName)
	assert.Equal(t, "2200", s.Squawk)
	assert.WithinDuration(t, now.Add(time.Second), s.LastSeen, time.Second)

	tr.Observe(mustParse(t, "#DPBAW123:1234567"), now.Add(2*time.Second))
	require.NoError(t, tr.Flush(ctx))

	_, err = repo.Get(ctx, "BAW123")
	assert.ErrorIs(t, err, database.ErrStationNotFound)
}
