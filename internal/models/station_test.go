package models

import (
	"testing"
	"time"

	"fsd_recorder/internal/fsd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, line string) fsd.Message {
	t.Helper()
	msg, err := fsd.Parse(line)
	require.NoError(t, err)
	return msg
}

func TestStationFromMessage(t *testing.T) {
	seen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		line      string
		ok        bool
		checkFunc func(*testing.T, *Station)
	}{
		{
			name: "pilot register",
			line: "#APBAW123:SERVER:1234567:pass:1:100:7:Joe Bloggs",
			ok:   true,
			checkFunc: func(t *testing.T, s *Station) {
				assert.Equal(t, "BAW123", s.Callsign)
				assert.Equal(t, StationPilot, s.Type)
				assert.Equal(t, "Joe Bloggs", s.RealName)
				assert.Equal(t, 1, s.Rating)
				assert.False(t, s.HasPosition)
			},
		},
		{
			name: "atc position",
			line: "%EGPH_TWR:18100&18500:4:50:5:55.95000:-3.37250:100",
			ok:   true,
			checkFunc: func(t *testing.T, s *Station) {
				assert.Equal(t, StationATC, s.Type)
				assert.Equal(t, "118.100", s.Frequency)
				assert.InDelta(t, 55.95, s.Latitude, 1e-9)
				assert.InDelta(t, 100.0, s.Altitude, 1e-9)
				assert.True(t, s.HasPosition)
			},
		},
		{
			name: "pilot position",
			line: "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12",
			ok:   true,
			checkFunc: func(t *testing.T, s *Station) {
				assert.Equal(t, "2200", s.Squawk)
				assert.Equal(t, 250, s.GroundSpeed)
				assert.InDelta(t, 90.0, s.Heading, 1e-9)
				assert.InDelta(t, 1500.0, s.Altitude, 1e-9)
			},
		},
		{
			name: "fast velocity",
			line: "^BAW123:51.4770000:-0.4610000:3000.00:2900.00:1024:1.2500:-0.5000:3.0000:0.0000:0.0000:0.0000",
			ok:   true,
			checkFunc: func(t *testing.T, s *Station) {
				assert.InDelta(t, 3000.0, s.Altitude, 1e-9)
				assert.True(t, s.HasPosition)
			},
		},
		{
			name: "flight plan",
			line: "$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK::DCT",
			ok:   true,
			checkFunc: func(t *testing.T, s *Station) {
				assert.Equal(t, "B738", s.AircraftType)
				assert.Equal(t, "EGLL", s.Origin)
				assert.Equal(t, "EGPH", s.Destination)
			},
		},
		{
			name: "text message says nothing",
			line: "#TMBAW123:EGPH_TWR:hello",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := StationFromMessage(mustParse(t, tt.line), seen)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, s)
				return
			}
			require.NotNil(t, s)
			assert.Equal(t, seen, s.LastSeen)
			tt.checkFunc(t, s)
		})
	}
}

func TestStation_Merge(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s := &Station{Callsign: "BAW123", Type: StationPilot, RealName: "Joe", Rating: 1, LastSeen: t0}
	s.Merge(&Station{
		Callsign:    "BAW123",
		Latitude:    51.5,
		Longitude:   -0.4,
		Altitude:    3000,
		Squawk:      "4721",
		HasPosition: true,
		LastSeen:    t0.Add(time.Minute),
	})

	assert.Equal(t, "Joe", s.RealName)
	assert.Equal(t, 1, s.Rating)
	assert.InDelta(t, 51.5, s.Latitude, 1e-9)
	assert.Equal(t, "4721", s.Squawk)
	assert.Equal(t, t0.Add(time.Minute), s.LastSeen)

	// A plan without a position keeps the last one
	s.Merge(&Station{AircraftType: "B738", LastSeen: t0})
	assert.InDelta(t, 51.5, s.Latitude, 1e-9)
	assert.Equal(t, "B738", s.AircraftType)
	assert.Equal(t, t0.Add(time.Minute), s.LastSeen)
}
