package models

import (
	"time"

	"fsd_recorder/internal/fsd"
)

// StationType tells pilots and controllers apart
type StationType string

const (
	StationPilot StationType = "pilot"
	StationATC   StationType = "atc"
)

// Station is the last known state of one connected callsign
type Station struct {
	Callsign     string      `json:"callsign"`
	Type         StationType `json:"type"`
	RealName     string      `json:"real_name,omitempty"`
	Rating       int         `json:"rating,omitempty"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	Altitude     float64     `json:"altitude"`
	GroundSpeed  int         `json:"ground_speed,omitempty"`
	Heading      float64     `json:"heading"`
	Squawk       string      `json:"squawk,omitempty"`
	Frequency    string      `json:"frequency,omitempty"`
	AircraftType string      `json:"aircraft_type,omitempty"`
	Origin       string      `json:"origin,omitempty"`
	Destination  string      `json:"destination,omitempty"`
	LastSeen     time.Time   `json:"last_seen"`

	// HasPosition marks updates that carry a position, so that a (0, 0)
	// position is not mistaken for a missing one when merging.
	HasPosition bool `json:"-"`
}

// StationFromMessage extracts the station state carried by msg. The second
// return value is false for messages that say nothing about their sender.
func StationFromMessage(msg fsd.Message, seen time.Time) (*Station, bool) {
	s := &Station{Callsign: msg.Sender(), LastSeen: seen}

	switch m := msg.(type) {
	case fsd.AtcRegister:
		s.Type = StationATC
		s.RealName = m.RealName
		s.Rating = int(m.Rating)
	case fsd.PilotRegister:
		s.Type = StationPilot
		s.RealName = m.RealName
		s.Rating = int(m.Rating)
	case fsd.AtcPosition:
		s.Type = StationATC
		s.Rating = int(m.Rating)
		s.setPosition(m.Latitude, m.Longitude, float64(m.Elevation))
		if len(m.Frequencies) > 0 {
			s.Frequency = m.Frequencies[0].Human()
		}
	case fsd.PilotPosition:
		s.Type = StationPilot
		s.Rating = int(m.Rating)
		s.setPosition(m.Latitude, m.Longitude, m.TrueAltitude)
		s.GroundSpeed = int(m.GroundSpeed)
		s.Heading = m.Heading
		s.Squawk = m.Squawk.String()
	case fsd.VelocityStoppedMessage:
		s.Type = StationPilot
		s.setPosition(m.Latitude, m.Longitude, m.TrueAltitude)
		s.Heading = m.Heading
	case fsd.VelocitySlow:
		s.Type = StationPilot
		s.setPosition(m.Latitude, m.Longitude, m.TrueAltitude)
		s.Heading = m.Heading
	case fsd.VelocityFast:
		s.Type = StationPilot
		s.setPosition(m.Latitude, m.Longitude, m.TrueAltitude)
		s.Heading = m.Heading
	case fsd.FlightPlanMessage:
		s.Type = StationPilot
		s.AircraftType = m.Plan.AircraftType
		s.Origin = m.Plan.Origin
		s.Destination = m.Plan.Destination
	default:
		return nil, false
	}

	if s.Callsign == "" {
		return nil, false
	}
	return s, true
}

func (s *Station) setPosition(lat, lon, alt float64) {
	s.Latitude = lat
	s.Longitude = lon
	s.Altitude = alt
	s.HasPosition = true
}

// Merge applies the fields set on u to s. Position fields are copied only
// when u carries a position.
func (s *Station) Merge(u *Station) {
	if u.Type != "" {
		s.Type = u.Type
	}
	if u.RealName != "" {
		s.RealName = u.RealName
	}
	if u.Rating != 0 {
		s.Rating = u.Rating
	}
	if u.HasPosition {
		s.Latitude = u.Latitude
		s.Longitude = u.Longitude
		s.Altitude = u.Altitude
		s.Heading = u.Heading
		s.GroundSpeed = u.GroundSpeed
		s.HasPosition = true
	}
	if u.Squawk != "" {
		s.Squawk = u.Squawk
	}
	if u.Frequency != "" {
		s.Frequency = u.Frequency
	}
	if u.AircraftType != "" {
		s.AircraftType = u.AircraftType
	}
	if u.Origin != "" {
		s.Origin = u.Origin
	}
	if u.Destination != "" {
		s.Destination = u.Destination
	}
	if u.LastSeen.After(s.LastSeen) {
		s.LastSeen = u.LastSeen
	}
}
