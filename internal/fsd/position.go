package fsd

import (
	"math"
	"strconv"
)

func parseFloat(s string, kind ErrorKind) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newParseError(kind, s)
	}
	return v, nil
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// truncInt32 truncates toward zero, saturating at the int32 range. NaN is 0.
func truncInt32(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int64(v)
}

// AtcPosition is the periodic position report of a controller client.
// Frequencies travel in compact form joined by '&'.
type AtcPosition struct {
	Callsign    string           `json:"callsign"`
	Frequencies []RadioFrequency `json:"frequencies"`
	Facility    AtcType          `json:"facility"`
	VisRange    uint32           `json:"vis_range"`
	Rating      AtcRating        `json:"rating"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	Elevation   int32            `json:"elevation"`
}

// NewAtcPosition upper-cases the callsign.
func NewAtcPosition(callsign string, freqs []RadioFrequency, facility AtcType, visRange uint32, rating AtcRating, lat, lon float64, elevation int32) AtcPosition {
	return AtcPosition{
		Callsign:    upper(callsign),
		Frequencies: freqs,
		Facility:    facility,
		VisRange:    visRange,
		Rating:      rating,
		Latitude:    lat,
		Longitude:   lon,
		Elevation:   elevation,
	}
}

// ParseAtcPosition treats a missing or unreadable elevation as zero.
func ParseAtcPosition(fields []string) (AtcPosition, error) {
	if err := minFields(fields, 7); err != nil {
		return AtcPosition{}, err
	}
	facility, err := ParseAtcType(fields[2])
	if err != nil {
		return AtcPosition{}, err
	}
	vis, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return AtcPosition{}, newParseError(InvalidVisRange, fields[3])
	}
	rating, err := ParseAtcRating(fields[4])
	if err != nil {
		return AtcPosition{}, err
	}
	lat, err := parseFloat(fields[5], InvalidCoordinate)
	if err != nil {
		return AtcPosition{}, err
	}
	lon, err := parseFloat(fields[6], InvalidCoordinate)
	if err != nil {
		return AtcPosition{}, err
	}
	elevation, _ := strconv.ParseInt(fieldOr(fields, 7, "0"), 10, 32)

	return NewAtcPosition(stripPrefix(fields[0], prefixAtcPosition), SplitFrequencies(fields[1]),
		facility, uint32(vis), rating, lat, lon, int32(elevation)), nil
}

func (AtcPosition) Kind() Kind       { return KindAtcPosition }
func (AtcPosition) isMessage()       {}
func (m AtcPosition) Sender() string { return m.Callsign }

func (m AtcPosition) String() string {
	return joinFields([]string{
		prefixAtcPosition + m.Callsign,
		JoinFrequencies(m.Frequencies, false),
		m.Facility.String(),
		strconv.FormatUint(uint64(m.VisRange), 10),
		m.Rating.String(),
		formatFloat(m.Latitude, 5),
		formatFloat(m.Longitude, 5),
		strconv.FormatInt(int64(m.Elevation), 10),
	})
}

// AtcSecondaryVisCentre adds an extra visibility centre to a controller.
type AtcSecondaryVisCentre struct {
	Callsign  string  `json:"callsign"`
	Index     uint32  `json:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewAtcSecondaryVisCentre upper-cases the callsign.
func NewAtcSecondaryVisCentre(callsign string, index uint32, lat, lon float64) AtcSecondaryVisCentre {
	return AtcSecondaryVisCentre{Callsign: upper(callsign), Index: index, Latitude: lat, Longitude: lon}
}

// ParseAtcSecondaryVisCentre reads one extra visibility centre.
func ParseAtcSecondaryVisCentre(fields []string) (AtcSecondaryVisCentre, error) {
	if err := minFields(fields, 4); err != nil {
		return AtcSecondaryVisCentre{}, err
	}
	index, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return AtcSecondaryVisCentre{}, newParseError(InvalidIndex, fields[1])
	}
	lat, err := parseFloat(fields[2], InvalidCoordinate)
	if err != nil {
		return AtcSecondaryVisCentre{}, err
	}
	lon, err := parseFloat(fields[3], InvalidCoordinate)
	if err != nil {
		return AtcSecondaryVisCentre{}, err
	}
	return NewAtcSecondaryVisCentre(stripPrefix(fields[0], prefixSecondaryVisCentre), uint32(index), lat, lon), nil
}

func (AtcSecondaryVisCentre) Kind() Kind       { return KindAtcSecondaryVisCentre }
func (AtcSecondaryVisCentre) isMessage()       {}
func (m AtcSecondaryVisCentre) Sender() string { return m.Callsign }

func (m AtcSecondaryVisCentre) String() string {
	return joinFields([]string{
		prefixSecondaryVisCentre + m.Callsign,
		strconv.FormatUint(uint64(m.Index), 10),
		formatFloat(m.Latitude, 5),
		formatFloat(m.Longitude, 5),
	})
}

// PilotPosition is the periodic position report of a pilot client. The wire
// carries pressure altitude as a difference from true altitude.
type PilotPosition struct {
	Callsign         string          `json:"callsign"`
	Mode             TransponderMode `json:"mode"`
	Squawk           TransponderCode `json:"squawk"`
	Rating           PilotRating     `json:"rating"`
	Latitude         float64         `json:"latitude"`
	Longitude        float64         `json:"longitude"`
	TrueAltitude     float64         `json:"true_altitude"`
	PressureAltitude float64         `json:"pressure_altitude"`
	GroundSpeed      uint32          `json:"ground_speed"`
	Orientation
}

// NewPilotPosition upper-cases the callsign.
func NewPilotPosition(callsign string, mode TransponderMode, squawk TransponderCode, rating PilotRating,
	lat, lon, trueAlt, pressureAlt float64, groundSpeed uint32, o Orientation) PilotPosition {
	return PilotPosition{
		Callsign:         upper(callsign),
		Mode:             mode,
		Squawk:           squawk,
		Rating:           rating,
		Latitude:         lat,
		Longitude:        lon,
		TrueAltitude:     trueAlt,
		PressureAltitude: pressureAlt,
		GroundSpeed:      groundSpeed,
		Orientation:      o,
	}
}

// ParsePilotPosition reads pressure altitude as a difference from true
// altitude.
func ParsePilotPosition(fields []string) (PilotPosition, error) {
	if err := minFields(fields, 10); err != nil {
		return PilotPosition{}, err
	}
	mode, err := ParseTransponderMode(stripPrefix(fields[0], prefixPilotPosition))
	if err != nil {
		return PilotPosition{}, err
	}
	squawk, err := ParseTransponderCode(fields[2])
	if err != nil {
		return PilotPosition{}, err
	}
	rating, err := ParsePilotRating(fields[3])
	if err != nil {
		return PilotPosition{}, err
	}
	lat, err := parseFloat(fields[4], InvalidCoordinate)
	if err != nil {
		return PilotPosition{}, err
	}
	lon, err := parseFloat(fields[5], InvalidCoordinate)
	if err != nil {
		return PilotPosition{}, err
	}
	trueAlt, err := parseFloat(fields[6], InvalidAltitude)
	if err != nil {
		return PilotPosition{}, err
	}
	gs, err := strconv.ParseUint(fields[7], 10, 32)
	if err != nil {
		return PilotPosition{}, newParseError(InvalidSpeed, fields[7])
	}
	pbh, err := parsePBH(fields[8])
	if err != nil {
		return PilotPosition{}, err
	}
	diff, err := parseFloat(fields[9], InvalidAltitudeDifference)
	if err != nil {
		return PilotPosition{}, err
	}

	return NewPilotPosition(fields[1], mode, squawk, rating, lat, lon,
		trueAlt, trueAlt+diff, uint32(gs), DecodePBH(pbh)), nil
}

func parsePBH(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, newParseError(InvalidPitchBankHeading, s)
	}
	return uint32(v), nil
}

func (PilotPosition) Kind() Kind       { return KindPilotPosition }
func (PilotPosition) isMessage()       {}
func (m PilotPosition) Sender() string { return m.Callsign }

// String truncates both altitudes toward zero, matching peer clients, and
// saturates them at the int32 range.
func (m PilotPosition) String() string {
	return joinFields([]string{
		prefixPilotPosition + string(m.Mode),
		m.Callsign,
		m.Squawk.String(),
		m.Rating.String(),
		formatFloat(m.Latitude, 5),
		formatFloat(m.Longitude, 5),
		strconv.FormatInt(truncInt32(m.TrueAltitude), 10),
		strconv.FormatUint(uint64(m.GroundSpeed), 10),
		strconv.FormatUint(uint64(EncodePBH(m.Orientation)), 10),
		strconv.FormatInt(truncInt32(m.PressureAltitude-m.TrueAltitude), 10),
	})
}
