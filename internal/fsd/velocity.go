package fsd

import "strconv"

// VelocityStopped is the high-precision position of a stationary aircraft.
type VelocityStopped struct {
	From         string  `json:"from"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TrueAltitude float64 `json:"true_altitude"`
	AltitudeAGL  float64 `json:"altitude_agl"`
	Orientation
	NoseGearAngle *float64 `json:"nose_gear_angle,omitempty"`
}

// Velocity is the motion block shared by slow and fast updates. Linear
// velocities are metres per second, angular ones radians per second.
type Velocity struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	PitchRate   float64 `json:"pitch_rate"`
	HeadingRate float64 `json:"heading_rate"`
	BankRate    float64 `json:"bank_rate"`
}

// VelocityUpdate is the shared layout of #SL and ^ lines.
type VelocityUpdate struct {
	VelocityStopped
	Velocity Velocity `json:"velocity"`
}

func (v VelocityStopped) Sender() string { return v.From }

// parseVelocityStopped reads fields 0-5 and the nose gear angle at ngaIndex
// when present.
func parseVelocityStopped(fields []string, prefix string, ngaIndex int) (VelocityStopped, error) {
	lat, err := parseFloat(fields[1], InvalidCoordinate)
	if err != nil {
		return VelocityStopped{}, err
	}
	lon, err := parseFloat(fields[2], InvalidCoordinate)
	if err != nil {
		return VelocityStopped{}, err
	}
	alt, err := parseFloat(fields[3], InvalidAltitude)
	if err != nil {
		return VelocityStopped{}, err
	}
	agl, err := parseFloat(fields[4], InvalidAltitude)
	if err != nil {
		return VelocityStopped{}, err
	}
	pbh, err := parsePBH(fields[5])
	if err != nil {
		return VelocityStopped{}, err
	}

	v := VelocityStopped{
		From:         upper(stripPrefix(fields[0], prefix)),
		Latitude:     lat,
		Longitude:    lon,
		TrueAltitude: alt,
		AltitudeAGL:  agl,
		Orientation:  DecodePBH(pbh),
	}
	if ngaIndex < len(fields) {
		nga, err := parseFloat(fields[ngaIndex], InvalidNosewheelAngle)
		if err != nil {
			return VelocityStopped{}, err
		}
		v.NoseGearAngle = &nga
	}
	return v, nil
}

func parseVelocityUpdate(fields []string, prefix string) (VelocityUpdate, error) {
	if err := minFields(fields, 12); err != nil {
		return VelocityUpdate{}, err
	}
	base, err := parseVelocityStopped(fields, prefix, 12)
	if err != nil {
		return VelocityUpdate{}, err
	}
	var vals [6]float64
	for i := range vals {
		if vals[i], err = parseFloat(fields[6+i], InvalidPositionVelocity); err != nil {
			return VelocityUpdate{}, err
		}
	}
	return VelocityUpdate{
		VelocityStopped: base,
		Velocity: Velocity{
			X: vals[0], Y: vals[1], Z: vals[2],
			PitchRate: vals[3], HeadingRate: vals[4], BankRate: vals[5],
		},
	}, nil
}

func (v VelocityStopped) fields(prefix string) []string {
	return []string{
		prefix + v.From,
		formatFloat(v.Latitude, 7),
		formatFloat(v.Longitude, 7),
		formatFloat(v.TrueAltitude, 2),
		formatFloat(v.AltitudeAGL, 2),
		strconv.FormatUint(uint64(EncodePBH(v.Orientation)), 10),
	}
}

func (v VelocityStopped) withNoseGear(out []string) string {
	if v.NoseGearAngle != nil {
		out = append(out, formatFloat(*v.NoseGearAngle, 2))
	}
	return joinFields(out)
}

func (u VelocityUpdate) render(prefix string) string {
	out := append(u.VelocityStopped.fields(prefix),
		formatFloat(u.Velocity.X, 4),
		formatFloat(u.Velocity.Y, 4),
		formatFloat(u.Velocity.Z, 4),
		formatFloat(u.Velocity.PitchRate, 4),
		formatFloat(u.Velocity.HeadingRate, 4),
		formatFloat(u.Velocity.BankRate, 4),
	)
	return u.withNoseGear(out)
}

// VelocityStoppedMessage is a #ST line.
type VelocityStoppedMessage struct{ VelocityStopped }

// NewVelocityStopped builds a #ST report. noseGear may be nil.
func NewVelocityStopped(from string, lat, lon, trueAlt, agl float64, o Orientation, noseGear *float64) VelocityStoppedMessage {
	return VelocityStoppedMessage{VelocityStopped{
		From:          upper(from),
		Latitude:      lat,
		Longitude:     lon,
		TrueAltitude:  trueAlt,
		AltitudeAGL:   agl,
		Orientation:   o,
		NoseGearAngle: noseGear,
	}}
}

// ParseVelocityStopped reads a #ST line; the nose gear angle is optional.
func ParseVelocityStopped(fields []string) (VelocityStoppedMessage, error) {
	if err := minFields(fields, 6); err != nil {
		return VelocityStoppedMessage{}, err
	}
	v, err := parseVelocityStopped(fields, prefixVelocityStopped, 6)
	return VelocityStoppedMessage{v}, err
}

func (VelocityStoppedMessage) Kind() Kind { return KindVelocityStopped }
func (VelocityStoppedMessage) isMessage() {}

func (m VelocityStoppedMessage) String() string {
	return m.withNoseGear(m.fields(prefixVelocityStopped))
}

// VelocitySlow is a #SL line, sent at a reduced rate.
type VelocitySlow struct{ VelocityUpdate }

// VelocityFast is a ^ line, sent several times per second.
type VelocityFast struct{ VelocityUpdate }

// NewVelocitySlow adds velocities to a stopped report.
func NewVelocitySlow(stopped VelocityStopped, vel Velocity) VelocitySlow {
	stopped.From = upper(stopped.From)
	return VelocitySlow{VelocityUpdate{VelocityStopped: stopped, Velocity: vel}}
}

// NewVelocityFast is NewVelocitySlow for the ^ prefix.
func NewVelocityFast(stopped VelocityStopped, vel Velocity) VelocityFast {
	stopped.From = upper(stopped.From)
	return VelocityFast{VelocityUpdate{VelocityStopped: stopped, Velocity: vel}}
}

// ParseVelocitySlow and ParseVelocityFast share one field layout.
func ParseVelocitySlow(fields []string) (VelocitySlow, error) {
	u, err := parseVelocityUpdate(fields, prefixVelocitySlow)
	return VelocitySlow{u}, err
}

// ParseVelocityFast reads a ^ line.
func ParseVelocityFast(fields []string) (VelocityFast, error) {
	u, err := parseVelocityUpdate(fields, prefixVelocityFast)
	return VelocityFast{u}, err
}

// Fast converts a slow update into a fast one. No field is lost.
func (m VelocitySlow) Fast() VelocityFast { return VelocityFast(m) }

func (VelocitySlow) Kind() Kind { return KindVelocitySlow }
func (VelocitySlow) isMessage() {}

func (m VelocitySlow) String() string { return m.render(prefixVelocitySlow) }

func (VelocityFast) Kind() Kind { return KindVelocityFast }
func (VelocityFast) isMessage() {}

func (m VelocityFast) String() string { return m.render(prefixVelocityFast) }
