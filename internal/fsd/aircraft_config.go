package fsd

import "encoding/json"

// AircraftConfig is the payload of an ACC response. Every field is optional;
// absent fields are omitted on the wire.
type AircraftConfig struct {
	IsFullData     *bool            `json:"is_full_data,omitempty"`
	Lights         *AircraftLights  `json:"lights,omitempty"`
	Engines        *AircraftEngines `json:"engines,omitempty"`
	GearDown       *bool            `json:"gear_down,omitempty"`
	FlapsPct       *int32           `json:"flaps_pct,omitempty"`
	SpoilersOut    *bool            `json:"spoilers_out,omitempty"`
	OnGround       *bool            `json:"on_ground,omitempty"`
	StaticCGHeight *float64         `json:"static_cg_height,omitempty"`
}

type AircraftLights struct {
	StrobeOn  *bool `json:"strobe_on,omitempty"`
	LandingOn *bool `json:"landing_on,omitempty"`
	TaxiOn    *bool `json:"taxi_on,omitempty"`
	BeaconOn  *bool `json:"beacon_on,omitempty"`
	NavOn     *bool `json:"nav_on,omitempty"`
	LogoOn    *bool `json:"logo_on,omitempty"`
}

// AircraftEngines is keyed "1" to "4" on the wire.
type AircraftEngines struct {
	Engine1 *AircraftEngine `json:"1,omitempty"`
	Engine2 *AircraftEngine `json:"2,omitempty"`
	Engine3 *AircraftEngine `json:"3,omitempty"`
	Engine4 *AircraftEngine `json:"4,omitempty"`
}

type AircraftEngine struct {
	On          *bool `json:"on,omitempty"`
	IsReversing *bool `json:"is_reversing,omitempty"`
}

type aircraftConfigEnvelope struct {
	Config *AircraftConfig `json:"config"`
}

// ParseAircraftConfig reads the {"config":{...}} envelope. A missing config
// key or malformed JSON reports InvalidAircraftConfig with the whole input.
func ParseAircraftConfig(s string) (AircraftConfig, error) {
	var env aircraftConfigEnvelope
	if err := json.Unmarshal([]byte(s), &env); err != nil || env.Config == nil {
		return AircraftConfig{}, newParseError(InvalidAircraftConfig, s)
	}
	return *env.Config, nil
}

func (c AircraftConfig) String() string {
	b, err := json.Marshal(aircraftConfigEnvelope{Config: &c})
	if err != nil {
		return `{"config":{}}`
	}
	return string(b)
}

// Bool returns a pointer to v, for building configs.
func Bool(v bool) *bool { return &v }
