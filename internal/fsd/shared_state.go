package fsd

import (
	"encoding/json"
	"strconv"
)

// sharedStateMarker is the literal in field 2 of every #PC line.
const sharedStateMarker = "CCP"

// SharedUpdate is the payload of a #PC line, exchanged between controller
// clients to keep their displays in step.
type SharedUpdate interface {
	Tag() string
	String() string
	isSharedUpdate()
}

// SharedState is a #PC line.
type SharedState struct {
	route
	Update SharedUpdate `json:"update"`
}

// NewSharedState wraps u in a #PC CCP envelope.
func NewSharedState(from, to string, u SharedUpdate) SharedState {
	if n, ok := u.(interface{ normalized() SharedUpdate }); ok {
		u = n.normalized()
	}
	return SharedState{route: newRoute(from, to), Update: u}
}

func (SharedState) Kind() Kind { return KindSharedState }
func (SharedState) isMessage() {}

func (m SharedState) String() string {
	return m.head(prefixSharedState) + ":" + sharedStateMarker + ":" + m.Update.String()
}

func (m SharedState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		route
		Type   string       `json:"type"`
		Update SharedUpdate `json:"update"`
	}{m.route, m.Update.Tag(), m.Update})
}

type (
	SharedVersion struct{}
	SharedID      struct{}
	SharedDI      struct{}
)

func (SharedVersion) Tag() string      { return "VER" }
func (SharedID) Tag() string           { return "ID" }
func (SharedDI) Tag() string           { return "DI" }
func (s SharedVersion) String() string { return s.Tag() }
func (s SharedID) String() string      { return s.Tag() }
func (s SharedDI) String() string      { return s.Tag() }
func (SharedVersion) isSharedUpdate()  {}
func (SharedID) isSharedUpdate()       {}
func (SharedDI) isSharedUpdate()       {}

// Updates that only name an aircraft.
type (
	SharedIHave         struct{ Callsign string `json:"callsign"` }
	SharedHandoffCancel struct{ Callsign string `json:"callsign"` }
	SharedDepartureList struct{ Callsign string `json:"callsign"` }
	SharedPointOut      struct{ Callsign string `json:"callsign"` }
)

func (SharedIHave) Tag() string         { return "IH" }
func (SharedHandoffCancel) Tag() string { return "HC" }
func (SharedDepartureList) Tag() string { return "DP" }
func (SharedPointOut) Tag() string      { return "PT" }

func (s SharedIHave) String() string         { return "IH:" + s.Callsign }
func (s SharedHandoffCancel) String() string { return "HC:" + s.Callsign }
func (s SharedDepartureList) String() string { return "DP:" + s.Callsign }
func (s SharedPointOut) String() string      { return "PT:" + s.Callsign }

func (s SharedIHave) normalized() SharedUpdate         { return SharedIHave{upper(s.Callsign)} }
func (s SharedHandoffCancel) normalized() SharedUpdate { return SharedHandoffCancel{upper(s.Callsign)} }
func (s SharedDepartureList) normalized() SharedUpdate { return SharedDepartureList{upper(s.Callsign)} }
func (s SharedPointOut) normalized() SharedUpdate      { return SharedPointOut{upper(s.Callsign)} }

func (SharedIHave) isSharedUpdate()         {}
func (SharedHandoffCancel) isSharedUpdate() {}
func (SharedDepartureList) isSharedUpdate() {}
func (SharedPointOut) isSharedUpdate()      {}

type SharedScratchPad struct {
	Callsign string     `json:"callsign"`
	Contents ScratchPad `json:"contents"`
}

func (SharedScratchPad) Tag() string     { return "SC" }
func (SharedScratchPad) isSharedUpdate() {}

func (s SharedScratchPad) String() string { return "SC:" + s.Callsign + ":" + s.Contents.String() }

func (s SharedScratchPad) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

type SharedTempAltitude struct {
	Callsign string `json:"callsign"`
	Altitude uint32 `json:"altitude"`
}

type SharedFinalAltitude struct {
	Callsign string `json:"callsign"`
	Altitude uint32 `json:"altitude"`
}

func (SharedTempAltitude) Tag() string      { return "TA" }
func (SharedFinalAltitude) Tag() string     { return "FA" }
func (SharedTempAltitude) isSharedUpdate()  {}
func (SharedFinalAltitude) isSharedUpdate() {}

func (s SharedTempAltitude) String() string {
	return "TA:" + s.Callsign + ":" + strconv.FormatUint(uint64(s.Altitude), 10)
}

func (s SharedFinalAltitude) String() string {
	return "FA:" + s.Callsign + ":" + strconv.FormatUint(uint64(s.Altitude), 10)
}

func (s SharedTempAltitude) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

func (s SharedFinalAltitude) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

type SharedVoiceType struct {
	Callsign string          `json:"callsign"`
	Voice    VoiceCapability `json:"voice"`
}

func (SharedVoiceType) Tag() string     { return "VT" }
func (SharedVoiceType) isSharedUpdate() {}

func (s SharedVoiceType) String() string { return "VT:" + s.Callsign + ":" + string(s.Voice) }

func (s SharedVoiceType) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

type SharedBeaconCode struct {
	Callsign string          `json:"callsign"`
	Code     TransponderCode `json:"code"`
}

func (SharedBeaconCode) Tag() string     { return "BC" }
func (SharedBeaconCode) isSharedUpdate() {}

func (s SharedBeaconCode) String() string { return "BC:" + s.Callsign + ":" + s.Code.String() }

func (s SharedBeaconCode) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

// SharedFlightStrip pushes a flight strip. Format and Contents are
// optional.
type SharedFlightStrip struct {
	Callsign string   `json:"callsign"`
	Format   *int32   `json:"format,omitempty"`
	Contents []string `json:"contents,omitempty"`
}

func (SharedFlightStrip) Tag() string     { return "ST" }
func (SharedFlightStrip) isSharedUpdate() {}

func (s SharedFlightStrip) String() string {
	out := []string{"ST", s.Callsign}
	if s.Format != nil {
		out = append(out, strconv.FormatInt(int64(*s.Format), 10))
	}
	return joinFields(append(out, s.Contents...))
}

func (s SharedFlightStrip) normalized() SharedUpdate {
	s.Callsign = upper(s.Callsign)
	return s
}

// ParseSharedState dispatches a #PC line on field 3.
func ParseSharedState(fields []string) (SharedState, error) {
	if err := minFields(fields, 4); err != nil {
		return SharedState{}, err
	}
	u, err := parseSharedUpdate(fields)
	if err != nil {
		return SharedState{}, err
	}
	return NewSharedState(stripPrefix(fields[0], prefixSharedState), fields[1], u), nil
}

func parseSharedUpdate(fields []string) (SharedUpdate, error) {
	tag := fields[3]
	switch tag {
	case "VER":
		return SharedVersion{}, nil
	case "ID":
		return SharedID{}, nil
	case "DI":
		return SharedDI{}, nil
	case "IH", "HC", "DP", "PT", "ST":
		if err := minFields(fields, 5); err != nil {
			return nil, err
		}
	case "SC", "TA", "FA", "VT", "BC":
		if err := minFields(fields, 6); err != nil {
			return nil, err
		}
	default:
		return nil, newParseError(InvalidSharedStateType, tag)
	}

	callsign := upper(fields[4])
	switch tag {
	case "IH":
		return SharedIHave{callsign}, nil
	case "HC":
		return SharedHandoffCancel{callsign}, nil
	case "DP":
		return SharedDepartureList{callsign}, nil
	case "PT":
		return SharedPointOut{callsign}, nil
	case "ST":
		return parseFlightStrip(callsign, fields[5:])
	case "SC":
		return SharedScratchPad{Callsign: callsign, Contents: ParseScratchPad(fields[5])}, nil
	case "TA", "FA":
		alt, err := ParseAltitude(fields[5])
		if err != nil {
			return nil, err
		}
		if tag == "TA" {
			return SharedTempAltitude{Callsign: callsign, Altitude: alt}, nil
		}
		return SharedFinalAltitude{Callsign: callsign, Altitude: alt}, nil
	case "VT":
		voice, err := ParseVoiceCapability(fields[5])
		if err != nil {
			return nil, err
		}
		return SharedVoiceType{Callsign: callsign, Voice: voice}, nil
	default:
		code, err := ParseTransponderCode(fields[5])
		if err != nil {
			return nil, err
		}
		return SharedBeaconCode{Callsign: callsign, Code: code}, nil
	}
}

// parseFlightStrip reads the optional format and annotations. A format that
// is not an integer is kept as the first annotation.
func parseFlightStrip(callsign string, rest []string) (SharedUpdate, error) {
	st := SharedFlightStrip{Callsign: callsign}
	if len(rest) == 0 {
		return st, nil
	}
	f, err := strconv.ParseInt(rest[0], 10, 32)
	if err != nil {
		st.Contents = append([]string(nil), rest...)
		return st, nil
	}
	format := int32(f)
	st.Format = &format
	if len(rest) > 1 {
		st.Contents = append([]string(nil), rest[1:]...)
	}
	return st, nil
}
