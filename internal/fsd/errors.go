package fsd

import "fmt"

// ErrorKind identifies which semantic field of a line failed to parse.
type ErrorKind int

const (
	InvalidRating ErrorKind = iota + 1
	InvalidProtocolRevision
	InvalidFlightRules
	InvalidSimulatorType
	InvalidAtcType
	InvalidTime
	InvalidMinute
	InvalidIndex
	InvalidFrequency
	InvalidVisRange
	InvalidCoordinate
	InvalidTransponderMode
	InvalidTransponderCode
	InvalidAircraftConfig
	InvalidPitchBankHeading
	InvalidAltitude
	InvalidAltitudeDifference
	InvalidVoiceCapability
	InvalidSpeed
	InvalidClientID
	InvalidVersionNumber
	InvalidNosewheelAngle
	InvalidPositionVelocity
	UnknownMessageType
	InvalidPingTime
	InvalidServerError
	InvalidClientQueryType
	InvalidNewAtisMessage
	InvalidAtcStatus
	InvalidAtisLine
	InvalidSharedStateType
	InvalidClientCapability
	InvalidIPAddress
	InvalidPort
)

var errorKindText = map[ErrorKind]string{
	InvalidRating:             "rating",
	InvalidProtocolRevision:   "protocol revision",
	InvalidFlightRules:        "flight rules",
	InvalidSimulatorType:      "simulator type",
	InvalidAtcType:            "ATC type",
	InvalidTime:               "time",
	InvalidMinute:             "minute",
	InvalidIndex:              "index",
	InvalidFrequency:          "ATC frequency",
	InvalidVisRange:           "visibility range",
	InvalidCoordinate:         "lat / long coordinate",
	InvalidTransponderMode:    "transponder mode",
	InvalidTransponderCode:    "transponder code",
	InvalidAircraftConfig:     "aircraft config",
	InvalidPitchBankHeading:   "pitch / bank / heading number",
	InvalidAltitude:           "altitude",
	InvalidAltitudeDifference: "altitude difference",
	InvalidVoiceCapability:    "voice capability",
	InvalidSpeed:              "speed",
	InvalidClientID:           "client ID",
	InvalidVersionNumber:      "version number part",
	InvalidNosewheelAngle:     "nosewheel angle",
	InvalidPositionVelocity:   "position velocity",
	UnknownMessageType:        "message type",
	InvalidPingTime:           "ping time",
	InvalidServerError:        "server error",
	InvalidClientQueryType:    "client query type",
	InvalidNewAtisMessage:     "new ATIS message",
	InvalidAtcStatus:          "ATC status",
	InvalidAtisLine:           "ATIS line",
	InvalidSharedStateType:    "shared state type",
	InvalidClientCapability:   "client capability",
	InvalidIPAddress:          "IP address",
	InvalidPort:               "port",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports a field that could not be converted. Value holds the
// offending text exactly as it appeared on the line.
type ParseError struct {
	Kind  ErrorKind
	Value string
}

func (e *ParseError) Error() string {
	if e.Kind == UnknownMessageType {
		return "unknown message type: " + e.Value
	}
	return fmt.Sprintf("%q is not a valid %s", e.Value, e.Kind)
}

// Is reports whether target is a *ParseError of the same kind, so callers
// can write errors.Is(err, &fsd.ParseError{Kind: fsd.InvalidAltitude}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func newParseError(kind ErrorKind, value string) error {
	return &ParseError{Kind: kind, Value: value}
}

// FieldCountError is returned before any field is read when a line has fewer
// fields than its message kind requires (or, for fixed-length kinds, a
// different number).
type FieldCountError struct {
	Expected int
	Found    int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("invalid field count: expected %d, found %d", e.Expected, e.Found)
}

func minFields(fields []string, n int) error {
	if len(fields) < n {
		return &FieldCountError{Expected: n, Found: len(fields)}
	}
	return nil
}

func exactFields(fields []string, n int) error {
	if len(fields) != n {
		return &FieldCountError{Expected: n, Found: len(fields)}
	}
	return nil
}
