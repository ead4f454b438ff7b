package fsd

import (
	"strconv"
	"strings"
)

// AtcRating is a controller's network rating, 1-12.
type AtcRating uint8

const (
	AtcObserver AtcRating = iota + 1
	AtcS1
	AtcS2
	AtcS3
	AtcC1
	AtcC2
	AtcC3
	AtcI1
	AtcI2
	AtcI3
	AtcSupervisor
	AtcAdministrator
)

// ParseAtcRating reads a rating between 1 and 12.
func ParseAtcRating(s string) (AtcRating, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v < uint64(AtcObserver) || v > uint64(AtcAdministrator) {
		return 0, newParseError(InvalidRating, s)
	}
	return AtcRating(v), nil
}

func (r AtcRating) String() string { return strconv.Itoa(int(r)) }

// PilotRating is a pilot's network rating, 1-5.
type PilotRating uint8

const (
	PilotStudent PilotRating = iota + 1
	PilotVFR
	PilotIFR
	PilotInstructor
	PilotSupervisor
)

// ParsePilotRating reads a rating between 1 and 5.
func ParsePilotRating(s string) (PilotRating, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v < uint64(PilotStudent) || v > uint64(PilotSupervisor) {
		return 0, newParseError(InvalidRating, s)
	}
	return PilotRating(v), nil
}

func (r PilotRating) String() string { return strconv.Itoa(int(r)) }

// ProtocolRevision is the FSD dialect a client registers with.
type ProtocolRevision uint8

const (
	ProtocolClassic      ProtocolRevision = 9
	ProtocolVatsimNoAuth ProtocolRevision = 10
	ProtocolVatsimAuth   ProtocolRevision = 100
	ProtocolVatsim2022   ProtocolRevision = 101
)

// ParseProtocolRevision accepts "1" as an alias of the classic revision.
func ParseProtocolRevision(s string) (ProtocolRevision, error) {
	switch s {
	case "1", "9":
		return ProtocolClassic, nil
	case "10":
		return ProtocolVatsimNoAuth, nil
	case "100":
		return ProtocolVatsimAuth, nil
	case "101":
		return ProtocolVatsim2022, nil
	}
	return 0, newParseError(InvalidProtocolRevision, s)
}

func (p ProtocolRevision) String() string { return strconv.Itoa(int(p)) }

// SimulatorType identifies the pilot's simulator. Unrecognised values decode
// as SimUnknown rather than failing.
type SimulatorType uint8

const (
	SimUnknown SimulatorType = iota
	SimMSFS95
	SimMSFS98
	SimMSCFS
	SimMSFS2000
	SimMSCFS2
	SimMSFS2002
	SimMSCFS3
	SimMSFS2004
	SimMSFSX
	SimMSFS
	SimMSFS2024
	SimXPlane8
	SimXPlane9
	SimXPlane10
	SimXPlane11
	SimXPlane12
	SimP3Dv1
	SimP3Dv2
	SimP3Dv3
	SimP3Dv4
	SimP3Dv5
	SimFlightGear
)

// ParseSimulatorType never fails.
func ParseSimulatorType(s string) SimulatorType {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v > uint64(SimFlightGear) {
		return SimUnknown
	}
	return SimulatorType(v)
}

func (t SimulatorType) String() string { return strconv.Itoa(int(t)) }

// FlightRules of a filed flight plan.
type FlightRules string

const (
	DVFR FlightRules = "D"
	SVFR FlightRules = "S"
	VFR  FlightRules = "V"
	IFR  FlightRules = "I"
)

// ParseFlightRules accepts D, S, V or I in either case.
func ParseFlightRules(s string) (FlightRules, error) {
	switch r := FlightRules(upper(s)); r {
	case DVFR, SVFR, VFR, IFR:
		return r, nil
	}
	return "", newParseError(InvalidFlightRules, upper(s))
}

// AtcType is the facility type in an ATC position update.
type AtcType uint8

const (
	FacilityObserver AtcType = iota
	FacilityFSS
	FacilityDelivery
	FacilityGround
	FacilityTower
	FacilityApproach
	FacilityCentre
)

// ParseAtcType reads a single digit 0-6.
func ParseAtcType(s string) (AtcType, error) {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return AtcType(s[0] - '0'), nil
	}
	return 0, newParseError(InvalidAtcType, s)
}

func (t AtcType) String() string { return strconv.Itoa(int(t)) }

// TransponderMode is the first field of a pilot position update.
type TransponderMode string

const (
	ModeStandby TransponderMode = "S"
	ModeC       TransponderMode = "N"
	ModeIdent   TransponderMode = "Y"
)

// ParseTransponderMode is case sensitive.
func ParseTransponderMode(s string) (TransponderMode, error) {
	switch m := TransponderMode(s); m {
	case ModeStandby, ModeC, ModeIdent:
		return m, nil
	}
	return "", newParseError(InvalidTransponderMode, s)
}

// VoiceCapability is the voice type assigned to an aircraft. The empty
// value means unknown.
type VoiceCapability string

const (
	VoiceUnknown VoiceCapability = ""
	VoiceFull    VoiceCapability = "v"
	VoiceText    VoiceCapability = "t"
	VoiceReceive VoiceCapability = "r"
)

// ParseVoiceCapability accepts an empty value as VoiceUnknown.
func ParseVoiceCapability(s string) (VoiceCapability, error) {
	switch v := VoiceCapability(strings.ToLower(s)); v {
	case VoiceUnknown, VoiceFull, VoiceText, VoiceReceive:
		return v, nil
	}
	return "", newParseError(InvalidVoiceCapability, strings.ToLower(s))
}
