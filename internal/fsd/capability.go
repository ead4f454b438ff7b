package fsd

import (
	"encoding/json"
	"strings"
)

// Capability is a feature a client advertises in a CAPS response.
type Capability string

const (
	CapVersion      Capability = "VERSION"
	CapATCInfo      Capability = "ATCINFO"
	CapModelDesc    Capability = "MODELDESC"
	CapACConfig     Capability = "ACCONFIG"
	CapVisUpdate    Capability = "VISUPDATE"
	CapRadarUpdate  Capability = "RADARUPDATE"
	CapATCMulti     Capability = "ATCMULTI"
	CapSecPos       Capability = "SECPOS"
	CapIcaoEq       Capability = "ICAOEQ"
	CapFastPos      Capability = "FASTPOS"
	CapOngoingCoord Capability = "ONGOINGCOORD"
	CapInterimPos   Capability = "INTERIMPOS"
	CapStealth      Capability = "STEALTH"
	CapTeamspeak    Capability = "TEAMSPEAK"
	CapNewATIS      Capability = "NEWATIS"
	CapMumble       Capability = "MUMBLE"
	CapGlobalData   Capability = "GLOBALDATA"
	CapSimulated    Capability = "SIMULATED"
	CapObsPilot     Capability = "OBSPILOT"
)

// allCapabilities fixes the order used when a set is written.
var allCapabilities = []Capability{
	CapVersion, CapATCInfo, CapModelDesc, CapACConfig, CapVisUpdate,
	CapRadarUpdate, CapATCMulti, CapSecPos, CapIcaoEq, CapFastPos,
	CapOngoingCoord, CapInterimPos, CapStealth, CapTeamspeak, CapNewATIS,
	CapMumble, CapGlobalData, CapSimulated, CapObsPilot,
}

var knownCapabilities = func() map[Capability]bool {
	m := make(map[Capability]bool, len(allCapabilities))
	for _, c := range allCapabilities {
		m[c] = true
	}
	return m
}()

// ParseCapability reads one capability tag, ignoring case.
func ParseCapability(s string) (Capability, error) {
	c := Capability(upper(s))
	if !knownCapabilities[c] {
		return "", newParseError(InvalidClientCapability, s)
	}
	return c, nil
}

// CapabilitySet is an unordered set of capabilities.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet returns a set holding caps.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// ReadCapabilities reads KEY=VALUE fields, keeping keys whose value is "1".
// Unknown keys are dropped.
func ReadCapabilities(fields []string) CapabilitySet {
	set := make(CapabilitySet, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || v != "1" {
			continue
		}
		if c, err := ParseCapability(k); err == nil {
			set[c] = struct{}{}
		}
	}
	return set
}

// List returns the members in a stable order.
func (s CapabilitySet) List() []Capability {
	list := make([]Capability, 0, len(s))
	for _, c := range allCapabilities {
		if s.Has(c) {
			list = append(list, c)
		}
	}
	return list
}

// String writes "K=1:K=1".
func (s CapabilitySet) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s.List() {
		parts = append(parts, string(c)+"=1")
	}
	return joinFields(parts)
}

func (s CapabilitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}
