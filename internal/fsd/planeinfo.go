package fsd

import "strings"

// PlaneInfo is the model description sent in a #SB PI:GEN response.
// Empty fields are omitted on the wire.
type PlaneInfo struct {
	Equipment string `json:"equipment,omitempty"`
	Airline   string `json:"airline,omitempty"`
	Livery    string `json:"livery,omitempty"`
}

// ParsePlaneInfo reads KEY=VALUE fields. Unknown keys and fields without
// '=' are ignored.
func ParsePlaneInfo(fields []string) PlaneInfo {
	var pi PlaneInfo
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		switch upper(k) {
		case "EQUIPMENT":
			pi.Equipment = v
		case "AIRLINE":
			pi.Airline = v
		case "LIVERY":
			pi.Livery = v
		}
	}
	return pi
}

func (pi PlaneInfo) String() string {
	parts := make([]string, 0, 3)
	if pi.Equipment != "" {
		parts = append(parts, "EQUIPMENT="+pi.Equipment)
	}
	if pi.Airline != "" {
		parts = append(parts, "AIRLINE="+pi.Airline)
	}
	if pi.Livery != "" {
		parts = append(parts, "LIVERY="+pi.Livery)
	}
	return joinFields(parts)
}
