package fsd

import (
	"fmt"
	"strconv"
)

// FlightPlanFieldCount is the number of positional fields in a flight plan.
const FlightPlanFieldCount = 15

// FlightPlan is the fixed tail of $FP and $AM lines.
type FlightPlan struct {
	Rules        FlightRules `json:"rules"`
	AircraftType string      `json:"aircraft_type"`
	FiledTAS     uint16      `json:"filed_tas"`
	Origin       string      `json:"origin"`
	ETD          uint16      `json:"etd"`
	ATD          uint16      `json:"atd"`
	CruiseLevel  uint32      `json:"cruise_level"`
	Destination  string      `json:"destination"`
	HoursEnroute uint8       `json:"hours_enroute"`
	MinsEnroute  uint8       `json:"mins_enroute"`
	HoursFuel    uint8       `json:"hours_fuel"`
	MinsFuel     uint8       `json:"mins_fuel"`
	Alternate    string      `json:"alternate"`
	Remarks      string      `json:"remarks"`
	Route        string      `json:"route"`
}

// Normalize upper-cases the aircraft type, airports and route. Remarks are
// free text and left alone.
func (fp FlightPlan) Normalize() FlightPlan {
	fp.AircraftType = upper(fp.AircraftType)
	fp.Origin = upper(fp.Origin)
	fp.Destination = upper(fp.Destination)
	fp.Alternate = upper(fp.Alternate)
	fp.Route = upper(fp.Route)
	return fp
}

// ParseFlightPlan reads exactly FlightPlanFieldCount fields. Empty numeric
// fields read as zero.
func ParseFlightPlan(fields []string) (FlightPlan, error) {
	if err := exactFields(fields, FlightPlanFieldCount); err != nil {
		return FlightPlan{}, err
	}

	rules, err := ParseFlightRules(fields[0])
	if err != nil {
		return FlightPlan{}, err
	}
	tas, err := optionalUint(fields[2], 16, InvalidSpeed)
	if err != nil {
		return FlightPlan{}, err
	}
	etd, err := optionalUint(fields[4], 16, InvalidTime)
	if err != nil {
		return FlightPlan{}, err
	}
	atd, err := optionalUint(fields[5], 16, InvalidTime)
	if err != nil {
		return FlightPlan{}, err
	}
	cruise, err := ParseAltitude(fields[6])
	if err != nil {
		return FlightPlan{}, err
	}
	hoursEnroute, err := optionalUint(fields[8], 8, InvalidTime)
	if err != nil {
		return FlightPlan{}, err
	}
	minsEnroute, err := parseMinutes(fields[9])
	if err != nil {
		return FlightPlan{}, err
	}
	hoursFuel, err := optionalUint(fields[10], 8, InvalidTime)
	if err != nil {
		return FlightPlan{}, err
	}
	minsFuel, err := parseMinutes(fields[11])
	if err != nil {
		return FlightPlan{}, err
	}

	return FlightPlan{
		Rules:        rules,
		AircraftType: fields[1],
		FiledTAS:     uint16(tas),
		Origin:       fields[3],
		ETD:          uint16(etd),
		ATD:          uint16(atd),
		CruiseLevel:  cruise,
		Destination:  fields[7],
		HoursEnroute: uint8(hoursEnroute),
		MinsEnroute:  minsEnroute,
		HoursFuel:    uint8(hoursFuel),
		MinsFuel:     minsFuel,
		Alternate:    fields[12],
		Remarks:      fields[13],
		Route:        fields[14],
	}.Normalize(), nil
}

func optionalUint(s string, bits int, kind ErrorKind) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, newParseError(kind, s)
	}
	return v, nil
}

func parseMinutes(s string) (uint8, error) {
	v, err := optionalUint(s, 8, InvalidTime)
	if err != nil {
		return 0, err
	}
	if v > 59 {
		return 0, newParseError(InvalidMinute, s)
	}
	return uint8(v), nil
}

func (fp FlightPlan) String() string {
	return fmt.Sprintf("%s:%s:%d:%s:%d:%d:%d:%s:%d:%d:%d:%d:%s:%s:%s",
		fp.Rules, fp.AircraftType, fp.FiledTAS, fp.Origin, fp.ETD, fp.ATD,
		fp.CruiseLevel, fp.Destination, fp.HoursEnroute, fp.MinsEnroute,
		fp.HoursFuel, fp.MinsFuel, fp.Alternate, fp.Remarks, fp.Route)
}
