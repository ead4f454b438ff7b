package fsd

import (
	"math"
	"strconv"
	"strings"
)

// ParseAltitude reads an altitude in feet. "FL350" is 35000, an empty field
// is 0. No other prefix is recognised. A flight level that does not fit in
// 32 bits of feet is an error.
func ParseAltitude(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	digits, flightLevel := s, false
	if len(s) >= 2 && strings.EqualFold(s[:2], "FL") {
		digits, flightLevel = s[2:], true
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, newParseError(InvalidAltitude, s)
	}
	if flightLevel {
		if v > math.MaxUint32/100 {
			return 0, newParseError(InvalidAltitude, s)
		}
		v *= 100
	}
	return uint32(v), nil
}
