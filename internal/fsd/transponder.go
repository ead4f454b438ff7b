package fsd

import (
	"fmt"
	"strconv"
)

// TransponderCode is a squawk stored as four decimal digits, each an octal
// digit in 0-7. The value 4700 means squawk 4700.
type TransponderCode uint16

// NewTransponderCode validates every digit of code.
func NewTransponderCode(code uint16) (TransponderCode, error) {
	if code > 7777 {
		return 0, newParseError(InvalidTransponderCode, fmt.Sprintf("%04d", code))
	}
	for v := code; v > 0; v /= 10 {
		if v%10 > 7 {
			return 0, newParseError(InvalidTransponderCode, fmt.Sprintf("%04d", code))
		}
	}
	return TransponderCode(code), nil
}

// ParseTransponderCode reads the decimal wire form, e.g. "2200".
func ParseTransponderCode(s string) (TransponderCode, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, newParseError(InvalidTransponderCode, s)
	}
	code, err := NewTransponderCode(uint16(v))
	if err != nil {
		return 0, newParseError(InvalidTransponderCode, s)
	}
	return code, nil
}

func (c TransponderCode) String() string {
	return fmt.Sprintf("%04d", uint16(c))
}

// digits returns the four squawk digits, most significant first.
func (c TransponderCode) digits() [4]uint16 {
	v := uint16(c)
	return [4]uint16{v / 1000, v / 100 % 10, v / 10 % 10, v % 10}
}

// BCD packs the four digits into one nibble each, first digit in the high
// nibble, and renders the packed value in decimal. Squawk 2200 becomes
// 0x2200, written "8704".
func (c TransponderCode) BCD() string {
	d := c.digits()
	return strconv.FormatUint(uint64(d[0]<<12|d[1]<<8|d[2]<<4|d[3]), 10)
}

// ParseTransponderCodeBCD is the inverse of BCD.
func ParseTransponderCodeBCD(s string) (TransponderCode, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, newParseError(InvalidTransponderCode, s)
	}
	var code uint16
	for shift := 12; shift >= 0; shift -= 4 {
		nibble := uint16(v>>shift) & 0xf
		if nibble > 7 {
			return 0, newParseError(InvalidTransponderCode, s)
		}
		code = code*10 + nibble
	}
	return TransponderCode(code), nil
}
