package fsd

import (
	"fmt"
	"strconv"
	"strings"
)

// RadioFrequency is an airband frequency split into its whole-MHz and
// thousandths parts: 118.300 is {118, 300}.
type RadioFrequency struct {
	MHz uint16 `json:"mhz"`
	KHz uint16 `json:"khz"`
}

// NewRadioFrequency accepts 118-137 MHz and the two reserved data channels
// 199.998 and 149.999.
func NewRadioFrequency(mhz, khz uint16) (RadioFrequency, error) {
	ok := (mhz >= 118 && mhz <= 137) ||
		(mhz == 199 && khz == 998) ||
		(mhz == 149 && khz == 999)
	if !ok || khz > 999 {
		return RadioFrequency{}, newParseError(InvalidFrequency, fmt.Sprintf("%d.%03d", mhz, khz))
	}
	return RadioFrequency{MHz: mhz, KHz: khz}, nil
}

// ParseHumanFrequency reads the dotted form, e.g. "118.300". Fewer than
// three decimals are padded.
func ParseHumanFrequency(s string) (RadioFrequency, error) {
	left, right, ok := strings.Cut(s, ".")
	if !ok || right == "" || len(right) > 3 {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	// "122.8" means 122.800
	right += strings.Repeat("0", 3-len(right))
	mhz, err := strconv.ParseUint(left, 10, 16)
	if err != nil {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	khz, err := strconv.ParseUint(right, 10, 16)
	if err != nil {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	return NewRadioFrequency(uint16(mhz), uint16(khz))
}

// ParseCompactFrequency reads the five character wire form, e.g. "18300".
func ParseCompactFrequency(s string) (RadioFrequency, error) {
	if len(s) != 5 {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	mhz, err := strconv.ParseUint(s[:2], 10, 16)
	if err != nil {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	khz, err := strconv.ParseUint(s[2:], 10, 16)
	if err != nil {
		return RadioFrequency{}, newParseError(InvalidFrequency, s)
	}
	return NewRadioFrequency(uint16(mhz)+100, uint16(khz))
}

// Human returns the dotted form.
func (f RadioFrequency) Human() string {
	return fmt.Sprintf("%d.%03d", f.MHz, f.KHz)
}

// Compact returns the five character wire form.
func (f RadioFrequency) Compact() string {
	return fmt.Sprintf("%d%03d", f.MHz-100, f.KHz)
}

func (f RadioFrequency) String() string { return f.Human() }

// SplitFrequencies reads a list such as "@18300&@28150" or "18300&28150".
// Entries that are not valid compact frequencies are dropped.
func SplitFrequencies(s string) []RadioFrequency {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '&' || r == '@' })
	freqs := make([]RadioFrequency, 0, len(parts))
	for _, p := range parts {
		if f, err := ParseCompactFrequency(p); err == nil {
			freqs = append(freqs, f)
		}
	}
	return freqs
}

// JoinFrequencies renders compact frequencies joined by '&', each prefixed
// with the data-channel marker when withMarker is set.
func JoinFrequencies(freqs []RadioFrequency, withMarker bool) string {
	var b strings.Builder
	for i, f := range freqs {
		if i > 0 {
			b.WriteByte('&')
		}
		if withMarker {
			b.WriteString(DataChannelMarker)
		}
		b.WriteString(f.Compact())
	}
	return b.String()
}
