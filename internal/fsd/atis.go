package fsd

import (
	"strconv"
	"strings"
)

// NewAtis is the summary a controller client broadcasts when its ATIS
// changes, e.g. "ATIS B:  31016KT - Q1022".
type NewAtis struct {
	Letter   string `json:"letter"`
	Wind     string `json:"wind"`
	Pressure string `json:"pressure"`
}

// ParseNewAtis reads the letter from the end of the first field and the
// wind and pressure groups from the second.
func ParseNewAtis(first, second string) (NewAtis, error) {
	first = upper(first)
	second = upper(strings.TrimSpace(second))
	bad := newParseError(InvalidNewAtisMessage, first+":"+second)

	if first == "" {
		return NewAtis{}, bad
	}
	letter := first[len(first)-1]
	if letter < 'A' || letter > 'Z' {
		return NewAtis{}, bad
	}

	groups := strings.FieldsFunc(second, func(r rune) bool { return r == ' ' || r == '-' })
	if len(groups) < 2 || len(groups[0]) < 7 || len(groups[1]) < 4 {
		return NewAtis{}, bad
	}
	return NewAtis{Letter: string(letter), Wind: groups[0], Pressure: groups[1]}, nil
}

func (a NewAtis) String() string {
	return "ATIS " + a.Letter + ":  " + a.Wind + " - " + a.Pressure
}

// AtisLineKind is the tag of one line in an ATIS response.
type AtisLineKind string

const (
	AtisVoiceServer AtisLineKind = "V"
	AtisText        AtisLineKind = "T"
	AtisLogoffTime  AtisLineKind = "Z"
	AtisEndMarker   AtisLineKind = "E"
)

// AtisLine is one line of a controller's ATIS reply. Which field is set
// depends on Kind.
type AtisLine struct {
	Kind       AtisLineKind `json:"kind"`
	Text       string       `json:"text,omitempty"`
	LogoffTime *uint16      `json:"logoff_time,omitempty"`
	LineCount  int          `json:"line_count,omitempty"`
}

func AtisVoiceServerLine(server string) AtisLine {
	return AtisLine{Kind: AtisVoiceServer, Text: server}
}

func AtisTextLine(text string) AtisLine {
	return AtisLine{Kind: AtisText, Text: text}
}

// AtisLogoffLine builds a logoff-time line; nil means no time given.
func AtisLogoffLine(hhmm *uint16) AtisLine {
	return AtisLine{Kind: AtisLogoffTime, LogoffTime: hhmm}
}

func AtisEndLine(count int) AtisLine {
	return AtisLine{Kind: AtisEndMarker, LineCount: count}
}

// parseAtisLine reads fields[3:] of a $CR ATIS response.
func parseAtisLine(fields []string) (AtisLine, error) {
	switch AtisLineKind(fields[3]) {
	case AtisVoiceServer:
		return AtisVoiceServerLine(fields[4]), nil
	case AtisText:
		return AtisTextLine(joinFields(fields[4:])), nil
	case AtisLogoffTime:
		raw := strings.TrimSuffix(fields[4], "z")
		if v, err := strconv.ParseUint(raw, 10, 16); err == nil {
			t := uint16(v)
			return AtisLogoffLine(&t), nil
		}
		return AtisLogoffLine(nil), nil
	case AtisEndMarker:
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return AtisLine{}, newParseError(InvalidAtisLine, fields[4])
		}
		return AtisEndLine(n), nil
	}
	return AtisLine{}, newParseError(InvalidAtisLine, fields[3])
}

func (l AtisLine) String() string {
	switch l.Kind {
	case AtisLogoffTime:
		if l.LogoffTime == nil {
			return "Z:z"
		}
		return "Z:" + pad4(*l.LogoffTime) + "z"
	case AtisEndMarker:
		return "E:" + strconv.Itoa(l.LineCount)
	default:
		return string(l.Kind) + ":" + l.Text
	}
}

func pad4(v uint16) string {
	s := strconv.FormatUint(uint64(v), 10)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
