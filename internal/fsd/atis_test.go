package fsd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewAtis(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		second  string
		want    NewAtis
		wantErr bool
	}{
		{"canonical", "ATIS B", "  31016KT - Q1022", NewAtis{"B", "31016KT", "Q1022"}, false},
		{"lower case", "atis k", "VRB03KT - q0998", NewAtis{"K", "VRB03KT", "Q0998"}, false},
		{"no separator", "ATIS A", "24010G20KT Q1013", NewAtis{"A", "24010G20KT", "Q1013"}, false},
		{"digit letter", "ATIS 1", "31016KT - Q1022", NewAtis{}, true},
		{"empty letter", "", "31016KT - Q1022", NewAtis{}, true},
		{"one group", "ATIS B", "31016KT", NewAtis{}, true},
		{"short wind", "ATIS B", "3101KT - Q1022", NewAtis{}, true},
		{"short pressure", "ATIS B", "31016KT - Q10", NewAtis{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNewAtis(tt.first, tt.second)
			if tt.wantErr {
				assert.ErrorIs(t, err, &ParseError{Kind: InvalidNewAtisMessage})
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewAtis_String(t *testing.T) {
	a := NewAtis{Letter: "B", Wind: "31016KT", Pressure: "Q1022"}
	assert.Equal(t, "ATIS B:  31016KT - Q1022", a.String())
}

func TestAtisLine(t *testing.T) {
	logoff := uint16(930)

	tests := []struct {
		name  string
		line  AtisLine
		wire  string
		check func(*testing.T, AtisLine)
	}{
		{
			name: "voice server",
			line: AtisVoiceServerLine("voice.example.net/egph_twr"),
			wire: "V:voice.example.net/egph_twr",
		},
		{
			name: "text",
			line: AtisTextLine("Edinburgh Tower"),
			wire: "T:Edinburgh Tower",
		},
		{
			name: "logoff padded",
			line: AtisLogoffLine(&logoff),
			wire: "Z:0930z",
			check: func(t *testing.T, l AtisLine) {
				require.NotNil(t, l.LogoffTime)
				assert.Equal(t, uint16(930), *l.LogoffTime)
			},
		},
		{
			name: "logoff unknown",
			line: AtisLogoffLine(nil),
			wire: "Z:z",
			check: func(t *testing.T, l AtisLine) {
				assert.Nil(t, l.LogoffTime)
			},
		},
		{
			name: "end",
			line: AtisEndLine(4),
			wire: "E:4",
			check: func(t *testing.T, l AtisLine) {
				assert.Equal(t, 4, l.LineCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wire, tt.line.String())

			fields := append([]string{"$CRA", "B", "ATIS"}, strings.SplitN(tt.wire, ":", 2)...)
			parsed, err := parseAtisLine(fields)
			require.NoError(t, err)
			assert.Equal(t, tt.line.Kind, parsed.Kind)
			assert.Equal(t, tt.wire, parsed.String())
			if tt.check != nil {
				tt.check(t, parsed)
			}
		})
	}
}
