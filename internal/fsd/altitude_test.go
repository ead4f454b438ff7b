package fsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAltitude(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"FL350", 35000, false},
		{"fl100", 10000, false},
		{"6000", 6000, false},
		{"", 0, false},
		{"FL", 0, true},
		{"A040", 0, true},
		{"-100", 0, true},
		{"FL35O", 0, true},
		{"FL42949672", 4294967200, false},
		{"FL42949673", 0, true},
		{"4294967296", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAltitude(tt.in)
			if tt.wantErr {
				var perr *ParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, InvalidAltitude, perr.Kind)
				assert.Equal(t, tt.in, perr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
