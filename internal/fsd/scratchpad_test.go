package fsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScratchPad(t *testing.T) {
	tests := []struct {
		in   string
		want ScratchPad
	}{
		{"H270", ScratchPad{Kind: ScratchHeading, Value: 270}},
		{"R1500", ScratchPad{Kind: ScratchRateOfClimbDescent, Value: 1500}},
		{"S250", ScratchPad{Kind: ScratchSpeed, Value: 250}},
		{"M78", ScratchPad{Kind: ScratchMach, Value: 78}},
		{"/ASP+/", ScratchPad{Kind: ScratchSpeedOperator, Operator: OrGreater}},
		{"/ARC-/", ScratchPad{Kind: ScratchRateOperator, Operator: OrLess}},
		{"GRP/S/A12", ScratchPad{Kind: ScratchStand, Stand: "A12"}},
		{"GRP/S/", ScratchPad{Kind: ScratchCancelledStand}},
		{"GRP/M/EGLL/501", ScratchPad{Kind: ScratchManualStand, Airport: "EGLL", Stand: "501"}},
		{"GRP/M/", ScratchPad{Kind: ScratchCancelledManualStand}},
		{"CLEA", ScratchPad{Kind: ScratchClearanceReceived}},
		{"NOTC", ScratchPad{Kind: ScratchClearanceCancelled}},
		{"ST-UP", ScratchPad{Kind: ScratchGroundState, GroundState: Startup}},
		{"PUSH", ScratchPad{Kind: ScratchGroundState, GroundState: Pushback}},
		{"NOSTATE", ScratchPad{Kind: ScratchGroundState, GroundState: NoState}},
		{"HOLD", ScratchPad{Kind: ScratchPlainText, Text: "HOLD"}},
		{"", ScratchPad{Kind: ScratchPlainText}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScratchPad(tt.in))
		})
	}
}

func TestScratchPad_String(t *testing.T) {
	tests := []struct {
		name string
		sp   ScratchPad
		want string
	}{
		{"heading", ScratchPad{Kind: ScratchHeading, Value: 90}, "H90"},
		{"mach", ScratchPad{Kind: ScratchMach, Value: 82}, "M82"},
		{"exact speed", ScratchPad{Kind: ScratchSpeedOperator, Operator: Exactly}, "/ASP=/"},
		{"stand", ScratchPad{Kind: ScratchStand, Stand: "A12"}, "GRP/S/A12"},
		{"cancelled stand", ScratchPad{Kind: ScratchCancelledStand}, "GRP/S/"},
		{"manual stand", ScratchPad{Kind: ScratchManualStand, Airport: "EGLL", Stand: "501"}, "GRP/M/EGLL/501"},
		{"cancelled manual stand", ScratchPad{Kind: ScratchCancelledManualStand}, "GRP/M/"},
		{"startup canonical", ScratchPad{Kind: ScratchGroundState, GroundState: Startup}, "STUP"},
		{"plain", ScratchPad{Kind: ScratchPlainText, Text: "hello"}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sp.String())
		})
	}
}
