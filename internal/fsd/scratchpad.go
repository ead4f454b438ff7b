package fsd

import (
	"strconv"
	"strings"
)

// Operator qualifies an assigned speed or rate.
type Operator byte

const (
	Exactly   Operator = '='
	OrLess    Operator = '-'
	OrGreater Operator = '+'
)

func (o Operator) String() string { return string(o) }

// GroundState is a ground-handling status shared through the scratchpad.
type GroundState string

const (
	NoState     GroundState = "NSTS"
	OnFrequency GroundState = "ONFREQ"
	DeIcing     GroundState = "DE-ICE"
	Startup     GroundState = "STUP"
	Pushback    GroundState = "PUSH"
	Taxi        GroundState = "TAXI"
	LineUp      GroundState = "LINEUP"
	TakeOff     GroundState = "DEPA"
	TaxiIn      GroundState = "TXIN"
	OnBlock     GroundState = "PARK"
)

// ScratchPadKind selects which field of ScratchPad is meaningful.
type ScratchPadKind int

const (
	ScratchPlainText ScratchPadKind = iota
	ScratchRateOfClimbDescent
	ScratchHeading
	ScratchSpeed
	ScratchMach
	ScratchSpeedOperator
	ScratchRateOperator
	ScratchStand
	ScratchCancelledStand
	ScratchManualStand
	ScratchCancelledManualStand
	ScratchClearanceReceived
	ScratchClearanceCancelled
	ScratchGroundState
)

// ScratchPad is one decoded scratchpad entry.
type ScratchPad struct {
	Kind        ScratchPadKind `json:"kind"`
	Text        string         `json:"text,omitempty"`
	Value       uint32         `json:"value,omitempty"`
	Operator    Operator       `json:"operator,omitempty"`
	Airport     string         `json:"airport,omitempty"`
	Stand       string         `json:"stand,omitempty"`
	GroundState GroundState    `json:"ground_state,omitempty"`
}

var scratchLiterals = map[string]ScratchPad{
	"/ASP=/":  {Kind: ScratchSpeedOperator, Operator: Exactly},
	"/ASP-/":  {Kind: ScratchSpeedOperator, Operator: OrLess},
	"/ASP+/":  {Kind: ScratchSpeedOperator, Operator: OrGreater},
	"/ARC=/":  {Kind: ScratchRateOperator, Operator: Exactly},
	"/ARC-/":  {Kind: ScratchRateOperator, Operator: OrLess},
	"/ARC+/":  {Kind: ScratchRateOperator, Operator: OrGreater},
	"GRP/S/":  {Kind: ScratchCancelledStand},
	"GRP/M/":  {Kind: ScratchCancelledManualStand},
	"NSTS":    {Kind: ScratchGroundState, GroundState: NoState},
	"NOSTATE": {Kind: ScratchGroundState, GroundState: NoState},
	"ONFREQ":  {Kind: ScratchGroundState, GroundState: OnFrequency},
	"DE-ICE":  {Kind: ScratchGroundState, GroundState: DeIcing},
	"STUP":    {Kind: ScratchGroundState, GroundState: Startup},
	"ST-UP":   {Kind: ScratchGroundState, GroundState: Startup},
	"PUSH":    {Kind: ScratchGroundState, GroundState: Pushback},
	"TAXI":    {Kind: ScratchGroundState, GroundState: Taxi},
	"LINEUP":  {Kind: ScratchGroundState, GroundState: LineUp},
	"TXIN":    {Kind: ScratchGroundState, GroundState: TaxiIn},
	"DEPA":    {Kind: ScratchGroundState, GroundState: TakeOff},
	"PARK":    {Kind: ScratchGroundState, GroundState: OnBlock},
	"CLEA":    {Kind: ScratchClearanceReceived},
	"NOTC":    {Kind: ScratchClearanceCancelled},
}

var scratchNumeric = []struct {
	prefix byte
	kind   ScratchPadKind
}{
	{'H', ScratchHeading},
	{'R', ScratchRateOfClimbDescent},
	{'S', ScratchSpeed},
	{'M', ScratchMach},
}

// ParseScratchPad never fails: text outside the mini-language is kept as
// ScratchPlainText. The order of checks matters since several tokens are
// prefixes of others.
func ParseScratchPad(s string) ScratchPad {
	if s != "" {
		for _, n := range scratchNumeric {
			if s[0] != n.prefix {
				continue
			}
			if v, err := strconv.ParseUint(s[1:], 10, 32); err == nil {
				return ScratchPad{Kind: n.kind, Value: uint32(v)}
			}
		}
	}
	if len(s) > 6 && strings.HasPrefix(s, "GRP/S/") {
		return ScratchPad{Kind: ScratchStand, Stand: s[6:]}
	}
	if len(s) > 6 && strings.HasPrefix(s, "GRP/M/") {
		airport, stand, _ := strings.Cut(s[6:], "/")
		return ScratchPad{Kind: ScratchManualStand, Airport: airport, Stand: stand}
	}
	if sp, ok := scratchLiterals[s]; ok {
		return sp
	}
	return ScratchPad{Kind: ScratchPlainText, Text: s}
}

func (sp ScratchPad) String() string {
	switch sp.Kind {
	case ScratchHeading:
		return "H" + strconv.FormatUint(uint64(sp.Value), 10)
	case ScratchRateOfClimbDescent:
		return "R" + strconv.FormatUint(uint64(sp.Value), 10)
	case ScratchSpeed:
		return "S" + strconv.FormatUint(uint64(sp.Value), 10)
	case ScratchMach:
		return "M" + strconv.FormatUint(uint64(sp.Value), 10)
	case ScratchSpeedOperator:
		return "/ASP" + sp.Operator.String() + "/"
	case ScratchRateOperator:
		return "/ARC" + sp.Operator.String() + "/"
	case ScratchStand:
		return "GRP/S/" + sp.Stand
	case ScratchCancelledStand:
		return "GRP/S/"
	case ScratchManualStand:
		return "GRP/M/" + sp.Airport + "/" + sp.Stand
	case ScratchCancelledManualStand:
		return "GRP/M/"
	case ScratchClearanceReceived:
		return "CLEA"
	case ScratchClearanceCancelled:
		return "NOTC"
	case ScratchGroundState:
		return string(sp.GroundState)
	default:
		return sp.Text
	}
}
