package fsd

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SimTimeLayout is the wire layout of SIMTIME queries, always UTC.
const SimTimeLayout = "20060102150405"

// Query is the payload of a $CQ line. String renders the tag and the
// fields after it.
type Query interface {
	Tag() string
	String() string
	isQuery()
}

// ClientQuery is a $CQ line.
type ClientQuery struct {
	route
	Query Query `json:"query"`
}

// NewClientQuery upper-cases the routing callsigns and any callsign the
// query refers to.
func NewClientQuery(from, to string, q Query) ClientQuery {
	if n, ok := q.(interface{ normalized() Query }); ok {
		q = n.normalized()
	}
	return ClientQuery{route: newRoute(from, to), Query: q}
}

func (ClientQuery) Kind() Kind { return KindClientQuery }
func (ClientQuery) isMessage() {}

func (m ClientQuery) String() string {
	return m.head(prefixClientQuery) + ":" + m.Query.String()
}

func (m ClientQuery) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		route
		Type  string `json:"type"`
		Query Query  `json:"query"`
	}{m.route, m.Query.Tag(), m.Query})
}

type (
	QueryCom1Freq              struct{}
	QueryPublicIP              struct{}
	QueryATIS                  struct{}
	QueryRealName              struct{}
	QueryServer                struct{}
	QueryRequestRelief         struct{}
	QueryCancelRequestRelief   struct{}
	QueryCapabilities          struct{}
	QueryINF                   struct{}
	QueryAircraftConfigRequest struct{}
)

func (QueryCom1Freq) Tag() string              { return "C?" }
func (QueryPublicIP) Tag() string              { return "IP" }
func (QueryATIS) Tag() string                  { return "ATIS" }
func (QueryRealName) Tag() string              { return "RN" }
func (QueryServer) Tag() string                { return "SV" }
func (QueryRequestRelief) Tag() string         { return "BY" }
func (QueryCancelRequestRelief) Tag() string   { return "HI" }
func (QueryCapabilities) Tag() string          { return "CAPS" }
func (QueryINF) Tag() string                   { return "INF" }
func (QueryAircraftConfigRequest) Tag() string { return "ACC" }

func (q QueryCom1Freq) String() string            { return q.Tag() }
func (q QueryPublicIP) String() string            { return q.Tag() }
func (q QueryATIS) String() string                { return q.Tag() }
func (q QueryRealName) String() string            { return q.Tag() }
func (q QueryServer) String() string              { return q.Tag() }
func (q QueryRequestRelief) String() string       { return q.Tag() }
func (q QueryCancelRequestRelief) String() string { return q.Tag() }
func (q QueryCapabilities) String() string        { return q.Tag() }
func (q QueryINF) String() string                 { return q.Tag() }

func (QueryAircraftConfigRequest) String() string { return `ACC:{"request":"full"}` }

func (QueryCom1Freq) isQuery()              {}
func (QueryPublicIP) isQuery()              {}
func (QueryATIS) isQuery()                  {}
func (QueryRealName) isQuery()              {}
func (QueryServer) isQuery()                {}
func (QueryRequestRelief) isQuery()         {}
func (QueryCancelRequestRelief) isQuery()   {}
func (QueryCapabilities) isQuery()          {}
func (QueryINF) isQuery()                   {}
func (QueryAircraftConfigRequest) isQuery() {}

// Queries naming a single aircraft or controller.
type (
	QueryIsValidATC    struct{ Callsign string `json:"callsign"` }
	QueryFlightPlan    struct{ Callsign string `json:"callsign"` }
	QueryWhoHas        struct{ Callsign string `json:"callsign"` }
	QueryInitiateTrack struct{ Callsign string `json:"callsign"` }
	QueryDropTrack     struct{ Callsign string `json:"callsign"` }
)

func (QueryIsValidATC) Tag() string    { return "ATC" }
func (QueryFlightPlan) Tag() string    { return "FP" }
func (QueryWhoHas) Tag() string        { return "WH" }
func (QueryInitiateTrack) Tag() string { return "IT" }
func (QueryDropTrack) Tag() string     { return "DR" }

func (q QueryIsValidATC) String() string    { return q.Tag() + ":" + q.Callsign }
func (q QueryFlightPlan) String() string    { return q.Tag() + ":" + q.Callsign }
func (q QueryWhoHas) String() string        { return q.Tag() + ":" + q.Callsign }
func (q QueryInitiateTrack) String() string { return q.Tag() + ":" + q.Callsign }
func (q QueryDropTrack) String() string     { return q.Tag() + ":" + q.Callsign }

func (q QueryIsValidATC) normalized() Query    { return QueryIsValidATC{upper(q.Callsign)} }
func (q QueryFlightPlan) normalized() Query    { return QueryFlightPlan{upper(q.Callsign)} }
func (q QueryWhoHas) normalized() Query        { return QueryWhoHas{upper(q.Callsign)} }
func (q QueryInitiateTrack) normalized() Query { return QueryInitiateTrack{upper(q.Callsign)} }
func (q QueryDropTrack) normalized() Query     { return QueryDropTrack{upper(q.Callsign)} }

func (QueryIsValidATC) isQuery()    {}
func (QueryFlightPlan) isQuery()    {}
func (QueryWhoHas) isQuery()        {}
func (QueryInitiateTrack) isQuery() {}
func (QueryDropTrack) isQuery()     {}

// QueryForceBeaconCode is the IPC:W:852 request that sets a pilot's
// squawk. The code travels in BCD form.
type QueryForceBeaconCode struct {
	Code TransponderCode `json:"code"`
}

func (QueryForceBeaconCode) Tag() string      { return "IPC" }
func (QueryForceBeaconCode) isQuery()         {}
func (q QueryForceBeaconCode) String() string { return "IPC:W:852:" + q.Code.BCD() }

// QueryHelpRequest and QueryCancelHelpRequest carry an optional message.
type QueryHelpRequest struct {
	Message string `json:"message,omitempty"`
}

type QueryCancelHelpRequest struct {
	Message string `json:"message,omitempty"`
}

func (QueryHelpRequest) Tag() string       { return "HLP" }
func (QueryCancelHelpRequest) Tag() string { return "NOHLP" }
func (QueryHelpRequest) isQuery()          {}
func (QueryCancelHelpRequest) isQuery()    {}

func (q QueryHelpRequest) String() string       { return withOptional(q.Tag(), q.Message) }
func (q QueryCancelHelpRequest) String() string { return withOptional(q.Tag(), q.Message) }

func withOptional(tag, s string) string {
	if s == "" {
		return tag
	}
	return tag + ":" + s
}

// QueryAcceptHandoff accepts the handoff of Aircraft from controller ATC.
type QueryAcceptHandoff struct {
	Aircraft string `json:"aircraft"`
	ATC      string `json:"atc"`
}

func (QueryAcceptHandoff) Tag() string { return "HT" }
func (QueryAcceptHandoff) isQuery()    {}

func (q QueryAcceptHandoff) String() string { return "HT:" + q.Aircraft + ":" + q.ATC }

func (q QueryAcceptHandoff) normalized() Query {
	return QueryAcceptHandoff{Aircraft: upper(q.Aircraft), ATC: upper(q.ATC)}
}

// Altitude assignments.
type QuerySetFinalAltitude struct {
	Callsign string `json:"callsign"`
	Altitude uint32 `json:"altitude"`
}

type QuerySetTempAltitude struct {
	Callsign string `json:"callsign"`
	Altitude uint32 `json:"altitude"`
}

func (QuerySetFinalAltitude) Tag() string { return "FA" }
func (QuerySetTempAltitude) Tag() string  { return "TA" }
func (QuerySetFinalAltitude) isQuery()    {}
func (QuerySetTempAltitude) isQuery()     {}

func (q QuerySetFinalAltitude) String() string {
	return "FA:" + q.Callsign + ":" + strconv.FormatUint(uint64(q.Altitude), 10)
}

func (q QuerySetTempAltitude) String() string {
	return "TA:" + q.Callsign + ":" + strconv.FormatUint(uint64(q.Altitude), 10)
}

func (q QuerySetFinalAltitude) normalized() Query {
	q.Callsign = upper(q.Callsign)
	return q
}

func (q QuerySetTempAltitude) normalized() Query {
	q.Callsign = upper(q.Callsign)
	return q
}

type QuerySetBeaconCode struct {
	Callsign string          `json:"callsign"`
	Code     TransponderCode `json:"code"`
}

func (QuerySetBeaconCode) Tag() string { return "BC" }
func (QuerySetBeaconCode) isQuery()    {}

func (q QuerySetBeaconCode) String() string { return "BC:" + q.Callsign + ":" + q.Code.String() }

func (q QuerySetBeaconCode) normalized() Query {
	q.Callsign = upper(q.Callsign)
	return q
}

type QuerySetScratchPad struct {
	Callsign string     `json:"callsign"`
	Contents ScratchPad `json:"contents"`
}

func (QuerySetScratchPad) Tag() string { return "SC" }
func (QuerySetScratchPad) isQuery()    {}

func (q QuerySetScratchPad) String() string { return "SC:" + q.Callsign + ":" + q.Contents.String() }

func (q QuerySetScratchPad) normalized() Query {
	q.Callsign = upper(q.Callsign)
	return q
}

type QuerySetVoiceType struct {
	Callsign string          `json:"callsign"`
	Voice    VoiceCapability `json:"voice"`
}

func (QuerySetVoiceType) Tag() string { return "VT" }
func (QuerySetVoiceType) isQuery()    {}

func (q QuerySetVoiceType) String() string { return "VT:" + q.Callsign + ":" + string(q.Voice) }

func (q QuerySetVoiceType) normalized() Query {
	q.Callsign = upper(q.Callsign)
	return q
}

// QueryAircraftConfigResponse carries a full or partial aircraft config.
type QueryAircraftConfigResponse struct {
	Config AircraftConfig `json:"config"`
}

func (QueryAircraftConfigResponse) Tag() string { return "ACC" }
func (QueryAircraftConfigResponse) isQuery()    {}

func (q QueryAircraftConfigResponse) String() string { return "ACC:" + q.Config.String() }

type QuerySimTime struct {
	Time time.Time `json:"time"`
}

func (QuerySimTime) Tag() string { return "SIMTIME" }
func (QuerySimTime) isQuery()    {}

func (q QuerySimTime) String() string { return "SIMTIME:" + q.Time.UTC().Format(SimTimeLayout) }

// QueryNewInfo announces a new ATIS letter.
type QueryNewInfo struct {
	Letter string `json:"letter"`
}

func (QueryNewInfo) Tag() string { return "NEWINFO" }
func (QueryNewInfo) isQuery()    {}

func (q QueryNewInfo) String() string { return "NEWINFO:" + q.Letter }

type QueryNewATIS struct {
	NewAtis
}

func (QueryNewATIS) Tag() string { return "NEWATIS" }
func (QueryNewATIS) isQuery()    {}

func (q QueryNewATIS) String() string { return "NEWATIS:" + q.NewAtis.String() }

// ParseClientQuery dispatches a $CQ line on field 2.
func ParseClientQuery(fields []string) (ClientQuery, error) {
	if err := minFields(fields, 3); err != nil {
		return ClientQuery{}, err
	}
	q, err := parseQuery(fields)
	if err != nil {
		return ClientQuery{}, err
	}
	return NewClientQuery(stripPrefix(fields[0], prefixClientQuery), fields[1], q), nil
}

func parseQuery(fields []string) (Query, error) {
	switch tag := fields[2]; tag {
	case "C?":
		return QueryCom1Freq{}, nil
	case "IP":
		return QueryPublicIP{}, nil
	case "ATIS":
		return QueryATIS{}, nil
	case "RN":
		return QueryRealName{}, nil
	case "SV":
		return QueryServer{}, nil
	case "BY":
		return QueryRequestRelief{}, nil
	case "HI":
		return QueryCancelRequestRelief{}, nil
	case "CAPS":
		return QueryCapabilities{}, nil
	case "INF":
		return QueryINF{}, nil
	case "HLP":
		return QueryHelpRequest{Message: fieldOr(fields, 3, "")}, nil
	case "NOHLP":
		return QueryCancelHelpRequest{Message: fieldOr(fields, 3, "")}, nil
	case "IPC":
		if err := minFields(fields, 6); err != nil {
			return nil, err
		}
		if fields[3] != "W" || fields[4] != "852" {
			return nil, newParseError(InvalidClientQueryType, joinFields(fields[2:5]))
		}
		code, err := ParseTransponderCodeBCD(fields[5])
		if err != nil {
			return nil, err
		}
		return QueryForceBeaconCode{Code: code}, nil
	case "ACC":
		if err := minFields(fields, 4); err != nil {
			return nil, err
		}
		if strings.Contains(fields[3], "request") {
			return QueryAircraftConfigRequest{}, nil
		}
		cfg, err := ParseAircraftConfig(joinFields(fields[3:]))
		if err != nil {
			return nil, err
		}
		return QueryAircraftConfigResponse{Config: cfg}, nil
	case "ATC", "FP", "WH", "DR", "IT":
		if err := minFields(fields, 4); err != nil {
			return nil, err
		}
		return subjectQuery(tag, fields[3]), nil
	case "SC", "FA", "TA", "BC", "VT", "HT":
		if err := minFields(fields, 5); err != nil {
			return nil, err
		}
		return parseAircraftQuery(tag, fields[3], fields[4])
	case "NEWATIS":
		if err := minFields(fields, 5); err != nil {
			return nil, err
		}
		atis, err := ParseNewAtis(fields[3], fields[4])
		if err != nil {
			return nil, err
		}
		return QueryNewATIS{atis}, nil
	case "NEWINFO":
		if err := minFields(fields, 4); err != nil {
			return nil, err
		}
		letter, err := parseAtisLetter(fields[3])
		if err != nil {
			return nil, err
		}
		return QueryNewInfo{Letter: letter}, nil
	case "SIMTIME":
		if err := minFields(fields, 4); err != nil {
			return nil, err
		}
		t, err := time.ParseInLocation(SimTimeLayout, fields[3], time.UTC)
		if err != nil {
			return nil, newParseError(InvalidTime, fields[3])
		}
		return QuerySimTime{Time: t}, nil
	default:
		return nil, newParseError(InvalidClientQueryType, tag)
	}
}

func subjectQuery(tag, callsign string) Query {
	callsign = upper(callsign)
	switch tag {
	case "ATC":
		return QueryIsValidATC{callsign}
	case "FP":
		return QueryFlightPlan{callsign}
	case "WH":
		return QueryWhoHas{callsign}
	case "DR":
		return QueryDropTrack{callsign}
	default:
		return QueryInitiateTrack{callsign}
	}
}

func parseAircraftQuery(tag, callsign, value string) (Query, error) {
	callsign = upper(callsign)
	switch tag {
	case "SC":
		return QuerySetScratchPad{Callsign: callsign, Contents: ParseScratchPad(value)}, nil
	case "FA", "TA":
		alt, err := ParseAltitude(value)
		if err != nil {
			return nil, err
		}
		if tag == "FA" {
			return QuerySetFinalAltitude{Callsign: callsign, Altitude: alt}, nil
		}
		return QuerySetTempAltitude{Callsign: callsign, Altitude: alt}, nil
	case "BC":
		code, err := ParseTransponderCode(value)
		if err != nil {
			return nil, err
		}
		return QuerySetBeaconCode{Callsign: callsign, Code: code}, nil
	case "VT":
		voice, err := ParseVoiceCapability(value)
		if err != nil {
			return nil, err
		}
		return QuerySetVoiceType{Callsign: callsign, Voice: voice}, nil
	default:
		return QueryAcceptHandoff{Aircraft: callsign, ATC: upper(value)}, nil
	}
}

func parseAtisLetter(s string) (string, error) {
	u := upper(s)
	if u == "" || u[len(u)-1] < 'A' || u[len(u)-1] > 'Z' {
		return "", newParseError(InvalidNewAtisMessage, s)
	}
	return u[len(u)-1:], nil
}
