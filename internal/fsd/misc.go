package fsd

import (
	"fmt"
	"strconv"
)

// MetarRequest asks the server for a station's current METAR.
type MetarRequest struct {
	route
	Station string `json:"station"`
}

// NewMetarRequest asks the server for the METAR of station.
func NewMetarRequest(from, to, station string) MetarRequest {
	return MetarRequest{route: newRoute(from, to), Station: upper(station)}
}

// ParseMetarRequest reads a $AX line.
func ParseMetarRequest(fields []string) (MetarRequest, error) {
	if err := minFields(fields, 4); err != nil {
		return MetarRequest{}, err
	}
	return NewMetarRequest(stripPrefix(fields[0], prefixMetarRequest), fields[1], fields[3]), nil
}

func (MetarRequest) Kind() Kind { return KindMetarRequest }
func (MetarRequest) isMessage() {}

func (m MetarRequest) String() string {
	return m.head(prefixMetarRequest) + ":METAR:" + m.Station
}

// MetarResponse carries the raw METAR text, upper-cased.
type MetarResponse struct {
	route
	Metar string `json:"metar"`
}

// NewMetarResponse carries a METAR back to the requester.
func NewMetarResponse(from, to, metar string) MetarResponse {
	return MetarResponse{route: newRoute(from, to), Metar: upper(metar)}
}

// ParseMetarResponse reads the report that follows the METAR tag.
func ParseMetarResponse(fields []string) (MetarResponse, error) {
	if err := minFields(fields, 4); err != nil {
		return MetarResponse{}, err
	}
	return NewMetarResponse(stripPrefix(fields[0], prefixMetarResponse), fields[1], fields[3]), nil
}

func (MetarResponse) Kind() Kind { return KindMetarResponse }
func (MetarResponse) isMessage() {}

func (m MetarResponse) String() string {
	return m.head(prefixMetarResponse) + ":METAR:" + m.Metar
}

func parseTimestamp(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, newParseError(InvalidPingTime, s)
	}
	return v, nil
}

// Ping is answered with a Pong carrying the same timestamp.
type Ping struct {
	route
	Timestamp uint64 `json:"timestamp"`
}

// NewPing builds a $PI line carrying ts.
func NewPing(from, to string, ts uint64) Ping {
	return Ping{route: newRoute(from, to), Timestamp: ts}
}

// ParsePing requires a numeric timestamp.
func ParsePing(fields []string) (Ping, error) {
	if err := minFields(fields, 3); err != nil {
		return Ping{}, err
	}
	ts, err := parseTimestamp(fields[2])
	if err != nil {
		return Ping{}, err
	}
	return NewPing(stripPrefix(fields[0], prefixPing), fields[1], ts), nil
}

func (Ping) Kind() Kind { return KindPing }
func (Ping) isMessage() {}

func (m Ping) String() string {
	return m.head(prefixPing) + ":" + strconv.FormatUint(m.Timestamp, 10)
}

// Reply builds the Pong that answers m.
func (m Ping) Reply() Pong {
	return NewPong(m.To, m.From, m.Timestamp)
}

type Pong struct {
	route
	Timestamp uint64 `json:"timestamp"`
}

// NewPong builds a $PO line. See Ping.Reply.
func NewPong(from, to string, ts uint64) Pong {
	return Pong{route: newRoute(from, to), Timestamp: ts}
}

// ParsePong requires a numeric timestamp.
func ParsePong(fields []string) (Pong, error) {
	if err := minFields(fields, 3); err != nil {
		return Pong{}, err
	}
	ts, err := parseTimestamp(fields[2])
	if err != nil {
		return Pong{}, err
	}
	return NewPong(stripPrefix(fields[0], prefixPong), fields[1], ts), nil
}

func (Pong) Kind() Kind { return KindPong }
func (Pong) isMessage() {}

func (m Pong) String() string {
	return m.head(prefixPong) + ":" + strconv.FormatUint(m.Timestamp, 10)
}

// HandoffOffer proposes transferring an aircraft to another controller.
type HandoffOffer struct {
	route
	Aircraft string `json:"aircraft"`
}

// NewHandoffOffer offers aircraft from one controller to another.
func NewHandoffOffer(from, to, aircraft string) HandoffOffer {
	return HandoffOffer{route: newRoute(from, to), Aircraft: upper(aircraft)}
}

// ParseHandoffOffer reads a $HO line.
func ParseHandoffOffer(fields []string) (HandoffOffer, error) {
	if err := minFields(fields, 3); err != nil {
		return HandoffOffer{}, err
	}
	return NewHandoffOffer(stripPrefix(fields[0], prefixHandoffOffer), fields[1], fields[2]), nil
}

func (HandoffOffer) Kind() Kind { return KindHandoffOffer }
func (HandoffOffer) isMessage() {}

func (m HandoffOffer) String() string {
	return m.head(prefixHandoffOffer) + ":" + m.Aircraft
}

type HandoffAccept struct {
	route
	Aircraft string `json:"aircraft"`
}

// NewHandoffAccept accepts a handoff of aircraft.
func NewHandoffAccept(from, to, aircraft string) HandoffAccept {
	return HandoffAccept{route: newRoute(from, to), Aircraft: upper(aircraft)}
}

// ParseHandoffAccept reads a $HA line.
func ParseHandoffAccept(fields []string) (HandoffAccept, error) {
	if err := minFields(fields, 3); err != nil {
		return HandoffAccept{}, err
	}
	return NewHandoffAccept(stripPrefix(fields[0], prefixHandoffAccept), fields[1], fields[2]), nil
}

func (HandoffAccept) Kind() Kind { return KindHandoffAccept }
func (HandoffAccept) isMessage() {}

func (m HandoffAccept) String() string {
	return m.head(prefixHandoffAccept) + ":" + m.Aircraft
}

// ServerHeartbeat is the #DL keep-alive. It has no payload; the callsigns
// are kept so the line re-encodes unchanged.
type ServerHeartbeat struct {
	route
}

// NewServerHeartbeat builds a #DL line; to may be empty.
func NewServerHeartbeat(from, to string) ServerHeartbeat {
	return ServerHeartbeat{newRoute(from, to)}
}

// ParseServerHeartbeat accepts a #DL line with or without a recipient.
func ParseServerHeartbeat(fields []string) (ServerHeartbeat, error) {
	if err := minFields(fields, 1); err != nil {
		return ServerHeartbeat{}, err
	}
	return NewServerHeartbeat(stripPrefix(fields[0], prefixHeartbeat), fieldOr(fields, 1, "")), nil
}

func (ServerHeartbeat) Kind() Kind { return KindServerHeartbeat }
func (ServerHeartbeat) isMessage() {}

func (m ServerHeartbeat) String() string {
	if m.To == "" {
		return prefixHeartbeat + m.From
	}
	return m.head(prefixHeartbeat)
}

// ServerErrorMessage is a $ER line. The error travels as a ServerError.
type ServerErrorMessage struct {
	route
	Err ServerError `json:"error"`
}

// NewServerErrorMessage wraps serr in a $ER line.
func NewServerErrorMessage(from, to string, serr ServerError) ServerErrorMessage {
	if serr.Code.HasSubject() {
		serr.Subject = upper(serr.Subject)
	}
	return ServerErrorMessage{route: newRoute(from, to), Err: serr}
}

// ParseServerErrorMessage maps unknown codes to OtherServerError.
func ParseServerErrorMessage(fields []string) (ServerErrorMessage, error) {
	if err := minFields(fields, 5); err != nil {
		return ServerErrorMessage{}, err
	}
	code, err := strconv.ParseUint(fields[2], 10, 8)
	if err != nil {
		return ServerErrorMessage{}, newParseError(InvalidServerError, fields[2])
	}
	return NewServerErrorMessage(stripPrefix(fields[0], prefixServerError), fields[1],
		serverErrorFromCode(uint8(code), fields[3], fields[4])), nil
}

func (ServerErrorMessage) Kind() Kind { return KindServerError }
func (ServerErrorMessage) isMessage() {}

// String writes the subject for codes 7-9 and the text for other errors.
func (m ServerErrorMessage) String() string {
	var detail, text string
	switch {
	case m.Err.Code.HasSubject():
		detail = m.Err.Subject
	case m.Err.Code == OtherServerError:
		text = m.Err.Text
	}
	return fmt.Sprintf("%s:%03d:%s:%s", m.head(prefixServerError), uint8(m.Err.Code), detail, text)
}

// FlightPlanMessage files a flight plan. The sender is the aircraft itself.
type FlightPlanMessage struct {
	Callsign string     `json:"callsign"`
	To       string     `json:"to"`
	Plan     FlightPlan `json:"plan"`
}

// NewFlightPlanMessage files plan for callsign.
func NewFlightPlanMessage(callsign, to string, plan FlightPlan) FlightPlanMessage {
	return FlightPlanMessage{Callsign: upper(callsign), To: upper(to), Plan: plan}
}

// ParseFlightPlanMessage reads a $FP line.
func ParseFlightPlanMessage(fields []string) (FlightPlanMessage, error) {
	if err := exactFields(fields, 2+FlightPlanFieldCount); err != nil {
		return FlightPlanMessage{}, err
	}
	plan, err := ParseFlightPlan(fields[2:])
	if err != nil {
		return FlightPlanMessage{}, err
	}
	return NewFlightPlanMessage(stripPrefix(fields[0], prefixFlightPlan), fields[1], plan), nil
}

func (FlightPlanMessage) Kind() Kind          { return KindFlightPlan }
func (FlightPlanMessage) isMessage()          {}
func (m FlightPlanMessage) Sender() string    { return m.Callsign }
func (m FlightPlanMessage) Recipient() string { return m.To }

func (m FlightPlanMessage) String() string {
	return prefixFlightPlan + m.Callsign + ":" + m.To + ":" + m.Plan.String()
}

// FlightPlanAmendment is sent by a controller to change another aircraft's
// plan.
type FlightPlanAmendment struct {
	route
	Callsign string     `json:"callsign"`
	Plan     FlightPlan `json:"plan"`
}

// NewFlightPlanAmendment replaces the plan of callsign.
func NewFlightPlanAmendment(from, to, callsign string, plan FlightPlan) FlightPlanAmendment {
	return FlightPlanAmendment{route: newRoute(from, to), Callsign: upper(callsign), Plan: plan}
}

// ParseFlightPlanAmendment reads a $AM line.
func ParseFlightPlanAmendment(fields []string) (FlightPlanAmendment, error) {
	if err := exactFields(fields, 3+FlightPlanFieldCount); err != nil {
		return FlightPlanAmendment{}, err
	}
	plan, err := ParseFlightPlan(fields[3:])
	if err != nil {
		return FlightPlanAmendment{}, err
	}
	return NewFlightPlanAmendment(stripPrefix(fields[0], prefixFlightPlanAmendment), fields[1], fields[2], plan), nil
}

func (FlightPlanAmendment) Kind() Kind { return KindFlightPlanAmendment }
func (FlightPlanAmendment) isMessage() {}

func (m FlightPlanAmendment) String() string {
	return m.head(prefixFlightPlanAmendment) + ":" + m.Callsign + ":" + m.Plan.String()
}
