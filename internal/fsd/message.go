package fsd

// Kind names a message variant. The values are stable and safe to use as
// storage keys or subject tokens.
type Kind string

const (
	KindAtcRegister            Kind = "atc_register"
	KindPilotRegister          Kind = "pilot_register"
	KindAtcDeregister          Kind = "atc_deregister"
	KindPilotDeregister        Kind = "pilot_deregister"
	KindAtcPosition            Kind = "atc_position"
	KindAtcSecondaryVisCentre  Kind = "atc_secondary_vis_centre"
	KindPilotPosition          Kind = "pilot_position"
	KindAuthChallenge          Kind = "auth_challenge"
	KindAuthResponse           Kind = "auth_response"
	KindTextMessage            Kind = "text_message"
	KindFrequencyMessage       Kind = "frequency_message"
	KindChangeServer           Kind = "change_server"
	KindServerHandshake        Kind = "server_handshake"
	KindClientHandshake        Kind = "client_handshake"
	KindSendFastPositions      Kind = "send_fast_positions"
	KindVelocityStopped        Kind = "velocity_stopped"
	KindVelocitySlow           Kind = "velocity_slow"
	KindVelocityFast           Kind = "velocity_fast"
	KindKill                   Kind = "kill"
	KindMetarRequest           Kind = "metar_request"
	KindMetarResponse          Kind = "metar_response"
	KindPing                   Kind = "ping"
	KindPong                   Kind = "pong"
	KindPlaneInfoRequest       Kind = "plane_info_request"
	KindPlaneInfoResponse      Kind = "plane_info_response"
	KindFSInnPlaneInfoRequest  Kind = "fsinn_plane_info_request"
	KindFSInnPlaneInfoResponse Kind = "fsinn_plane_info_response"
	KindServerError            Kind = "server_error"
	KindFlightPlan             Kind = "flight_plan"
	KindFlightPlanAmendment    Kind = "flight_plan_amendment"
	KindHandoffOffer           Kind = "handoff_offer"
	KindHandoffAccept          Kind = "handoff_accept"
	KindClientQuery            Kind = "client_query"
	KindClientResponse         Kind = "client_response"
	KindSharedState            Kind = "shared_state"
	KindServerHeartbeat        Kind = "server_heartbeat"
)

// Message is one decoded line. The set of implementations is closed; switch
// on the concrete type to reach the fields.
type Message interface {
	Kind() Kind
	// Sender is the originating callsign.
	Sender() string
	// String renders the canonical wire line, without line terminator.
	String() string
	isMessage()
}

// Addressed is implemented by messages that name a recipient.
type Addressed interface {
	Message
	Recipient() string
}

// Recipient returns the addressee of m, or "" for broadcasts such as
// position updates.
func Recipient(m Message) string {
	if a, ok := m.(Addressed); ok {
		return a.Recipient()
	}
	return ""
}

// route is embedded by messages that carry from and to callsigns.
type route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func newRoute(from, to string) route {
	return route{From: upper(from), To: upper(to)}
}

func (r route) Sender() string    { return r.From }
func (r route) Recipient() string { return r.To }

// head renders "{prefix}{from}:{to}".
func (r route) head(prefix string) string {
	return prefix + r.From + ":" + r.To
}
