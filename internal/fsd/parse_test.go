package fsd

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{"atc register", "#AAEGPH_M_APP:SERVER:Caspian:newcert:test:4:9", KindAtcRegister},
		{"pilot register", "#APEZY38UB:SERVER:1234567:pass:1:100:7:Joe Bloggs", KindPilotRegister},
		{"atc deregister", "#DAEGPH_APP:123456", KindAtcDeregister},
		{"pilot deregister", "#DPBAW123:1234567", KindPilotDeregister},
		{"atc position", "%EGPH_TWR:18100&18500:4:50:5:55.95000:-3.37250:100", KindAtcPosition},
		{"secondary vis centre", "'EGPH_TWR:1:55.90000:-3.30000", KindAtcSecondaryVisCentre},
		{"pilot position", "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12", KindPilotPosition},
		{"auth challenge", "$ZCSERVER:BAW123:abcdef", KindAuthChallenge},
		{"auth response", "$ZRBAW123:SERVER:123abc", KindAuthResponse},
		{"text message", "#TMBAW123:EGPH_TWR:hello: there", KindTextMessage},
		{"frequency message", "#TMEGPH_TWR:@18100&@18500:Hello all", KindFrequencyMessage},
		{"change server", "$XXSERVER:BAW123:fsd2.example.net", KindChangeServer},
		{"server handshake", "$DISERVER:CLIENT:VATSIM FSD V3.13:abc123", KindServerHandshake},
		{"client handshake", "$IDBAW123:SERVER:de1e:vPilot:3:8:1234567:987654321:abc", KindClientHandshake},
		{"client handshake without key", "$IDBAW123:SERVER:0001:vPilot:3:8:1234567:987654321", KindClientHandshake},
		{"send fast", "$SFSERVER:BAW123:1", KindSendFastPositions},
		{"velocity stopped", "#STBAW123:51.4770000:-0.4610000:83.00:0.00:1026", KindVelocityStopped},
		{"velocity stopped nose gear", "#STBAW123:51.4770000:-0.4610000:83.00:0.00:1026:12.50", KindVelocityStopped},
		{"velocity slow", "#SLBAW123:51.4770000:-0.4610000:3000.00:2900.00:1024:1.2500:-0.5000:3.0000:0.0000:0.0000:0.0000", KindVelocitySlow},
		{"velocity fast", "^BAW123:51.4770000:-0.4610000:3000.00:2900.00:1024:1.2500:-0.5000:3.0000:0.0100:0.0200:0.0300:-4.00", KindVelocityFast},
		{"kill with reason", "$!!SERVER:BAW123:Misbehaving", KindKill},
		{"kill", "$!!SERVER:BAW123", KindKill},
		{"metar request", "$AXBAW123:SERVER:METAR:EGLL", KindMetarRequest},
		{"metar response", "$ARSERVER:BAW123:METAR:EGLL 121250Z 24010KT 9999 FEW030 15/09 Q1013", KindMetarResponse},
		{"ping", "$PIBAW123:SERVER:1700000000", KindPing},
		{"pong", "$POSERVER:BAW123:1700000000", KindPong},
		{"plane info request", "#SBEGPH_TWR:BAW123:PIR", KindPlaneInfoRequest},
		{"plane info response", "#SBBAW123:EGPH_TWR:PI:GEN:EQUIPMENT=B738:AIRLINE=BAW:LIVERY=UNION", KindPlaneInfoResponse},
		{"fsinn request", "#SBEGPH_TWR:BAW123:FSIPIR", KindFSInnPlaneInfoRequest},
		{"server error", "$ERSERVER:BAW123:001::", KindServerError},
		{"server error with subject", "$ERSERVER:BAW123:007:KLM167:", KindServerError},
		{"server error other", "$ERSERVER:BAW123:018::Something odd", KindServerError},
		{"flight plan", "$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK:/v/:DCT", KindFlightPlan},
		{"flight plan amendment", "$AMEGPH_TWR:SERVER:BAW123:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK:/v/:DCT", KindFlightPlanAmendment},
		{"handoff offer", "$HOEGPH_APP:EGPH_TWR:BAW123", KindHandoffOffer},
		{"handoff accept", "$HAEGPH_TWR:EGPH_APP:BAW123", KindHandoffAccept},
		{"heartbeat", "#DLSERVER:*", KindServerHeartbeat},
		{"who has", "$CQEHAM_GND:@94835:WH:KLM167", KindClientQuery},
		{"com1 query", "$CQEGPH_TWR:BAW123:C?", KindClientQuery},
		{"force beacon code", "$CQSERVER:N194Q:IPC:W:852:8704", KindClientQuery},
		{"aircraft config request", `$CQEGPH_TWR:BAW123:ACC:{"request":"full"}`, KindClientQuery},
		{"aircraft config response", `$CQBAW123:@94835:ACC:{"config":{"is_full_data":true,"lights":{"strobe_on":false},"engines":{"1":{"on":true}},"gear_down":true}}`, KindClientQuery},
		{"accept handoff", "$CQEGPH_APP:@94835:HT:BAW123:EGPH_TWR", KindClientQuery},
		{"scratchpad", "$CQEGPH_APP:@94835:SC:BAW123:H270", KindClientQuery},
		{"final altitude", "$CQEGPH_APP:@94835:FA:BAW123:35000", KindClientQuery},
		{"beacon code", "$CQEGPH_APP:@94835:BC:BAW123:4721", KindClientQuery},
		{"voice type", "$CQEGPH_APP:@94835:VT:BAW123:v", KindClientQuery},
		{"help", "$CQEGPH_APP:@94835:HLP", KindClientQuery},
		{"help with message", "$CQEGPH_APP:@94835:HLP:need help", KindClientQuery},
		{"new atis", "$CQEGCC_ATIS:@94835:NEWATIS:ATIS B:  31016KT - Q1022", KindClientQuery},
		{"new info", "$CQEGCC_ATIS:@94835:NEWINFO:B", KindClientQuery},
		{"sim time", "$CQBAW123:SERVER:SIMTIME:20240102030405", KindClientQuery},
		{"com1 response", "$CRBAW123:EGPH_TWR:C?:118.300", KindClientResponse},
		{"atis voice", "$CREGPH_TWR:BAW123:ATIS:V:voice.example.net/egph_twr", KindClientResponse},
		{"atis text", "$CREGPH_TWR:BAW123:ATIS:T:Edinburgh tower: information B", KindClientResponse},
		{"atis logoff", "$CREGPH_TWR:BAW123:ATIS:Z:1830z", KindClientResponse},
		{"atis no logoff", "$CREGPH_TWR:BAW123:ATIS:Z:z", KindClientResponse},
		{"atis end", "$CREGPH_TWR:BAW123:ATIS:E:4", KindClientResponse},
		{"real name", "$CRBAW123:EGPH_TWR:RN:Joe Bloggs::1", KindClientResponse},
		{"valid atc", "$CRSERVER:EGPH_TWR:ATC:Y:EGPH_APP", KindClientResponse},
		{"capabilities", "$CRBAW123:EGPH_TWR:CAPS:VERSION=1:ATCINFO=1:MODELDESC=1", KindClientResponse},
		{"public ip", "$CRSERVER:BAW123:IP:192.0.2.10", KindClientResponse},
		{"shared version", "#PCEGPH_TWR:EGPH_APP:CCP:VER", KindSharedState},
		{"shared i have", "#PCEGPH_TWR:EGPH_APP:CCP:IH:BAW123", KindSharedState},
		{"shared scratchpad", "#PCEGPH_TWR:EGPH_APP:CCP:SC:BAW123:GRP/S/A12", KindSharedState},
		{"shared temp altitude", "#PCEGPH_TWR:EGPH_APP:CCP:TA:BAW123:6000", KindSharedState},
		{"shared beacon code", "#PCEGPH_TWR:EGPH_APP:CCP:BC:BAW123:7000", KindSharedState},
		{"shared flight strip", "#PCEGPH_TWR:EGPH_APP:CCP:ST:BAW123:1:RWY24:note", KindSharedState},
		{"shared flight strip bare", "#PCEGPH_TWR:EGPH_APP:CCP:ST:BAW123", KindSharedState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, msg.Kind())
			assert.Equal(t, tt.line, msg.String())
		})
	}
}

func TestParse_WhoHasScenario(t *testing.T) {
	msg, err := Parse("$CQEHAM_GND:@94835:WH:KLM167")
	require.NoError(t, err)

	cq, ok := msg.(ClientQuery)
	require.True(t, ok)
	assert.Equal(t, "EHAM_GND", cq.From)
	assert.Equal(t, AircraftHandlerRecipient, cq.To)
	assert.Equal(t, QueryWhoHas{Callsign: "KLM167"}, cq.Query)
}

func TestParse_BareDeregister(t *testing.T) {
	msg, err := Parse("#DAEGPH_APP")
	require.NoError(t, err)
	d, ok := msg.(AtcDeregister)
	require.True(t, ok)
	assert.Equal(t, "EGPH_APP", d.From)
	assert.Empty(t, d.CID)

	msg, err = Parse("#DAEGPH_APP:123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", msg.(AtcDeregister).CID)
}

func TestParse_NormalisesCallsigns(t *testing.T) {
	msg, err := Parse("$CQegph_app:@94835:ht:baw123:egph_twr")
	require.Error(t, err, "sub-tags are case sensitive")

	msg, err = Parse("$CQegph_app:server:HT:baw123:egph_twr")
	require.NoError(t, err)
	assert.Equal(t, "$CQEGPH_APP:SERVER:HT:BAW123:EGPH_TWR", msg.String())
	assert.Equal(t, "EGPH_APP", msg.Sender())
	assert.Equal(t, "SERVER", Recipient(msg))

	msg, err = Parse("#SBegph_twr:baw123:PIR")
	require.NoError(t, err)
	assert.Equal(t, "#SBEGPH_TWR:BAW123:PIR", msg.String())
}

func TestParse_Normalisation(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"classic protocol alias", "#APEZY38UB:SERVER:newcert::1:1:1", "#APEZY38UB:SERVER:newcert::1:9:1:"},
		{"flight level cruise", "$FPBAW123:*A:I:b738:450:egll:1200::FL350:egph:1:10:3:0:egpk:/v/:dct", "$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK:/v/:DCT"},
		{"metar upper-cased", "$ARSERVER:BAW123:METAR:egll 121250z", "$ARSERVER:BAW123:METAR:EGLL 121250Z"},
		{"atis letter and groups", "$CQEGCC_ATIS:@94835:NEWATIS:atis b:31016kt Q1022", "$CQEGCC_ATIS:@94835:NEWATIS:ATIS B:  31016KT - Q1022"},
		{"short frequency", "$CRBAW123:EGPH_TWR:C?:122.8", "$CRBAW123:EGPH_TWR:C?:122.800"},
		{"unknown server error code", "$ERSERVER:BAW123:042:x:odd", "$ERSERVER:BAW123:018::odd"},
		{"heartbeat without recipient", "#DLSERVER:", "#DLSERVER"},
		{"unknown capabilities dropped", "$CRBAW123:EGPH_TWR:CAPS:FOO=1:VERSION=1:STEALTH=0", "$CRBAW123:EGPH_TWR:CAPS:VERSION=1"},
		{"invalid frequencies dropped", "#TMEGPH_TWR:@18100&@99999:hi", "#TMEGPH_TWR:@18100:hi"},
		{"kill with empty reason", "$!!SERVER:BAW123:", "$!!SERVER:BAW123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.String())
		})
	}
}

func TestParse_KillCanonicalForm(t *testing.T) {
	msg, err := Parse("$!!SERVER:BAW123:")
	require.NoError(t, err)
	assert.Equal(t, NewKill("server", "baw123", ""), msg)

	again, err := Parse(msg.String())
	require.NoError(t, err)
	assert.Equal(t, msg, again)
	assert.Equal(t, msg.String(), again.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  ErrorKind
		value string
	}{
		{"unknown prefix", "XYZ:abc", UnknownMessageType, "XYZ:abc"},
		{"single unknown field", "#DLSERVER", UnknownMessageType, "#DLSERVER"},
		{"unknown plane info tag", "#SBA:B:XX", UnknownMessageType, "#SBA:B:XX"},
		{"unknown query", "$CQA:B:XYZ", InvalidClientQueryType, "XYZ"},
		{"unknown response", "$CRA:B:XYZ:1", InvalidClientQueryType, "XYZ"},
		{"unknown shared state", "#PCA:B:CCP:ZZ", InvalidSharedStateType, "ZZ"},
		{"bad squawk digit", "@N:BAW123:2289:1:51.47700:-0.46100:1500:250:1026:12", InvalidTransponderCode, "2289"},
		{"bad transponder mode", "@X:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:12", InvalidTransponderMode, "X"},
		{"bad pilot rating", "@N:BAW123:2200:9:51.47700:-0.46100:1500:250:1026:12", InvalidRating, "9"},
		{"bad altitude difference", "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:1026:abc", InvalidAltitudeDifference, "abc"},
		{"bad pbh", "@N:BAW123:2200:1:51.47700:-0.46100:1500:250:-3:12", InvalidPitchBankHeading, "-3"},
		{"bad ground speed", "@N:BAW123:2200:1:51.47700:-0.46100:1500:fast:1026:12", InvalidSpeed, "fast"},
		{"bad coordinate", "%EGPH_TWR:18100:4:50:5:abc:-3.37250", InvalidCoordinate, "abc"},
		{"bad vis range", "%EGPH_TWR:18100:4:-50:5:55.9:-3.3", InvalidVisRange, "-50"},
		{"bad facility", "%EGPH_TWR:18100:9:50:5:55.9:-3.3", InvalidAtcType, "9"},
		{"bad index", "'EGPH_TWR:x:55.9:-3.3", InvalidIndex, "x"},
		{"bad protocol", "#AAEGPH:SERVER:n:c:p:4:7", InvalidProtocolRevision, "7"},
		{"bad atc rating", "#AAEGPH:SERVER:n:c:p:13:9", InvalidRating, "13"},
		{"bad client id", "$IDBAW123:SERVER:zz:vPilot:3:8:1:2", InvalidClientID, "zz"},
		{"bad version", "$IDBAW123:SERVER:de1e:vPilot:three:8:1:2", InvalidVersionNumber, "three"},
		{"bad server error", "$ERA:B:abc::", InvalidServerError, "abc"},
		{"bad ping", "$PIA:B:-1", InvalidPingTime, "-1"},
		{"bad velocity", "#SLBAW123:51.4:-0.4:3000:2900:1024:x:0:0:0:0:0", InvalidPositionVelocity, "x"},
		{"bad nose gear", "#STBAW123:51.4:-0.4:83:0:1026:left", InvalidNosewheelAngle, "left"},
		{"bad velocity altitude", "#STBAW123:51.4:-0.4:high:0:1026", InvalidAltitude, "high"},
		{"bad flight rules", "$FPBAW123:*A:X:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK::DCT", InvalidFlightRules, "X"},
		{"bad minutes", "$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:60:3:0:EGPK::DCT", InvalidMinute, "60"},
		{"bad filed speed", "$FPBAW123:*A:I:B738:fast:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK::DCT", InvalidSpeed, "fast"},
		{"bad cruise", "$FPBAW123:*A:I:B738:450:EGLL:1200:0:FLxx:EGPH:1:10:3:0:EGPK::DCT", InvalidAltitude, "FLxx"},
		{"bad ipc marker", "$CQSERVER:N194Q:IPC:W:853:8704", InvalidClientQueryType, "IPC:W:853"},
		{"bad bcd nibble", "$CQSERVER:N194Q:IPC:W:852:8712", InvalidTransponderCode, "8712"},
		{"bad aircraft config", "$CQBAW123:@94835:ACC:{\"lights\":{}}", InvalidAircraftConfig, "{\"lights\":{}}"},
		{"bad sim time", "$CQBAW123:SERVER:SIMTIME:2024-01-02", InvalidTime, "2024-01-02"},
		{"bad new info", "$CQEGCC_ATIS:@94835:NEWINFO:1", InvalidNewAtisMessage, "1"},
		{"bad voice type", "$CQEGPH_APP:@94835:VT:BAW123:x", InvalidVoiceCapability, "x"},
		{"bad atc status", "$CRSERVER:EGPH_TWR:ATC:Q:EGPH_APP", InvalidAtcStatus, "Q"},
		{"bad atis line tag", "$CREGPH_TWR:BAW123:ATIS:Q:x", InvalidAtisLine, "Q"},
		{"bad atis line count", "$CREGPH_TWR:BAW123:ATIS:E:many", InvalidAtisLine, "many"},
		{"bad frequency", "$CRBAW123:EGPH_TWR:C?:108.100", InvalidFrequency, "108.100"},
		{"bad real name rating", "$CRBAW123:EGPH_TWR:RN:Joe::x", InvalidRating, "x"},
		{"bad shared altitude", "#PCEGPH_TWR:EGPH_APP:CCP:TA:BAW123:high", InvalidAltitude, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.line)
			require.Error(t, err)
			assert.Nil(t, msg)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.value, perr.Value)
			assert.ErrorIs(t, err, &ParseError{Kind: tt.kind})
		})
	}
}

func TestParse_FieldCount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
		found    int
	}{
		{"atc register", "#AAEGPH:SERVER:x", 7, 3},
		{"pilot position", "@N:BAW123:2200", 10, 3},
		{"flight plan too short", "$FPBAW123:*A:I", 17, 3},
		{"flight plan too long", "$FPBAW123:*A:I:B738:450:EGLL:1200:0:35000:EGPH:1:10:3:0:EGPK::DCT:extra", 17, 18},
		{"amendment", "$AMA:B:C:I", 18, 4},
		{"plane info", "#SBA:B", 3, 2},
		{"plane info response", "#SBA:B:PI:GEN", 5, 4},
		{"velocity slow", "#SLBAW123:1:2:3:4:5", 12, 6},
		{"client response", "$CRA:B:IP", 4, 3},
		{"ipc", "$CQA:B:IPC:W", 6, 4},
		{"handoff query", "$CQA:B:HT:BAW123", 5, 4},
		{"shared scratchpad", "#PCA:B:CCP:SC:BAW123", 6, 5},
		{"server error", "$ERA:B:001", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			var fcerr *FieldCountError
			require.True(t, errors.As(err, &fcerr), "got %T: %v", err, err)
			assert.Equal(t, tt.expected, fcerr.Expected)
			assert.Equal(t, tt.found, fcerr.Found)
		})
	}
}

func TestParse_PilotPositionFields(t *testing.T) {
	msg, err := Parse("@Y:baw123:7000:3:51.47700:-0.46100:1500:250:1026:-20")
	require.NoError(t, err)

	pp := msg.(PilotPosition)
	assert.Equal(t, "BAW123", pp.Callsign)
	assert.Equal(t, ModeIdent, pp.Mode)
	assert.Equal(t, TransponderCode(7000), pp.Squawk)
	assert.Equal(t, PilotIFR, pp.Rating)
	assert.InDelta(t, 1480.0, pp.PressureAltitude, 1e-9)
	assert.InDelta(t, 90.0, pp.Heading, 1e-9)
	assert.True(t, pp.OnGround)
	assert.Empty(t, Recipient(pp))
}

func TestPilotPosition_SaturatesAltitudes(t *testing.T) {
	tests := []struct {
		name      string
		trueAlt   float64
		pressure  float64
		wantTrue  string
		wantDelta string
	}{
		{"truncates toward zero", 1500.9, 1480.2, "1500", "-20"},
		{"above int32", 1e12, 1e12 - 20, "2147483647", "-20"},
		{"below int32", -1e12, 0, "-2147483648", "2147483647"},
		{"not a number", math.NaN(), math.NaN(), "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := NewPilotPosition("baw1", ModeC, TransponderCode(2000), PilotStudent,
				51.5, -0.5, tt.trueAlt, tt.pressure, 250, Orientation{})

			fields := strings.Split(pp.String(), ":")
			require.Len(t, fields, 10)
			assert.Equal(t, tt.wantTrue, fields[6])
			assert.Equal(t, tt.wantDelta, fields[9])
		})
	}
}

func TestVelocitySlow_Fast(t *testing.T) {
	msg, err := Parse("#SLbaw123:51.4770000:-0.4610000:3000.00:2900.00:1024:1.2500:-0.5000:3.0000:0.0000:0.0000:0.0000:3.00")
	require.NoError(t, err)

	fast := msg.(VelocitySlow).Fast()
	assert.Equal(t, KindVelocityFast, fast.Kind())
	assert.Equal(t, "^BAW123:51.4770000:-0.4610000:3000.00:2900.00:1024:1.2500:-0.5000:3.0000:0.0000:0.0000:0.0000:3.00", fast.String())
}

func TestNewMessages_Encode(t *testing.T) {
	squawk, err := NewTransponderCode(2200)
	require.NoError(t, err)

	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"ping", NewPing("baw123", ServerCallsign, 42), "$PIBAW123:SERVER:42"},
		{"pong reply", NewPing("baw123", ServerCallsign, 42).Reply(), "$POSERVER:BAW123:42"},
		{"text to data channel", NewFrequencyMessage("egph_twr", []RadioFrequency{DataChannelFrequency()}, "hi"), "#TMEGPH_TWR:@49999:hi"},
		{"force squawk", NewClientQuery("server", "baw123", QueryForceBeaconCode{Code: squawk}), "$CQSERVER:BAW123:IPC:W:852:8704"},
		{"scratchpad mach", NewSharedState("egph_twr", "egph_app", SharedScratchPad{Callsign: "baw1", Contents: ScratchPad{Kind: ScratchMach, Value: 78}}), "#PCEGPH_TWR:EGPH_APP:CCP:SC:BAW1:M78"},
		{"valid atc", NewClientResponse("server", "egph_twr", ResponseIsValidATC{Callsign: "egph_app", Valid: false}), "$CRSERVER:EGPH_TWR:ATC:N:EGPH_APP"},
		{"no such callsign", NewServerErrorMessage("server", "baw1", ServerError{Code: NoSuchCallsign, Subject: "klm1"}), "$ERSERVER:BAW1:007:KLM1:"},
		{"logoff unknown", NewClientResponse("egph_twr", "baw1", ResponseATIS{Line: AtisLogoffLine(nil)}), "$CREGPH_TWR:BAW1:ATIS:Z:z"},
		{"kill", NewKill("server", "baw1", ""), "$!!SERVER:BAW1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.String())
		})
	}
}
