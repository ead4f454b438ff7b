package fsd

import "strings"

const (
	// ServerCallsign addresses the relay server itself.
	ServerCallsign = "SERVER"

	// AircraftHandlerRecipient is the data-channel recipient used by
	// controller clients when talking about aircraft.
	AircraftHandlerRecipient = "@94835"

	// DataChannelMarker prefixes a frequency recipient.
	DataChannelMarker = "@"
)

// DataChannelFrequency returns the reserved non-voice channel, 149.999,
// used for ATC text.
func DataChannelFrequency() RadioFrequency {
	return RadioFrequency{MHz: 149, KHz: 999}
}

// Line prefixes, in the order the dispatcher checks them.
const (
	prefixAtcDeregister       = "#DA"
	prefixPilotDeregister     = "#DP"
	prefixAtcRegister         = "#AA"
	prefixPilotRegister       = "#AP"
	prefixAtcPosition         = "%"
	prefixSecondaryVisCentre  = "'"
	prefixPilotPosition       = "@"
	prefixAuthChallenge       = "$ZC"
	prefixAuthResponse        = "$ZR"
	prefixServerError         = "$ER"
	prefixHandoffOffer        = "$HO"
	prefixHandoffAccept       = "$HA"
	prefixTextMessage         = "#TM"
	prefixChangeServer        = "$XX"
	prefixFlightPlan          = "$FP"
	prefixFlightPlanAmendment = "$AM"
	prefixServerHandshake     = "$DI"
	prefixClientHandshake     = "$ID"
	prefixSendFast            = "$SF"
	prefixVelocityStopped     = "#ST"
	prefixHeartbeat           = "#DL"
	prefixVelocitySlow        = "#SL"
	prefixSharedState         = "#PC"
	prefixVelocityFast        = "^"
	prefixKill                = "$!!"
	prefixMetarRequest        = "$AX"
	prefixMetarResponse       = "$AR"
	prefixClientQuery         = "$CQ"
	prefixClientResponse      = "$CR"
	prefixPing                = "$PI"
	prefixPong                = "$PO"
	prefixPlaneInfo           = "#SB"
)

func upper(s string) string { return strings.ToUpper(s) }

// stripPrefix removes a known prefix from field 0.
func stripPrefix(field0, prefix string) string {
	return strings.TrimPrefix(field0, prefix)
}

func joinFields(fields []string) string {
	return strings.Join(fields, ":")
}

func fieldOr(fields []string, i int, def string) string {
	if i < len(fields) {
		return fields[i]
	}
	return def
}
