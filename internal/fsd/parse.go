package fsd

import "strings"

type parseFunc func(fields []string) (Message, error)

// wrap adapts a typed parser to the dispatch table.
func wrap[T Message](parse func([]string) (T, error)) parseFunc {
	return func(fields []string) (Message, error) {
		return asMessage(parse(fields))
	}
}

func asMessage[T Message](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

type dispatchEntry struct {
	prefix string
	parse  parseFunc
}

// dispatch is checked in order and the first matching prefix wins.
var dispatch = []dispatchEntry{
	{prefixAtcDeregister, wrap(ParseAtcDeregister)},
	{prefixPilotDeregister, wrap(ParsePilotDeregister)},
	{prefixAtcRegister, wrap(ParseAtcRegister)},
	{prefixPilotRegister, wrap(ParsePilotRegister)},
	{prefixAtcPosition, wrap(ParseAtcPosition)},
	{prefixSecondaryVisCentre, wrap(ParseAtcSecondaryVisCentre)},
	{prefixPilotPosition, wrap(ParsePilotPosition)},
	{prefixAuthChallenge, wrap(ParseAuthChallenge)},
	{prefixAuthResponse, wrap(ParseAuthResponse)},
	{prefixServerError, wrap(ParseServerErrorMessage)},
	{prefixHandoffOffer, wrap(ParseHandoffOffer)},
	{prefixHandoffAccept, wrap(ParseHandoffAccept)},
	{prefixTextMessage, parseTextOrFrequency},
	{prefixChangeServer, wrap(ParseChangeServer)},
	{prefixFlightPlan, wrap(ParseFlightPlanMessage)},
	{prefixFlightPlanAmendment, wrap(ParseFlightPlanAmendment)},
	{prefixServerHandshake, wrap(ParseServerHandshake)},
	{prefixClientHandshake, wrap(ParseClientHandshake)},
	{prefixSendFast, wrap(ParseSendFastPositions)},
	{prefixVelocityStopped, wrap(ParseVelocityStopped)},
	{prefixHeartbeat, wrap(ParseServerHeartbeat)},
	{prefixVelocitySlow, wrap(ParseVelocitySlow)},
	{prefixSharedState, wrap(ParseSharedState)},
	{prefixVelocityFast, wrap(ParseVelocityFast)},
	{prefixKill, wrap(ParseKill)},
	{prefixMetarRequest, wrap(ParseMetarRequest)},
	{prefixMetarResponse, wrap(ParseMetarResponse)},
	{prefixClientQuery, wrap(ParseClientQuery)},
	{prefixClientResponse, wrap(ParseClientResponse)},
	{prefixPing, wrap(ParsePing)},
	{prefixPong, wrap(ParsePong)},
	{prefixPlaneInfo, parsePlaneInfo},
}

func parseTextOrFrequency(fields []string) (Message, error) {
	if isFrequencyRecipient(fields[1]) {
		return asMessage(ParseFrequencyMessage(fields))
	}
	return asMessage(ParseTextMessage(fields))
}

// Parse decodes one line. The line must not contain its terminator.
func Parse(line string) (Message, error) {
	return ParseFields(strings.Split(line, ":"))
}

// ParseFields decodes a line that has already been split on ':'.
//
// A single field can only be a bare deregistration; anything else that
// short, or any line whose prefix is not recognised, yields a ParseError of
// kind UnknownMessageType carrying the whole line.
func ParseFields(fields []string) (Message, error) {
	if len(fields) == 0 {
		return nil, newParseError(UnknownMessageType, "")
	}
	first := fields[0]

	if len(fields) < 2 {
		switch {
		case strings.HasPrefix(first, prefixAtcDeregister):
			return asMessage(ParseAtcDeregister(fields))
		case strings.HasPrefix(first, prefixPilotDeregister):
			return asMessage(ParsePilotDeregister(fields))
		}
		return nil, newParseError(UnknownMessageType, first)
	}

	for _, d := range dispatch {
		if strings.HasPrefix(first, d.prefix) {
			return d.parse(fields)
		}
	}
	return nil, newParseError(UnknownMessageType, joinFields(fields))
}
