package fsd

// PlaneInfoRequest asks a pilot client for its model description.
type PlaneInfoRequest struct{ route }

// NewPlaneInfoRequest asks the recipient for its aircraft model.
func NewPlaneInfoRequest(from, to string) PlaneInfoRequest {
	return PlaneInfoRequest{newRoute(from, to)}
}

// ParsePlaneInfoRequest reads a #SB PIR line.
func ParsePlaneInfoRequest(fields []string) (PlaneInfoRequest, error) {
	if err := minFields(fields, 3); err != nil {
		return PlaneInfoRequest{}, err
	}
	return NewPlaneInfoRequest(stripPrefix(fields[0], prefixPlaneInfo), fields[1]), nil
}

func (PlaneInfoRequest) Kind() Kind { return KindPlaneInfoRequest }
func (PlaneInfoRequest) isMessage() {}

func (m PlaneInfoRequest) String() string {
	return m.head(prefixPlaneInfo) + ":PIR"
}

// PlaneInfoResponse answers a PlaneInfoRequest.
type PlaneInfoResponse struct {
	route
	Info PlaneInfo `json:"info"`
}

// NewPlaneInfoResponse answers a plane info request.
func NewPlaneInfoResponse(from, to string, info PlaneInfo) PlaneInfoResponse {
	return PlaneInfoResponse{route: newRoute(from, to), Info: info}
}

// ParsePlaneInfoResponse reads the KEY=VALUE fields after PI:GEN.
func ParsePlaneInfoResponse(fields []string) (PlaneInfoResponse, error) {
	if err := minFields(fields, 5); err != nil {
		return PlaneInfoResponse{}, err
	}
	return NewPlaneInfoResponse(stripPrefix(fields[0], prefixPlaneInfo), fields[1], ParsePlaneInfo(fields[4:])), nil
}

func (PlaneInfoResponse) Kind() Kind { return KindPlaneInfoResponse }
func (PlaneInfoResponse) isMessage() {}

func (m PlaneInfoResponse) String() string {
	return m.head(prefixPlaneInfo) + ":PI:GEN:" + m.Info.String()
}

// FSInnPlaneInfoRequest and FSInnPlaneInfoResponse are recognised so that
// FSInn traffic is not reported as unknown. Their payload is not decoded.
type FSInnPlaneInfoRequest struct{ route }

type FSInnPlaneInfoResponse struct{ route }

func (FSInnPlaneInfoRequest) Kind() Kind { return KindFSInnPlaneInfoRequest }
func (FSInnPlaneInfoRequest) isMessage() {}

func (m FSInnPlaneInfoRequest) String() string {
	return m.head(prefixPlaneInfo) + ":FSIPIR"
}

func (FSInnPlaneInfoResponse) Kind() Kind { return KindFSInnPlaneInfoResponse }
func (FSInnPlaneInfoResponse) isMessage() {}

func (m FSInnPlaneInfoResponse) String() string {
	return m.head(prefixPlaneInfo) + ":FSIPI"
}

// parsePlaneInfo dispatches a #SB line on its third field.
func parsePlaneInfo(fields []string) (Message, error) {
	if err := minFields(fields, 3); err != nil {
		return nil, err
	}
	switch fields[2] {
	case "PIR":
		return asMessage(ParsePlaneInfoRequest(fields))
	case "PI":
		return asMessage(ParsePlaneInfoResponse(fields))
	case "FSIPI":
		return FSInnPlaneInfoResponse{newRoute(stripPrefix(fields[0], prefixPlaneInfo), fields[1])}, nil
	case "FSIPIR":
		return FSInnPlaneInfoRequest{newRoute(stripPrefix(fields[0], prefixPlaneInfo), fields[1])}, nil
	}
	return nil, newParseError(UnknownMessageType, joinFields(fields))
}
