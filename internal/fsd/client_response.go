package fsd

import (
	"encoding/json"
	"strconv"
)

// Response is the payload of a $CR line.
type Response interface {
	Tag() string
	String() string
	isResponse()
}

// ClientResponse is a $CR line answering a ClientQuery.
type ClientResponse struct {
	route
	Response Response `json:"response"`
}

// NewClientResponse wraps r in a $CR envelope.
func NewClientResponse(from, to string, r Response) ClientResponse {
	if v, ok := r.(ResponseIsValidATC); ok {
		v.Callsign = upper(v.Callsign)
		r = v
	}
	return ClientResponse{route: newRoute(from, to), Response: r}
}

func (ClientResponse) Kind() Kind { return KindClientResponse }
func (ClientResponse) isMessage() {}

func (m ClientResponse) String() string {
	return m.head(prefixClientResponse) + ":" + m.Response.String()
}

func (m ClientResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		route
		Type     string   `json:"type"`
		Response Response `json:"response"`
	}{m.route, m.Response.Tag(), m.Response})
}

// ResponseCom1Freq reports the primary radio frequency in dotted form.
type ResponseCom1Freq struct {
	Frequency RadioFrequency `json:"frequency"`
}

func (ResponseCom1Freq) Tag() string      { return "C?" }
func (ResponseCom1Freq) isResponse()      {}
func (r ResponseCom1Freq) String() string { return "C?:" + r.Frequency.Human() }

// ResponseATIS is one line of a controller's ATIS. A full ATIS arrives as
// several responses closed by an end marker.
type ResponseATIS struct {
	Line AtisLine `json:"line"`
}

func (ResponseATIS) Tag() string      { return "ATIS" }
func (ResponseATIS) isResponse()      {}
func (r ResponseATIS) String() string { return "ATIS:" + r.Line.String() }

type ResponseRealName struct {
	Name       string `json:"name"`
	SectorFile string `json:"sector_file"`
	Rating     uint8  `json:"rating"`
}

func (ResponseRealName) Tag() string { return "RN" }
func (ResponseRealName) isResponse() {}

func (r ResponseRealName) String() string {
	return "RN:" + r.Name + ":" + r.SectorFile + ":" + strconv.Itoa(int(r.Rating))
}

type ResponseCapabilities struct {
	Capabilities CapabilitySet `json:"capabilities"`
}

func (ResponseCapabilities) Tag() string      { return "CAPS" }
func (ResponseCapabilities) isResponse()      {}
func (r ResponseCapabilities) String() string { return "CAPS:" + r.Capabilities.String() }

type ResponsePublicIP struct {
	Address string `json:"address"`
}

func (ResponsePublicIP) Tag() string      { return "IP" }
func (ResponsePublicIP) isResponse()      {}
func (r ResponsePublicIP) String() string { return "IP:" + r.Address }

type ResponseServer struct {
	Hostname string `json:"hostname"`
}

func (ResponseServer) Tag() string      { return "SV" }
func (ResponseServer) isResponse()      {}
func (r ResponseServer) String() string { return "SV:" + r.Hostname }

// ResponseIsValidATC answers whether Callsign is a controller.
type ResponseIsValidATC struct {
	Callsign string `json:"callsign"`
	Valid    bool   `json:"valid"`
}

func (ResponseIsValidATC) Tag() string { return "ATC" }
func (ResponseIsValidATC) isResponse() {}

func (r ResponseIsValidATC) String() string {
	flag := "N"
	if r.Valid {
		flag = "Y"
	}
	return "ATC:" + flag + ":" + r.Callsign
}

// ParseClientResponse dispatches a $CR line on field 2.
func ParseClientResponse(fields []string) (ClientResponse, error) {
	if err := minFields(fields, 4); err != nil {
		return ClientResponse{}, err
	}
	r, err := parseResponse(fields)
	if err != nil {
		return ClientResponse{}, err
	}
	return NewClientResponse(stripPrefix(fields[0], prefixClientResponse), fields[1], r), nil
}

func parseResponse(fields []string) (Response, error) {
	switch tag := fields[2]; tag {
	case "C?":
		freq, err := ParseHumanFrequency(fields[3])
		if err != nil {
			return nil, err
		}
		return ResponseCom1Freq{Frequency: freq}, nil
	case "ATIS":
		if err := minFields(fields, 5); err != nil {
			return nil, err
		}
		line, err := parseAtisLine(fields)
		if err != nil {
			return nil, err
		}
		return ResponseATIS{Line: line}, nil
	case "RN":
		if err := minFields(fields, 6); err != nil {
			return nil, err
		}
		rating, err := strconv.ParseUint(fields[5], 10, 8)
		if err != nil {
			return nil, newParseError(InvalidRating, fields[5])
		}
		return ResponseRealName{Name: fields[3], SectorFile: fields[4], Rating: uint8(rating)}, nil
	case "IP":
		return ResponsePublicIP{Address: fields[3]}, nil
	case "SV":
		return ResponseServer{Hostname: fields[3]}, nil
	case "ATC":
		if err := minFields(fields, 5); err != nil {
			return nil, err
		}
		var valid bool
		switch upper(fields[3]) {
		case "Y":
			valid = true
		case "N":
		default:
			return nil, newParseError(InvalidAtcStatus, fields[3])
		}
		return ResponseIsValidATC{Callsign: upper(fields[4]), Valid: valid}, nil
	case "CAPS":
		return ResponseCapabilities{Capabilities: ReadCapabilities(fields[3:])}, nil
	default:
		return nil, newParseError(InvalidClientQueryType, tag)
	}
}
