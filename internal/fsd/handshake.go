package fsd

import (
	"fmt"
	"strconv"
)

// AuthChallenge carries a server or client authentication challenge.
type AuthChallenge struct {
	route
	Challenge string `json:"challenge"`
}

// NewAuthChallenge builds a $ZC line.
func NewAuthChallenge(from, to, challenge string) AuthChallenge {
	return AuthChallenge{route: newRoute(from, to), Challenge: challenge}
}

// ParseAuthChallenge reads from, to and the challenge.
func ParseAuthChallenge(fields []string) (AuthChallenge, error) {
	if err := minFields(fields, 3); err != nil {
		return AuthChallenge{}, err
	}
	return NewAuthChallenge(stripPrefix(fields[0], prefixAuthChallenge), fields[1], fields[2]), nil
}

func (AuthChallenge) Kind() Kind { return KindAuthChallenge }
func (AuthChallenge) isMessage() {}

func (m AuthChallenge) String() string {
	return m.head(prefixAuthChallenge) + ":" + m.Challenge
}

// AuthResponse answers an AuthChallenge.
type AuthResponse struct {
	route
	Response string `json:"response"`
}

// NewAuthResponse answers a challenge.
func NewAuthResponse(from, to, response string) AuthResponse {
	return AuthResponse{route: newRoute(from, to), Response: response}
}

// ParseAuthResponse reads a $ZR line.
func ParseAuthResponse(fields []string) (AuthResponse, error) {
	if err := minFields(fields, 3); err != nil {
		return AuthResponse{}, err
	}
	return NewAuthResponse(stripPrefix(fields[0], prefixAuthResponse), fields[1], fields[2]), nil
}

func (AuthResponse) Kind() Kind { return KindAuthResponse }
func (AuthResponse) isMessage() {}

func (m AuthResponse) String() string {
	return m.head(prefixAuthResponse) + ":" + m.Response
}

// ChangeServer tells a client to reconnect to another host.
type ChangeServer struct {
	route
	Hostname string `json:"hostname"`
}

// NewChangeServer tells the recipient to reconnect to hostname.
func NewChangeServer(from, to, hostname string) ChangeServer {
	return ChangeServer{route: newRoute(from, to), Hostname: hostname}
}

// ParseChangeServer reads a $XX line.
func ParseChangeServer(fields []string) (ChangeServer, error) {
	if err := minFields(fields, 3); err != nil {
		return ChangeServer{}, err
	}
	return NewChangeServer(stripPrefix(fields[0], prefixChangeServer), fields[1], fields[2]), nil
}

func (ChangeServer) Kind() Kind { return KindChangeServer }
func (ChangeServer) isMessage() {}

func (m ChangeServer) String() string {
	return m.head(prefixChangeServer) + ":" + m.Hostname
}

// ServerHandshake is the first line a server sends. Key may be absent on
// older servers and is then empty.
type ServerHandshake struct {
	route
	Version string `json:"version"`
	Key     string `json:"key"`
}

// NewServerHandshake builds the $DI greeting. The key may be empty.
func NewServerHandshake(from, to, version, key string) ServerHandshake {
	return ServerHandshake{route: newRoute(from, to), Version: version, Key: key}
}

// ParseServerHandshake treats the key field as optional.
func ParseServerHandshake(fields []string) (ServerHandshake, error) {
	if err := minFields(fields, 3); err != nil {
		return ServerHandshake{}, err
	}
	return NewServerHandshake(stripPrefix(fields[0], prefixServerHandshake), fields[1],
		fields[2], fieldOr(fields, 3, "")), nil
}

func (ServerHandshake) Kind() Kind { return KindServerHandshake }
func (ServerHandshake) isMessage() {}

func (m ServerHandshake) String() string {
	return joinFields([]string{m.head(prefixServerHandshake), m.Version, m.Key})
}

// ClientHandshake identifies the client software. ClientID is written as
// four lower-case hex digits.
type ClientHandshake struct {
	route
	ClientID     uint16 `json:"client_id"`
	ClientName   string `json:"client_name"`
	MajorVersion uint32 `json:"major_version"`
	MinorVersion uint32 `json:"minor_version"`
	CID          string `json:"cid"`
	GUID         string `json:"guid"`
	Key          string `json:"key,omitempty"`
}

// NewClientHandshake builds the $ID reply to a server handshake.
func NewClientHandshake(from, to string, clientID uint16, name string, major, minor uint32, cid, guid, key string) ClientHandshake {
	return ClientHandshake{
		route:        newRoute(from, to),
		ClientID:     clientID,
		ClientName:   name,
		MajorVersion: major,
		MinorVersion: minor,
		CID:          cid,
		GUID:         guid,
		Key:          key,
	}
}

// ParseClientHandshake needs at least 8 fields; the key is optional.
func ParseClientHandshake(fields []string) (ClientHandshake, error) {
	if err := minFields(fields, 8); err != nil {
		return ClientHandshake{}, err
	}
	id, err := strconv.ParseUint(fields[2], 16, 16)
	if err != nil {
		return ClientHandshake{}, newParseError(InvalidClientID, fields[2])
	}
	major, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return ClientHandshake{}, newParseError(InvalidVersionNumber, fields[4])
	}
	minor, err := strconv.ParseUint(fields[5], 10, 32)
	if err != nil {
		return ClientHandshake{}, newParseError(InvalidVersionNumber, fields[5])
	}
	return NewClientHandshake(stripPrefix(fields[0], prefixClientHandshake), fields[1],
		uint16(id), fields[3], uint32(major), uint32(minor), fields[6], fields[7], fieldOr(fields, 8, "")), nil
}

func (ClientHandshake) Kind() Kind { return KindClientHandshake }
func (ClientHandshake) isMessage() {}

func (m ClientHandshake) String() string {
	s := fmt.Sprintf("%s:%04x:%s:%d:%d:%s:%s", m.head(prefixClientHandshake),
		m.ClientID, m.ClientName, m.MajorVersion, m.MinorVersion, m.CID, m.GUID)
	if m.Key != "" {
		s += ":" + m.Key
	}
	return s
}

// SendFastPositions switches a pilot client's fast position updates on or
// off.
type SendFastPositions struct {
	route
	Enabled bool `json:"enabled"`
}

// NewSendFastPositions switches fast position updates on or off.
func NewSendFastPositions(from, to string, enabled bool) SendFastPositions {
	return SendFastPositions{route: newRoute(from, to), Enabled: enabled}
}

// ParseSendFastPositions treats any flag other than "1" as disabled.
func ParseSendFastPositions(fields []string) (SendFastPositions, error) {
	if err := minFields(fields, 3); err != nil {
		return SendFastPositions{}, err
	}
	return NewSendFastPositions(stripPrefix(fields[0], prefixSendFast), fields[1], fields[2] == "1"), nil
}

func (SendFastPositions) Kind() Kind { return KindSendFastPositions }
func (SendFastPositions) isMessage() {}

func (m SendFastPositions) String() string {
	flag := "0"
	if m.Enabled {
		flag = "1"
	}
	return m.head(prefixSendFast) + ":" + flag
}

// Kill disconnects the recipient. Reason is optional.
type Kill struct {
	route
	Reason string `json:"reason,omitempty"`
}

// NewKill builds a $!! line. An empty reason is not written.
func NewKill(from, to, reason string) Kill {
	return Kill{route: newRoute(from, to), Reason: reason}
}

// ParseKill reads a $!! line with an optional reason.
func ParseKill(fields []string) (Kill, error) {
	if err := minFields(fields, 2); err != nil {
		return Kill{}, err
	}
	return NewKill(stripPrefix(fields[0], prefixKill), fields[1], fieldOr(fields, 2, "")), nil
}

func (Kill) Kind() Kind { return KindKill }
func (Kill) isMessage() {}

func (m Kill) String() string {
	if m.Reason == "" {
		return m.head(prefixKill)
	}
	return m.head(prefixKill) + ":" + m.Reason
}
