package fsd

import "fmt"

// ServerErrorCode is the numeric fault code carried by a $ER line.
type ServerErrorCode uint8

const (
	CallsignInUse            ServerErrorCode = 1
	InvalidCallsign          ServerErrorCode = 2
	AlreadyRegistered        ServerErrorCode = 3
	SyntaxError              ServerErrorCode = 4
	InvalidSourceCallsign    ServerErrorCode = 5
	InvalidCidPassword       ServerErrorCode = 6
	NoSuchCallsign           ServerErrorCode = 7
	NoFlightPlan             ServerErrorCode = 8
	NoWeatherProfile         ServerErrorCode = 9
	InvalidProtocolVersion   ServerErrorCode = 10
	RequestedLevelTooHigh    ServerErrorCode = 11
	ServerFull               ServerErrorCode = 12
	CertificateSuspended     ServerErrorCode = 13
	InvalidControl           ServerErrorCode = 14
	InvalidPositionForRating ServerErrorCode = 15
	UnauthorisedClient       ServerErrorCode = 16
	AuthTimeOut              ServerErrorCode = 17
	OtherServerError         ServerErrorCode = 18
)

var serverErrorText = map[ServerErrorCode]string{
	CallsignInUse:            "callsign in use",
	InvalidCallsign:          "invalid callsign",
	AlreadyRegistered:        "already registered",
	SyntaxError:              "syntax error",
	InvalidSourceCallsign:    "invalid source callsign",
	InvalidCidPassword:       "invalid CID / password",
	NoSuchCallsign:           "no such callsign",
	NoFlightPlan:             "no flight plan",
	NoWeatherProfile:         "no weather profile",
	InvalidProtocolVersion:   "invalid protocol revision",
	RequestedLevelTooHigh:    "requested level too high",
	ServerFull:               "server full",
	CertificateSuspended:     "CID has been suspended",
	InvalidControl:           "invalid control",
	InvalidPositionForRating: "invalid position for rating",
	UnauthorisedClient:       "unauthorised client",
	AuthTimeOut:              "authentication time out",
	OtherServerError:         "other",
}

func (c ServerErrorCode) String() string {
	if s, ok := serverErrorText[c]; ok {
		return s
	}
	return fmt.Sprintf("ServerErrorCode(%d)", uint8(c))
}

// HasSubject reports whether the code refers to a callsign or station that
// travels with it on the wire.
func (c ServerErrorCode) HasSubject() bool {
	return c == NoSuchCallsign || c == NoFlightPlan || c == NoWeatherProfile
}

// ServerError is a fault reported by the peer. It is not a local parse
// failure. Subject is set for codes 7-9, Text for OtherServerError.
type ServerError struct {
	Code    ServerErrorCode `json:"code"`
	Subject string          `json:"subject,omitempty"`
	Text    string          `json:"text,omitempty"`
}

func (e ServerError) Error() string {
	switch {
	case e.Code.HasSubject():
		return fmt.Sprintf("%s: %s", e.Code, e.Subject)
	case e.Code == OtherServerError:
		return "other: " + e.Text
	default:
		return e.Code.String()
	}
}

// serverErrorFromCode builds the error for a decoded code. Codes outside 1-17
// collapse to OtherServerError so the free text is not lost.
func serverErrorFromCode(code uint8, subject, text string) ServerError {
	c := ServerErrorCode(code)
	switch {
	case c.HasSubject():
		return ServerError{Code: c, Subject: upper(subject)}
	case c >= CallsignInUse && c < OtherServerError:
		return ServerError{Code: c}
	default:
		return ServerError{Code: OtherServerError, Text: text}
	}
}
