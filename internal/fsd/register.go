package fsd

// AtcRegister is sent by a controller client after the handshake.
type AtcRegister struct {
	route
	RealName string           `json:"real_name"`
	CID      string           `json:"cid"`
	Password string           `json:"password"`
	Rating   AtcRating        `json:"rating"`
	Protocol ProtocolRevision `json:"protocol"`
}

// NewAtcRegister builds a #AA registration.
func NewAtcRegister(from, to, realName, cid, password string, rating AtcRating, protocol ProtocolRevision) AtcRegister {
	return AtcRegister{
		route:    newRoute(from, to),
		RealName: realName,
		CID:      cid,
		Password: password,
		Rating:   rating,
		Protocol: protocol,
	}
}

// ParseAtcRegister reads a #AA line of at least 7 fields.
func ParseAtcRegister(fields []string) (AtcRegister, error) {
	if err := minFields(fields, 7); err != nil {
		return AtcRegister{}, err
	}
	rating, err := ParseAtcRating(fields[5])
	if err != nil {
		return AtcRegister{}, err
	}
	protocol, err := ParseProtocolRevision(fields[6])
	if err != nil {
		return AtcRegister{}, err
	}
	return NewAtcRegister(stripPrefix(fields[0], prefixAtcRegister), fields[1],
		fields[2], fields[3], fields[4], rating, protocol), nil
}

func (AtcRegister) Kind() Kind { return KindAtcRegister }
func (AtcRegister) isMessage() {}

func (m AtcRegister) String() string {
	return joinFields([]string{
		m.head(prefixAtcRegister), m.RealName, m.CID, m.Password,
		m.Rating.String(), m.Protocol.String(),
	})
}

// PilotRegister is sent by a pilot client after the handshake. RealName is
// optional on the wire and may be empty.
type PilotRegister struct {
	route
	CID       string           `json:"cid"`
	Password  string           `json:"password"`
	Rating    PilotRating      `json:"rating"`
	Protocol  ProtocolRevision `json:"protocol"`
	Simulator SimulatorType    `json:"simulator"`
	RealName  string           `json:"real_name"`
}

// NewPilotRegister builds a #AP registration.
func NewPilotRegister(from, to, cid, password string, rating PilotRating, protocol ProtocolRevision, sim SimulatorType, realName string) PilotRegister {
	return PilotRegister{
		route:     newRoute(from, to),
		CID:       cid,
		Password:  password,
		Rating:    rating,
		Protocol:  protocol,
		Simulator: sim,
		RealName:  realName,
	}
}

// ParsePilotRegister reads a #AP line.
func ParsePilotRegister(fields []string) (PilotRegister, error) {
	if err := minFields(fields, 7); err != nil {
		return PilotRegister{}, err
	}
	rating, err := ParsePilotRating(fields[4])
	if err != nil {
		return PilotRegister{}, err
	}
	protocol, err := ParseProtocolRevision(fields[5])
	if err != nil {
		return PilotRegister{}, err
	}
	return NewPilotRegister(stripPrefix(fields[0], prefixPilotRegister), fields[1],
		fields[2], fields[3], rating, protocol, ParseSimulatorType(fields[6]), fieldOr(fields, 7, "")), nil
}

func (PilotRegister) Kind() Kind { return KindPilotRegister }
func (PilotRegister) isMessage() {}

func (m PilotRegister) String() string {
	return joinFields([]string{
		m.head(prefixPilotRegister), m.CID, m.Password, m.Rating.String(),
		m.Protocol.String(), m.Simulator.String(), m.RealName,
	})
}

// Deregister is the shared layout of #DA and #DP.
type Deregister struct {
	From string `json:"from"`
	CID  string `json:"cid"`
}

func (d Deregister) Sender() string { return d.From }

func parseDeregister(fields []string, prefix string) (Deregister, error) {
	if err := minFields(fields, 1); err != nil {
		return Deregister{}, err
	}
	return Deregister{
		From: upper(stripPrefix(fields[0], prefix)),
		CID:  fieldOr(fields, 1, ""),
	}, nil
}

// AtcDeregister is sent by a controller client before it disconnects.
type AtcDeregister struct{ Deregister }

// NewAtcDeregister builds a #DA line. cid may be empty.
func NewAtcDeregister(from, cid string) AtcDeregister {
	return AtcDeregister{Deregister{From: upper(from), CID: cid}}
}

// ParseAtcDeregister accepts a bare "#DA{callsign}" with no CID field.
func ParseAtcDeregister(fields []string) (AtcDeregister, error) {
	d, err := parseDeregister(fields, prefixAtcDeregister)
	return AtcDeregister{d}, err
}

func (AtcDeregister) Kind() Kind { return KindAtcDeregister }
func (AtcDeregister) isMessage() {}

func (m AtcDeregister) String() string {
	return prefixAtcDeregister + m.From + ":" + m.CID
}

// PilotDeregister is sent by a pilot client before it disconnects.
type PilotDeregister struct{ Deregister }

// NewPilotDeregister builds a #DP line. cid may be empty.
func NewPilotDeregister(from, cid string) PilotDeregister {
	return PilotDeregister{Deregister{From: upper(from), CID: cid}}
}

// ParsePilotDeregister accepts a bare #DP with no CID.
func ParsePilotDeregister(fields []string) (PilotDeregister, error) {
	d, err := parseDeregister(fields, prefixPilotDeregister)
	return PilotDeregister{d}, err
}

func (PilotDeregister) Kind() Kind { return KindPilotDeregister }
func (PilotDeregister) isMessage() {}

func (m PilotDeregister) String() string {
	return prefixPilotDeregister + m.From + ":" + m.CID
}
