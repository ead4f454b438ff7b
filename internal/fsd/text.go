package fsd

import "strings"

// TextMessage is a private or broadcast chat line. Colons inside the text
// are preserved.
type TextMessage struct {
	route
	Text string `json:"text"`
}

// NewTextMessage sends text to a callsign.
func NewTextMessage(from, to, text string) TextMessage {
	return TextMessage{route: newRoute(from, to), Text: text}
}

// ParseTextMessage keeps colons in the text.
func ParseTextMessage(fields []string) (TextMessage, error) {
	if err := minFields(fields, 3); err != nil {
		return TextMessage{}, err
	}
	return NewTextMessage(stripPrefix(fields[0], prefixTextMessage), fields[1], joinFields(fields[2:])), nil
}

func (TextMessage) Kind() Kind { return KindTextMessage }
func (TextMessage) isMessage() {}

func (m TextMessage) String() string {
	return m.head(prefixTextMessage) + ":" + m.Text
}

// FrequencyMessage is a #TM line addressed to one or more radio
// frequencies rather than a callsign.
type FrequencyMessage struct {
	From        string           `json:"from"`
	Frequencies []RadioFrequency `json:"frequencies"`
	Text        string           `json:"text"`
}

// NewFrequencyMessage sends text on one or more frequencies.
func NewFrequencyMessage(from string, freqs []RadioFrequency, text string) FrequencyMessage {
	return FrequencyMessage{From: upper(from), Frequencies: freqs, Text: text}
}

// ParseFrequencyMessage drops recipients that are not valid frequencies.
func ParseFrequencyMessage(fields []string) (FrequencyMessage, error) {
	if err := minFields(fields, 3); err != nil {
		return FrequencyMessage{}, err
	}
	return NewFrequencyMessage(stripPrefix(fields[0], prefixTextMessage),
		SplitFrequencies(fields[1]), joinFields(fields[2:])), nil
}

func (FrequencyMessage) Kind() Kind       { return KindFrequencyMessage }
func (FrequencyMessage) isMessage()       {}
func (m FrequencyMessage) Sender() string { return m.From }

// Recipient is the '&'-joined frequency list as it appears on the wire.
func (m FrequencyMessage) Recipient() string {
	return JoinFrequencies(m.Frequencies, true)
}

func (m FrequencyMessage) String() string {
	return prefixTextMessage + m.From + ":" + m.Recipient() + ":" + m.Text
}

// isFrequencyRecipient reports whether a #TM recipient field names
// frequencies.
func isFrequencyRecipient(to string) bool {
	return strings.HasPrefix(to, DataChannelMarker)
}
