package models

import (
	"encoding/json"
	"time"

	"fsd_recorder/internal/fsd"
)

// KindInvalid is stored for lines the codec rejected
const KindInvalid = "invalid"

// Record is a received line prepared for storage and publishing.
// Payload holds the decoded message as JSON; Error is set instead when the
// line could not be decoded.
type Record struct {
	ReceivedAt time.Time       `json:"received_at"`
	Raw        string          `json:"raw"`
	Kind       string          `json:"kind"`
	Sender     string          `json:"sender,omitempty"`
	Recipient  string          `json:"recipient,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// NewRecord decodes a line into a Record. It never fails: decode errors are
// kept on the record.
func NewRecord(line Line) *Record {
	rec, _ := DecodeLine(line)
	return rec
}

// DecodeLine is NewRecord that also returns the decoded message, or nil
// when the line was rejected.
func DecodeLine(line Line) (*Record, fsd.Message) {
	rec := &Record{
		ReceivedAt: line.ReceivedAt,
		Raw:        line.Raw,
		Kind:       KindInvalid,
	}

	msg, err := fsd.Parse(line.Raw)
	if err != nil {
		rec.Error = err.Error()
		return rec, nil
	}

	rec.Kind = string(msg.Kind())
	rec.Sender = msg.Sender()
	rec.Recipient = fsd.Recipient(msg)

	payload, err := json.Marshal(msg)
	if err != nil {
		// Every codec type marshals; keep the line even if one ever doesn't
		rec.Error = err.Error()
		return rec, msg
	}
	rec.Payload = payload
	return rec, msg
}

// Failed reports whether the line was rejected by the codec
func (r *Record) Failed() bool {
	return r.Kind == KindInvalid
}
