// Package publish forwards records to a NATS subject tree.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"

	"fsd_recorder/internal/models"
)

// Encodings accepted by NewPublisher
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// Conn is the part of *nats.Conn the publisher uses
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// Connect dials a NATS server and keeps reconnecting for the life of the
// process
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return nc, nil
}

// Publisher sends each record to "{prefix}.{kind}"
type Publisher struct {
	conn     Conn
	prefix   string
	encode   func(*models.Record) ([]byte, error)
	sent     atomic.Uint64
	failures atomic.Uint64
}

func NewPublisher(conn Conn, prefix, encoding string) (*Publisher, error) {
	p := &Publisher{conn: conn, prefix: prefix}
	switch encoding {
	case EncodingJSON, "":
		p.encode = encodeJSON
	case EncodingMsgpack:
		p.encode = encodeMsgpack
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
	return p, nil
}

// Subject returns the subject a record of the given kind is published on
func (p *Publisher) Subject(kind string) string {
	return p.prefix + "." + kind
}

// Publish encodes and sends one record
func (p *Publisher) Publish(rec *models.Record) error {
	data, err := p.encode(rec)
	if err != nil {
		p.failures.Add(1)
		return fmt.Errorf("encode record: %w", err)
	}
	if err := p.conn.Publish(p.Subject(rec.Kind), data); err != nil {
		p.failures.Add(1)
		return fmt.Errorf("publish record: %w", err)
	}
	p.sent.Add(1)
	return nil
}

// Stats returns how many records were sent and how many failed
func (p *Publisher) Stats() (sent, failed uint64) {
	return p.sent.Load(), p.failures.Load()
}

// Close flushes pending messages and closes the connection
func (p *Publisher) Close() error {
	return p.conn.Drain()
}

func encodeJSON(rec *models.Record) ([]byte, error) {
	return json.Marshal(rec)
}

// encodeMsgpack keeps the JSON field names. The payload stays a JSON
// document carried as a binary field.
func encodeMsgpack(rec *models.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
