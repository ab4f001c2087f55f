package events

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrMissingEventType is returned for records without an event_type header.
var ErrMissingEventType = errors.New("missing event_type header")

// Envelope is a framed tracker event as carried on a Kafka record.
type Envelope struct {
	EventType     string
	EventID       string
	SchemaSubject string
	SchemaID      int
	Payload       []byte
}

// Record frames the envelope into a Kafka message keyed by key.
func (e Envelope) Record(key string, at time.Time) kafka.Message {
	return kafka.Message{
		Key:   []byte(key),
		Value: EncodeWireFormat(e.SchemaID, e.Payload),
		Time:  at,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(e.EventType)},
			{Key: HeaderEventID, Value: []byte(e.EventID)},
			{Key: HeaderSchemaSubject, Value: []byte(e.SchemaSubject)},
		},
	}
}

// OpenRecord reverses Record. The event_type header is required; the others are optional.
func OpenRecord(msg kafka.Message) (Envelope, error) {
	schemaID, payload, err := DecodeWireFormat(msg.Value)
	if err != nil {
		return Envelope{}, err
	}
	env := Envelope{SchemaID: schemaID, Payload: payload}
	found := false
	for _, h := range msg.Headers {
		switch h.Key {
		case HeaderEventType:
			env.EventType, found = string(h.Value), true
		case HeaderEventID:
			env.EventID = string(h.Value)
		case HeaderSchemaSubject:
			env.SchemaSubject = string(h.Value)
		}
	}
	if !found {
		return Envelope{}, ErrMissingEventType
	}
	return env, nil
}
