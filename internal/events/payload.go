// Package events publishes tracker events to Kafka using Schema Registry framing.
package events

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// Event types and Kafka header names.
const (
	EventWorkoutRecorded = "workout.recorded"

	HeaderEventType     = "event_type"
	HeaderEventID       = "event_id"
	HeaderSchemaSubject = "schema_subject"
)

// WorkoutRecorded is emitted after a workout is accepted and persisted.
type WorkoutRecorded struct {
	EventID     string         `json:"event_id"`
	WorkoutID   string         `json:"workout_id"`
	Kind        domain.Kind    `json:"type"`
	Description string         `json:"description"`
	RecordedAt  time.Time      `json:"recorded_at"`
	Workout     domain.Workout `json:"workout"`
}

// SubjectFor returns the value subject registered for topic.
func SubjectFor(topic string) string {
	return topic + "-value"
}

// EncodeWireFormat applies Confluent framing: magic byte, 4-byte schema id, payload.
func EncodeWireFormat(schemaID int, payload []byte) []byte {
	frame := make([]byte, 5+len(payload))
	frame[0] = 0
	binary.BigEndian.PutUint32(frame[1:5], uint32(schemaID))
	copy(frame[5:], payload)
	return frame
}

// DecodeWireFormat splits a framed value into schema id and payload.
func DecodeWireFormat(value []byte) (int, []byte, error) {
	if len(value) < 5 {
		return 0, nil, fmt.Errorf("invalid payload length: %d", len(value))
	}
	if value[0] != 0 {
		return 0, nil, fmt.Errorf("unexpected magic byte %d", value[0])
	}
	schemaID := int(binary.BigEndian.Uint32(value[1:5]))
	payload := make([]byte, len(value)-5)
	copy(payload, value[5:])
	return schemaID, payload, nil
}
