package events

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRecordRoundTrip(t *testing.T) {
	at := time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)
	in := Envelope{
		EventType:     EventWorkoutRecorded,
		EventID:       "evt-1",
		SchemaSubject: "workout_events-value",
		SchemaID:      42,
		Payload:       []byte(`{"workout_id":"1"}`),
	}

	msg := in.Record("1", at)
	require.Equal(t, "1", string(msg.Key))
	require.Equal(t, at, msg.Time)

	out, err := OpenRecord(msg)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestOpenRecordRequiresEventType(t *testing.T) {
	msg := Envelope{EventType: EventWorkoutRecorded, Payload: []byte(`{}`)}.Record("k", time.Time{})
	msg.Headers = msg.Headers[1:]

	_, err := OpenRecord(msg)
	require.ErrorIs(t, err, ErrMissingEventType)

	_, err = OpenRecord(kafka.Message{Value: []byte{0}})
	require.Error(t, err)
}
