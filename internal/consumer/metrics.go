package consumer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type outcome string

const (
	outcomeHandled      outcome = "handled"
	outcomeHandlerError outcome = "handler_error"
	outcomeUndecodable  outcome = "undecodable"
)

const metricsNamespace = "workout_tracker"

var (
	recordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "records_total",
		Help:      "Records fetched from the workout topic, by outcome.",
	}, []string{"topic", "outcome"})

	eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "events_total",
		Help:      "Opened workout events passed to the handler, by event type and outcome.",
	}, []string{"event_type", "outcome"})

	lastHandledSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "last_handled_record_timestamp_seconds",
		Help:      "Record time of the newest handled workout event per topic.",
	}, []string{"topic"})

	mirroredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "mirror",
		Name:      "workouts_total",
		Help:      "Workouts seen by the mirror, by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(recordsTotal, eventsTotal, lastHandledSeconds, mirroredTotal)
}

func observe(topic string, result outcome) {
	recordsTotal.WithLabelValues(topic, string(result)).Inc()
}

func observeEventType(msg Message, result outcome) {
	eventsTotal.WithLabelValues(msg.EventType, string(result)).Inc()
}

func markLastHandled(msg Message) {
	at := msg.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	lastHandledSeconds.WithLabelValues(msg.Topic).Set(float64(at.Unix()))
}

func recordMirrored(result string) {
	mirroredTotal.WithLabelValues(result).Inc()
}
