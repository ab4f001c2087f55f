package events

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of events successfully written to Kafka.",
	}, []string{"event_type"})

	failedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Number of events that could not be published.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(publishedCounter, failedCounter)
}
