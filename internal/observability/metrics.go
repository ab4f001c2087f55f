// Package observability holds the tracker's Prometheus instruments.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "tracker",
		Name:      "workouts_recorded_total",
		Help:      "Number of workouts accepted from the entry form, labeled by kind.",
	}, []string{"kind"})

	validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "tracker",
		Name:      "validation_failures_total",
		Help:      "Number of form submissions rejected by validation.",
	})

	geolocationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "tracker",
		Name:      "geolocation_failures_total",
		Help:      "Number of geolocation requests that were denied or failed.",
	})

	restoreFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "restore_failures_total",
		Help:      "Number of stored workout lists that could not be decoded.",
	})

	persistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "last_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent write of the workout list.",
	})

	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "stored_workouts",
		Help:      "Number of workouts in the most recently persisted list.",
	})
)

func init() {
	prometheus.MustRegister(workoutsRecorded, validationFailures, geolocationFailures, restoreFailures, persistGauge, storedWorkouts)
}

// RecordWorkoutRecorded counts an accepted workout.
func RecordWorkoutRecorded(kind string) {
	workoutsRecorded.WithLabelValues(kind).Inc()
}

// RecordValidationFailure counts a rejected submission.
func RecordValidationFailure() {
	validationFailures.Inc()
}

// RecordGeolocationFailure counts a failed position lookup.
func RecordGeolocationFailure() {
	geolocationFailures.Inc()
}

// RecordRestoreFailure counts an unreadable stored list.
func RecordRestoreFailure() {
	restoreFailures.Inc()
}

// RecordWorkoutsPersisted updates the persistence watermark and list size.
func RecordWorkoutsPersisted(ts time.Time, count int) {
	storedWorkouts.Set(float64(count))
	if ts.IsZero() {
		return
	}
	persistGauge.Set(float64(ts.Unix()))
}
