package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

type schemaRegistrar interface {
	EnsureSchema(context.Context, string, string) (int, error)
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the publisher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSchemaRegistry resolves schema ids through registry. Without one, frames carry schema id 0.
func WithSchemaRegistry(registry schemaRegistrar) Option {
	return func(p *Publisher) {
		p.registry = registry
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// Publisher implements domain.Publisher on top of Kafka.
type Publisher struct {
	producer      messageWriter
	registry      schemaRegistrar
	topic         string
	logger        *zap.Logger
	now           func() time.Time
	schemaIDCache sync.Map
}

// NewPublisher constructs a Publisher writing to topic.
func NewPublisher(producer messageWriter, topic string, opts ...Option) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishWorkoutRecorded implements domain.Publisher.
func (p *Publisher) PublishWorkoutRecorded(ctx context.Context, workout domain.Workout) error {
	event := WorkoutRecorded{
		EventID:     uuid.NewString(),
		WorkoutID:   workout.ID,
		Kind:        workout.Kind,
		Description: workout.Description,
		RecordedAt:  p.now().UTC(),
		Workout:     workout,
	}
	if err := p.publish(ctx, EventWorkoutRecorded, event.EventID, workout.ID, event); err != nil {
		failedCounter.WithLabelValues(EventWorkoutRecorded).Inc()
		return fmt.Errorf("publish %s: %w", EventWorkoutRecorded, err)
	}
	publishedCounter.WithLabelValues(EventWorkoutRecorded).Inc()
	p.logger.Debug("event published",
		zap.String("event_type", EventWorkoutRecorded),
		zap.String("event_id", event.EventID),
		zap.String("workout_id", workout.ID))
	return nil
}

func (p *Publisher) publish(ctx context.Context, eventType, eventID, key string, payload any) error {
	subject := SubjectFor(p.topic)
	schemaID, err := p.schemaID(ctx, eventType, subject)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	record := Envelope{
		EventType:     eventType,
		EventID:       eventID,
		SchemaSubject: subject,
		SchemaID:      schemaID,
		Payload:       body,
	}.Record(key, p.now().UTC())
	return p.producer.WriteMessages(ctx, p.topic, record)
}

func (p *Publisher) schemaID(ctx context.Context, eventType, subject string) (int, error) {
	schema, ok := schemaCatalog[eventType]
	if !ok {
		return 0, fmt.Errorf("no schema metadata for event_type=%s", eventType)
	}
	if p.registry == nil {
		return 0, nil
	}

	cacheKey := subject + "::" + eventType
	if id, found := p.schemaIDCache.Load(cacheKey); found {
		return id.(int), nil
	}
	id, err := p.registry.EnsureSchema(ctx, subject, schema)
	if err != nil {
		return 0, err
	}
	p.schemaIDCache.Store(cacheKey, id)
	return id, nil
}
