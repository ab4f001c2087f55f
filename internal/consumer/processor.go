// Package consumer mirrors recorded workouts from the event stream into a store.
package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/events"
)

// Reader is the subset of *kafka.Reader the processor drives.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler consumes opened workout event envelopes.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is an opened envelope together with where it was read from.
type Message struct {
	events.Envelope
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger overrides the processor logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor feeds every fetched record to a Handler and commits what it is done with.
type Processor struct {
	reader  Reader
	handler Handler
	logger  *zap.Logger
}

// NewProcessor constructs a Processor.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{reader: reader, handler: handler, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes records until ctx is cancelled or the reader reports cancellation.
func (p *Processor) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		record, err := p.reader.FetchMessage(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			return err
		case err != nil:
			p.logger.Warn("fetch failed", zap.Error(err))
			continue
		}

		result := p.process(ctx, record)
		observe(record.Topic, result)
		if result == outcomeHandlerError {
			// Left uncommitted so the group redelivers it.
			continue
		}
		if err := p.reader.CommitMessages(ctx, record); err != nil {
			p.logger.Warn("commit failed",
				zap.String("outcome", string(result)),
				zap.Int64("offset", record.Offset),
				zap.Error(err))
		}
	}
	return ctx.Err()
}

// process hands one record to the handler. Records that cannot be opened are
// reported as undecodable and still committed, so they never block the partition.
func (p *Processor) process(ctx context.Context, record kafka.Message) outcome {
	env, err := events.OpenRecord(record)
	if err != nil {
		p.logger.Warn("undecodable workout event",
			zap.String("topic", record.Topic),
			zap.Int("partition", record.Partition),
			zap.Int64("offset", record.Offset),
			zap.Error(err))
		return outcomeUndecodable
	}

	msg := Message{
		Envelope:  env,
		Topic:     record.Topic,
		Partition: record.Partition,
		Offset:    record.Offset,
		Timestamp: record.Time,
	}
	if err := p.handler.Handle(ctx, msg); err != nil {
		p.logger.Error("workout event not handled",
			zap.String("event_type", env.EventType),
			zap.String("event_id", env.EventID),
			zap.Error(err))
		observeEventType(msg, outcomeHandlerError)
		return outcomeHandlerError
	}
	observeEventType(msg, outcomeHandled)
	markLastHandled(msg)
	return outcomeHandled
}
