package events

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerOption tunes the writers a KafkaProducer opens.
type ProducerOption func(*KafkaProducer)

// WithBatchTimeout bounds how long a writer waits to fill a batch before flushing.
func WithBatchTimeout(d time.Duration) ProducerOption {
	return func(p *KafkaProducer) {
		if d > 0 {
			p.batchTimeout = d
		}
	}
}

// WithTransport replaces the network transport, mainly for tests.
func WithTransport(rt kafka.RoundTripper) ProducerOption {
	return func(p *KafkaProducer) {
		p.transport = rt
	}
}

// KafkaProducer writes workout events, keeping one writer per topic.
// Records are hashed on their key, so every event of a workout lands on one partition.
type KafkaProducer struct {
	addr         net.Addr
	batchTimeout time.Duration
	transport    kafka.RoundTripper

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer for brokers.
func NewKafkaProducer(brokers []string, opts ...ProducerOption) *KafkaProducer {
	p := &KafkaProducer{
		addr:         kafka.TCP(brokers...),
		batchTimeout: 10 * time.Millisecond,
		writers:      map[string]*kafka.Writer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WriteMessages sends msgs to topic.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writer(topic).WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writer(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[topic]
	if !ok {
		w = p.newWriter(topic)
		p.writers[topic] = w
	}
	return w
}

func (p *KafkaProducer) newWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   p.addr,
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		BatchTimeout:           p.batchTimeout,
		Transport:              p.transport,
		AllowAutoTopicCreation: true,
	}
}

// Topics lists the topics a writer has been opened for.
func (p *KafkaProducer) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	topics := make([]string, 0, len(p.writers))
	for topic := range p.writers {
		topics = append(topics, topic)
	}
	return topics
}

// Close flushes and closes every writer. The producer can be reused afterwards.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	writers := p.writers
	p.writers = map[string]*kafka.Writer{}
	p.mu.Unlock()

	var errs []error
	for _, w := range writers {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
