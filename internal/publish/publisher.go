// Package publish emits merged records to Kafka, one message per record keyed
// by its name key.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/models"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes record batches, retrying with exponential backoff.
type Publisher struct {
	w        MessageWriter
	attempts int
	backoff  time.Duration
	log      *zap.Logger
}

type Option func(*Publisher)

// WithRetry sets the number of attempts and the first backoff, doubled after
// every failed attempt.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(p *Publisher) {
		if attempts > 0 {
			p.attempts = attempts
		}
		if backoff > 0 {
			p.backoff = backoff
		}
	}
}

func New(w MessageWriter, log *zap.Logger, opts ...Option) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{w: w, attempts: 5, backoff: time.Second, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewKafka creates a Publisher writing to topic on brokers.
func NewKafka(brokers []string, topic string, log *zap.Logger, opts ...Option) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	return New(w, log, opts...)
}

// Messages converts records into Kafka messages.
func Messages(records []models.MergedRecord) ([]kafka.Message, error) {
	now := []byte(time.Now().UTC().Format(time.RFC3339))
	msgs := make([]kafka.Message, 0, len(records))
	for _, rec := range records {
		value, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", rec.Name, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(rec.NameKey),
			Value: value,
			Headers: []kafka.Header{
				{Key: "id", Value: []byte(rec.ID)},
				{Key: "published_at", Value: now},
			},
		})
	}
	return msgs, nil
}

// Publish writes every record and returns how many were published.
func (p *Publisher) Publish(ctx context.Context, records []models.MergedRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	msgs, err := Messages(records)
	if err != nil {
		return 0, err
	}

	var lastErr error
	for attempt := range p.attempts {
		if lastErr = p.w.WriteMessages(ctx, msgs...); lastErr == nil {
			p.log.Info("published records", zap.Int("count", len(msgs)), zap.Int("attempt", attempt+1))
			return len(msgs), nil
		}
		if attempt == p.attempts-1 {
			break
		}

		backoff := p.backoff << uint(attempt)
		p.log.Warn("publish failed, retrying",
			zap.Error(lastErr),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return 0, fmt.Errorf("publish: %w", ctx.Err())
		}
	}
	return 0, fmt.Errorf("publish after %d attempts: %w", p.attempts, lastErr)
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
