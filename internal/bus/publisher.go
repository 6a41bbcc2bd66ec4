package bus

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"coffee-orders/internal/config"
)

// Publisher sends one message to the order-event topic per call.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

// KafkaPublisher wraps a kafka.Writer with a bounded send timeout so a
// slow broker can never hold up an HTTP response for longer than that.
type KafkaPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	timeout := time.Duration(cfg.PublishTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }
