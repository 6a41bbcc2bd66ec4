package bus

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"coffee-orders/internal/config"
)

// Message is a single delivery from the order-event topic.
type Message struct {
	Key   []byte
	Value []byte
}

// Stream is an open subscription. Fetch blocks until the next message
// arrives, the stream breaks, or ctx is cancelled.
type Stream interface {
	Fetch(ctx context.Context) (Message, error)
	Close() error
}

// Dialer opens a Stream. The subscriber treats a Dial error as a failed
// connection attempt and backs off.
type Dialer interface {
	Dial(ctx context.Context) (Stream, error)
}

// KafkaSource dials the broker and consumes the topic as part of a
// consumer group.
type KafkaSource struct {
	brokers []string
	topic   string
	groupID string
}

func NewKafkaSource(cfg config.KafkaConfig) *KafkaSource {
	return &KafkaSource{brokers: cfg.Brokers, topic: cfg.Topic, groupID: cfg.GroupID}
}

// Dial probes the broker first; kafka.Reader connects lazily, and the
// subscriber needs connection failures surfaced at dial time.
func (s *KafkaSource) Dial(ctx context.Context) (Stream, error) {
	d := &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true}
	conn, err := d.DialContext(ctx, "tcp", s.brokers[0])
	if err != nil {
		return nil, err
	}
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     s.brokers,
		GroupID:     s.groupID,
		Topic:       s.topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	return &kafkaStream{reader: r}, nil
}

type kafkaStream struct {
	reader *kafka.Reader
}

func (s *kafkaStream) Fetch(ctx context.Context) (Message, error) {
	m, err := s.reader.FetchMessage(ctx)
	if err != nil {
		return Message{}, err
	}
	if err := s.reader.CommitMessages(ctx, m); err != nil {
		return Message{}, err
	}
	return Message{Key: m.Key, Value: m.Value}, nil
}

func (s *kafkaStream) Close() error { return s.reader.Close() }
