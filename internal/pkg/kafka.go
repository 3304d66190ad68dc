package pkg

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaProducer publishes follow-graph events drained from the outbox table.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(cfg KafkaConfig) *KafkaProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Send keys by follower id so one user's events stay ordered per partition.
func (p *KafkaProducer) Send(ctx context.Context, key uint64, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(key, 10)),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}
