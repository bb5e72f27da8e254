package kafka

import (
	"context"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderEvents   = "marketplace-order-events"
	TopicDisputeEvents = "dispute-events"
	TopicRatingEvents  = "rating-events"
	TopicListingEvents = "listing-events"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, km...)
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
