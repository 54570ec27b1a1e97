package notifications

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// KafkaPublisher пишет уведомления в топик Kafka
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

// NewKafkaPublisher создаёт writer. Соединение устанавливается при первой записи
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
		now:   time.Now,
	}
}

func newKafkaPublisherWithWriter(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, now: time.Now}
}

// Notify пишет событие с ключом корта, чтобы события одного корта попадали в одну партицию
func (p *KafkaPublisher) Notify(ctx context.Context, n Notification) error {
	body, err := encode(n, p.now())
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(n.Key()),
		Value: body,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(n.Event)},
			{Key: "content-type", Value: []byte("application/cloudevents+json")},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: kafka topic=%s: %v", ErrPublish, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
