package notifications

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher публикует уведомления в topic exchange
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	now      func() time.Time
}

// NewRabbitMQPublisher подключается к брокеру и объявляет durable topic exchange
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}
	return &RabbitMQPublisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func newRabbitMQPublisherWithChannel(ch amqpChannel, exchange string) *RabbitMQPublisher {
	return &RabbitMQPublisher{ch: ch, exchange: exchange, now: time.Now}
}

// Notify публикует событие с ключом маршрутизации "<event>.court.<id>"
func (p *RabbitMQPublisher) Notify(ctx context.Context, n Notification) error {
	body, err := encode(n, p.now())
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, string(n.Event)+"."+n.Key(), false, false, amqp.Publishing{
		ContentType:  "application/cloudevents+json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: rabbitmq exchange=%s: %v", ErrPublish, p.exchange, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
