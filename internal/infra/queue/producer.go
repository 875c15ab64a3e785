package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yadhurtech/leadquote/internal/entity"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQProducer publishes lead events to the topic exchange, keyed by
// event type.
type RabbitMQProducer struct {
	Ch publisher
	// OnPublish is called after every attempt.
	OnPublish func(eventType string, err error)
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, ev entity.LeadEvent) error {
	err := p.publish(ctx, ev)
	if p.OnPublish != nil {
		p.OnPublish(ev.Type, err)
	}
	return err
}

func (p *RabbitMQProducer) publish(ctx context.Context, ev entity.LeadEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		ev.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Type:         ev.Type,
			Timestamp:    ev.At,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
