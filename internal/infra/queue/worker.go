package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// Notifier tells the operator about a lead event.
type Notifier interface {
	Notify(ctx context.Context, ev entity.LeadEvent) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker drains the notification queue. It never touches the lead store.
type Worker struct {
	Channel  consumer
	Notifier Notifier
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Notifier: notifier, Logger: logger}
}

// Start consumes until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks processed messages. Malformed payloads and notifier failures
// are rejected without requeue and end up in the dead-letter queue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var ev entity.LeadEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		w.Logger.Warn("invalid lead event", zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := w.Notifier.Notify(ctx, ev); err != nil {
		w.Logger.Error("lead notification failed", zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID), zap.Error(err))
		d.Nack(false, false)
		return
	}

	w.Logger.Debug("lead notification sent", zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID))
	d.Ack(false)
}
