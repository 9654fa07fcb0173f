// Package activity publishes activity-log events to a RabbitMQ queue
// consumed by an out-of-process worker. Delivery is best-effort: callers
// log publish failures and move on.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"vesta/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "vesta.activity"

// envelope matches the message shape the activity worker expects.
type envelope struct {
	Worker  string  `json:"worker"`
	Message message `json:"message"`
}

type message struct {
	Action string               `json:"action"`
	Type   string               `json:"type"`
	Data   models.ActivityEvent `json:"data"`
}

// Publisher delivers activity events.
type Publisher interface {
	Publish(ctx context.Context, event models.ActivityEvent) error
	Close() error
}

type amqpPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher dials the broker and declares the durable activity queue.
func NewPublisher(url, queue string) (Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &amqpPublisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event models.ActivityEvent) error {
	body, err := json.Marshal(envelope{
		Worker: "activity",
		Message: message{
			Action: "log",
			Type:   "activity",
			Data:   event,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish activity event: %w", err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
