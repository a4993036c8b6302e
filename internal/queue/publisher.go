package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends reservation events to RabbitMQ. Publication is best effort:
// the booking flow has already committed, so failures are logged and swallowed
// rather than surfaced to the client. A nil Publisher (no broker configured)
// turns every publish into a no-op.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

// Publish declares the durable queue and sends one persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, queueName string, event ReservationEvent) {
	if p == nil {
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("Queue dial failed", zap.Error(err), zap.String("queue", queueName))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("Queue channel open failed", zap.Error(err), zap.String("queue", queueName))
		return
	}
	defer ch.Close()

	// Idempotent declare, durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("Queue declare failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Event marshal failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("Event publish failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	p.log.Info("Reservation event published",
		zap.String("queue", queueName),
		zap.String("reservation_id", event.ReservationID),
		zap.String("status", event.Status),
	)
}
