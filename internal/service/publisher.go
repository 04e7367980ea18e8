// Package service publishes domain events to RabbitMQ.  Publishing is best
// effort: errors are logged and returned so callers can ignore them without
// interrupting the request.
package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-list/internal/logging"
	q "github.com/iliyamo/movie-list/internal/queue"
)

// Publisher delivers activity events.
type Publisher interface {
	Publish(ctx context.Context, ev q.ActivityEvent) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.ActivityEvent) error { return nil }

// defaultDialTimeout bounds the broker dial and handshake when the caller's
// context carries no deadline.
const defaultDialTimeout = 5 * time.Second

// AMQPPublisher publishes each event as a persistent JSON message to the
// activity queue, dialing the broker per publish.
type AMQPPublisher struct {
	URL string
}

// NewAMQPPublisher returns a publisher for url, or a NopPublisher when url
// is empty.
func NewAMQPPublisher(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ActivityEvent) error {
	log := logging.Ctx(ctx)

	d := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		d = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return context.DeadlineExceeded
	}

	// DefaultDial applies d to both the TCP connect and the AMQP handshake.
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(d),
	})
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.ActivityQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActivityQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Str("event", ev.Type).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
