// Package queue publishes booking notifications to RabbitMQ. Publishing is
// fire-and-forget: the broker being down must never fail a booking, so
// errors are logged and swallowed by callers.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingCreated is the message emitted after a composite order commits.
const BookingCreated = "booking.created"

// BookingCreatedEvent is the payload published on BookingCreated.
type BookingCreatedEvent struct {
	EventsID   uint64 `json:"events_id"`
	UserID     uint64 `json:"userid"`
	EventName  string `json:"event_name"`
	EventType  string `json:"event_type"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"` // RFC3339
}

// Publisher owns one AMQP channel and the queues it declares.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker and declares the booking queue. Returns an
// error rather than retrying; the caller decides whether to run without a
// broker.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(BookingCreated, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishBookingCreated sends one persistent JSON message to the booking
// queue.
func (p *Publisher) PublishBookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.ch.PublishWithContext(ctx, "", BookingCreated, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
