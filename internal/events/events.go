// Package events publishes booking lifecycle events to RabbitMQ so that
// downstream consumers (mailers, analytics) need not query the store.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TypeReserved  = "booking.reserved"
	TypeCancelled = "booking.cancelled"
)

type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	PlaceKey        string    `json:"place_key"`
	VisitDate       string    `json:"visit_date"`
	VisitorCategory string    `json:"visitor_category"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// New dials the broker and declares the durable queue.
func New(url, queue string) (*Publisher, error) {
	const op = "events.New"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: dial failed: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: channel open failed: %w", op, err)
	}

	if _, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: queue declare failed: %w", op, err)
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev BookingEvent) error {
	const op = "events.Publish"

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%s: marshal event failed: %w", op, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%s: publish failed: %w", op, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}

	return p.conn.Close()
}

// Noop drops every event. It stands in when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, BookingEvent) error { return nil }
