package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"corptransit/internal/domain/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const bookingExchange = "booking.events"

// AMQPPublisher publishes booking events to a topic exchange with the
// routing key <schema>.<event>, e.g. tenant_acme.booking.cancelled.
type AMQPPublisher struct {
	mu   sync.RWMutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher dials the broker and declares the exchange. Returns
// nil (publishing disabled) when url is empty.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(bookingExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Println("booking event publisher connected to amqp")
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

type bookingEvent struct {
	Schema    string         `json:"schema"`
	Event     string         `json:"event"`
	Booking   models.Booking `json:"booking"`
	EmittedAt time.Time      `json:"emitted_at"`
}

func (p *AMQPPublisher) PublishBookingEvent(ctx context.Context, schema, event string, booking models.Booking) error {
	p.mu.RLock()
	ch := p.ch
	p.mu.RUnlock()
	if ch == nil {
		return fmt.Errorf("amqp channel not available")
	}

	body, err := json.Marshal(bookingEvent{
		Schema:    schema,
		Event:     event,
		Booking:   booking,
		EmittedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return ch.PublishWithContext(publishCtx, bookingExchange, schema+"."+event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
}

func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
