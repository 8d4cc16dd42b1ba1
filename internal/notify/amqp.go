package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"marketplace-core/internal/domain"
)

const orderEventsQueue = "order.events"

type orderEvent struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	VendorID   string    `json:"vendorId"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	Timestamp  time.Time `json:"timestamp"`
}

// AMQPPublisher publishes order events to a durable queue. Publish
// failures are logged and dropped: by the time an event is emitted the
// transition has already committed.
type AMQPPublisher struct {
	ch     *amqp.Channel
	logger *log.Logger
}

func NewAMQPPublisher(conn *amqp.Connection, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue up front so publish never fails on missing infra.
	if _, err := ch.QueueDeclare(orderEventsQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", orderEventsQueue, err)
	}

	return &AMQPPublisher{ch: ch, logger: logger}, nil
}

func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

func (p *AMQPPublisher) OrderEvent(ctx context.Context, event string, o *domain.Order) {
	ev := orderEvent{
		Event:      event,
		OrderID:    o.ID,
		VendorID:   o.VendorID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		Timestamp:  time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Printf("notify: marshal %s order=%s error=%v", event, o.ID, err)
		return
	}

	err = p.ch.PublishWithContext(ctx, "", orderEventsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.logger.Printf("notify: publish %s order=%s error=%v", event, o.ID, err)
	}
}
