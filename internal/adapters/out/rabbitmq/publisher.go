// Package rabbitmq publishes order events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"foodorder/internal/core/ports"
)

const (
	OrdersExchange = "orders_topic"

	// EventTypeOrderStatusChanged is the message type of every order event.
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

var ErrPublishNacked = errors.New("publish NACK from broker")

// OrderStatusChanged is the JSON body of an order event.
type OrderStatusChanged struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	CourierID  *string   `json:"courierId,omitempty"`
	Status     string    `json:"status"`
	OrderPaid  bool      `json:"orderPaid"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RoutingKey is order.status.<status>.
func RoutingKey(event ports.OrderEvent) string {
	return "order.status." + event.Status.String()
}

func NewOrderStatusChanged(event ports.OrderEvent) OrderStatusChanged {
	msg := OrderStatusChanged{
		Type:       EventTypeOrderStatusChanged,
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		Status:     event.Status.String(),
		OrderPaid:  event.Paid,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.CourierID != nil {
		id := event.CourierID.String()
		msg.CourierID = &id
	}
	return msg
}

// Publisher implements ports.OrderEventPublisher with publisher confirms.
// Each publish waits on the confirmation of its own delivery tag.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects, declares the exchange and enables confirms.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(NewOrderStatusChanged(event))
	if err != nil {
		return err
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, OrdersExchange, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         EventTypeOrderStatusChanged,
		MessageId:    event.OrderID.String() + ":" + event.Status.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return err
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrPublishNacked
	}
	return nil
}

func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (p *Publisher) Close() error {
	return errors.Join(p.ch.Close(), p.conn.Close())
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ports.OrderEvent) error {
	return nil
}
