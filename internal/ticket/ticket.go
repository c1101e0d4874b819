// Package ticket pushes committed orders to the kitchen over RabbitMQ.
package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brew-assistant/internal/common/mq"
	"brew-assistant/internal/ledger"
	"brew-assistant/internal/menu"
)

type Message struct {
	OrderNumber  string        `json:"order_number"`
	Table        string        `json:"table"`
	CustomerName string        `json:"customer_name"`
	Items        []ledger.Line `json:"items"`
	Total        menu.Pence    `json:"total"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AMQPPublisher fans committed orders out to the kitchen ticket queue.
type AMQPPublisher struct {
	client *mq.Client
}

func NewAMQPPublisher(client *mq.Client) *AMQPPublisher {
	return &AMQPPublisher{client: client}
}

func (p *AMQPPublisher) Publish(ctx context.Context, o ledger.Order) error {
	body, err := json.Marshal(Message{
		OrderNumber:  o.Number,
		Table:        o.Table,
		CustomerName: o.CustomerName,
		Items:        o.Items,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal ticket %s: %w", o.Number, err)
	}
	if err := p.client.PublishPersistent(ctx, mq.TicketsExchange, "", uuid.NewString(), o.Number, body); err != nil {
		return fmt.Errorf("publish ticket %s: %w", o.Number, err)
	}
	return nil
}

// Nop is used when RabbitMQ is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, ledger.Order) error { return nil }
