// Package ticketsub consumes kitchen ticket messages and prints them, a
// stand-in for the kitchen ticket printer.
package ticketsub

import (
	"context"
	"encoding/json"

	"brew-assistant/internal/common/config"
	"brew-assistant/internal/common/logger"
	"brew-assistant/internal/common/mq"
	"brew-assistant/internal/ticket"
)

func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("ticket-subscriber")

	client, err := mq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareAll(); err != nil {
		return err
	}

	msgs, err := client.Consume(mq.TicketsQueue, "ticket-subscriber", 1)
	if err != nil {
		return err
	}
	lg.Info("consuming", map[string]any{"queue": mq.TicketsQueue})

	for {
		select {
		case <-ctx.Done():
			lg.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var t ticket.Message
			if err := json.Unmarshal(d.Body, &t); err != nil {
				lg.Error("bad_ticket", err, map[string]any{"body": string(d.Body)})
				_ = d.Nack(false, false)
				continue
			}
			lg.Info("ticket_received", map[string]any{
				"order_number": t.OrderNumber,
				"table":        t.Table,
				"customer":     t.CustomerName,
				"items":        len(t.Items),
				"total":        t.Total.String(),
			})
			_ = d.Ack(false)
		}
	}
}
