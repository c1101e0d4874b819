package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brew-assistant/internal/session"
)

// ErrEmptyCart guards commit: checking out nothing is refused upstream and
// rejected here as well.
var ErrEmptyCart = errors.New("cart is empty")

// Commit freezes the cart into a new pending Order and appends it to the
// ledger. Not idempotent: every call with a non-empty cart mints a new order
// and a new number. The caller clears the session afterwards.
func Commit(ctx context.Context, l Ledger, s *session.Session, customerName string) (Order, error) {
	if len(s.Cart) == 0 {
		return Order{}, ErrEmptyCart
	}
	number, err := l.NextNumber(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("next order number: %w", err)
	}

	o := Order{
		ID:           uuid.NewString(),
		Number:       number,
		Table:        s.TableNumber,
		CustomerName: customerName,
		Items:        make([]Line, 0, len(s.Cart)),
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	for _, line := range s.Cart {
		o.Items = append(o.Items, Line{
			Name:     line.ItemName,
			Price:    line.UnitPrice,
			Notes:    line.Notes,
			Category: string(line.Category),
		})
		o.Total += line.UnitPrice
	}

	if err := l.Append(ctx, o); err != nil {
		return Order{}, fmt.Errorf("append order %s: %w", number, err)
	}
	return o, nil
}
