package session

import (
	"time"

	"brew-assistant/internal/menu"
)

type State string

const (
	// StateAwaitingTable is the initial state, before a table number is known.
	StateAwaitingTable State = "awaiting_table"
	// StateBrowsing is the resting state once a table is set.
	StateBrowsing State = "browsing"
	// StateAwaitingMilkChoice means one or more coffee items are queued in
	// Pending, each needing a milk selection before it becomes a cart line.
	StateAwaitingMilkChoice State = "awaiting_milk_choice"
	// StateAwaitingCheckoutName means the next message is the customer name.
	StateAwaitingCheckoutName State = "awaiting_checkout_name"
)

type CartLine struct {
	ID        string
	ItemName  string
	UnitPrice menu.Pence
	Notes     string
	Category  menu.Category
}

// Session is the per-sender conversation state. Invariants: TableNumber is
// set before any dialogue other than table capture is reachable, and Pending
// is non-empty exactly when State is StateAwaitingMilkChoice.
type Session struct {
	SenderID     string
	TableNumber  string
	Cart         []CartLine
	State        State
	Pending      []menu.Item
	CustomerName string
	LastActivity time.Time
}

func New(senderID string) *Session {
	return &Session{SenderID: senderID, State: StateAwaitingTable}
}

// CartTotal sums the unit prices of every cart line.
func (s *Session) CartTotal() menu.Pence {
	var total menu.Pence
	for _, l := range s.Cart {
		total += l.UnitPrice
	}
	return total
}

// Torn reports a state/pending mismatch, the defect class the engine repairs
// instead of crashing on.
func (s *Session) Torn() bool {
	if s.State == StateAwaitingMilkChoice {
		return len(s.Pending) == 0
	}
	return len(s.Pending) > 0
}
