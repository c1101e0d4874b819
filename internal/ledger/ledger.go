// Package ledger owns committed orders: the immutable snapshots the kitchen
// works from. Backends are pluggable; tests and database-less deploys use
// the in-memory one, production uses Postgres.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brew-assistant/internal/menu"
)

var ErrNotFound = errors.New("order not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Line struct {
	Name     string     `json:"name"`
	Price    menu.Pence `json:"price"`
	Notes    string     `json:"notes,omitempty"`
	Category string     `json:"category,omitempty"`
}

// Order is an immutable snapshot of a cart at commit time. The only legal
// mutation afterwards is the pending -> completed status flip.
type Order struct {
	ID           string     `json:"id"`
	Number       string     `json:"order_number"`
	Table        string     `json:"table"`
	CustomerName string     `json:"customer_name"`
	Items        []Line     `json:"items"`
	Total        menu.Pence `json:"total"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Ledger interface {
	Append(ctx context.Context, o Order) error
	List(ctx context.Context) ([]Order, error)
	MarkCompleted(ctx context.Context, number string) error
	NextNumber(ctx context.Context) (string, error)
}

// Memory is the in-process Ledger.
type Memory struct {
	mu     sync.Mutex
	orders []Order
	seq    int
	now    func() time.Time
}

func NewMemory() *Memory { return &Memory{now: time.Now} }

func (m *Memory) Append(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return nil
}

func (m *Memory) List(_ context.Context) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *Memory) MarkCompleted(_ context.Context, number string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].Number == number && m.orders[i].Status == StatusPending {
			m.orders[i].Status = StatusCompleted
			return nil
		}
	}
	return ErrNotFound
}

// NextNumber hands out a monotonic per-day display number. The upstream
// implementation drew random numbers that could collide; a sequence keeps
// kitchen tickets unambiguous.
func (m *Memory) NextNumber(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("BRW_%s_%03d", m.now().UTC().Format("20060102"), m.seq), nil
}
