package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brew-assistant/internal/menu"
)

func nowUTC() time.Time { return time.Now().UTC() }

// Postgres is the persistent Ledger backend.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// EnsureSchema creates the order tables if they are missing. One statement
// per Exec: the driver's extended protocol rejects batched DDL.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS orders (
    id            TEXT PRIMARY KEY,
    order_number  TEXT NOT NULL UNIQUE,
    table_number  TEXT NOT NULL,
    customer_name TEXT NOT NULL,
    total_pence   BIGINT NOT NULL,
    status        TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
)`); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS order_items (
    id          BIGSERIAL PRIMARY KEY,
    order_id    TEXT NOT NULL REFERENCES orders(id),
    name        TEXT NOT NULL,
    price_pence BIGINT NOT NULL,
    notes       TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT ''
)`); err != nil {
		return fmt.Errorf("create order_items table: %w", err)
	}
	return nil
}

func (p *Postgres) Append(ctx context.Context, o Order) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, table_number, customer_name, total_pence, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.Number, o.Table, o.CustomerName, int64(o.Total), string(o.Status), o.CreatedAt); err != nil {
		return fmt.Errorf("insert order %s: %w", o.Number, err)
	}
	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, name, price_pence, notes, category)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.Name, int64(item.Price), item.Notes, item.Category); err != nil {
			return fmt.Errorf("insert order item %s: %w", item.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]Order, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, order_number, table_number, customer_name, total_pence, status, created_at
		FROM orders ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	index := make(map[string]int)
	for rows.Next() {
		var o Order
		var total int64
		var status string
		if err := rows.Scan(&o.ID, &o.Number, &o.Table, &o.CustomerName, &total, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Total = menu.Pence(total)
		o.Status = Status(status)
		index[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := p.db.QueryContext(ctx, `
		SELECT order_id, name, price_pence, notes, category FROM order_items ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var line Line
		var price int64
		if err := itemRows.Scan(&orderID, &line.Name, &price, &line.Notes, &line.Category); err != nil {
			return nil, err
		}
		line.Price = menu.Pence(price)
		if i, ok := index[orderID]; ok {
			out[i].Items = append(out[i].Items, line)
		}
	}
	return out, itemRows.Err()
}

func (p *Postgres) MarkCompleted(ctx context.Context, number string) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE orders SET status = 'completed' WHERE order_number = $1 AND status = 'pending'
	`, number)
	if err != nil {
		return fmt.Errorf("mark completed %s: %w", number, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) NextNumber(ctx context.Context) (string, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE created_at::date = CURRENT_DATE
	`).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("count today's orders: %w", err)
	}
	return fmt.Sprintf("BRW_%s_%03d", nowUTC().Format("20060102"), count+1), nil
}
