package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostgresAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	o := Order{
		ID:           "id-1",
		Number:       "BRW_20250601_001",
		Table:        "5",
		CustomerName: "Sarah",
		Items: []Line{
			{Name: "Latte", Price: 370, Notes: "with oat milk", Category: "coffee"},
			{Name: "Eggs Benedict", Price: 1000, Category: "food"},
		},
		Total:     1370,
		Status:    StatusPending,
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.Number, o.Table, o.CustomerName, int64(1370), "pending", o.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(o.ID, "Latte", int64(370), "with oat milk", "coffee").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(o.ID, "Eggs Benedict", int64(1000), "", "food").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	assert.NoError(t, NewPostgres(db).Append(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("BRW_20250601_001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("BRW_20250601_999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	p := NewPostgres(db)
	assert.NoError(t, p.MarkCompleted(context.Background(), "BRW_20250601_001"))
	assert.ErrorIs(t, p.MarkCompleted(context.Background(), "BRW_20250601_999"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNextNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := NewPostgres(db).NextNumber(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, n, "_005")
	assert.Regexp(t, `^BRW_\d{8}_005$`, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, order_number").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_number", "table_number", "customer_name", "total_pence", "status", "created_at"}).
			AddRow("id-1", "BRW_20250601_001", "5", "Sarah", int64(1370), "pending", created),
	)
	mock.ExpectQuery("SELECT order_id, name").WillReturnRows(
		sqlmock.NewRows([]string{"order_id", "name", "price_pence", "notes", "category"}).
			AddRow("id-1", "Latte", int64(370), "with oat milk", "coffee").
			AddRow("id-1", "Eggs Benedict", int64(1000), "", "food"),
	)

	orders, err := NewPostgres(db).List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Latte", orders[0].Items[0].Name)
	assert.Equal(t, StatusPending, orders[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
