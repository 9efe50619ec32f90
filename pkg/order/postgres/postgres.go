// Package postgres persists orders in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"orderscan/pkg/order"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	seq           BIGSERIAL,
	id            TEXT PRIMARY KEY,
	status        TEXT NOT NULL,
	transfer_type TEXT NOT NULL DEFAULT ''
);
ALTER TABLE orders ADD COLUMN IF NOT EXISTS transfer_type TEXT NOT NULL DEFAULT '';
CREATE TABLE IF NOT EXISTS line_items (
	order_id       TEXT NOT NULL REFERENCES orders(id),
	sku            TEXT NOT NULL,
	title          TEXT NOT NULL,
	color          TEXT NOT NULL,
	quantity       INT NOT NULL,
	scanned        INT NOT NULL,
	price          DOUBLE PRECISION NOT NULL,
	scan_timestamp TEXT,
	PRIMARY KEY (order_id, sku)
);`

const selectOrders = `SELECT o.id, o.status, o.transfer_type, li.sku, li.title, li.color, li.quantity, li.scanned, li.price, li.scan_timestamp
FROM orders o LEFT JOIN line_items li ON li.order_id = o.id`

const upsertOrder = `INSERT INTO orders (id, status, transfer_type) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status,
	transfer_type = COALESCE(NULLIF(EXCLUDED.transfer_type, ''), orders.transfer_type)`

const upsertLineItem = `INSERT INTO line_items (order_id, sku, title, color, quantity, scanned, price, scan_timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (order_id, sku) DO UPDATE SET
	title = EXCLUDED.title,
	color = EXCLUDED.color,
	quantity = EXCLUDED.quantity,
	price = EXCLUDED.price,
	scanned = GREATEST(line_items.scanned, EXCLUDED.scanned),
	scan_timestamp = COALESCE(EXCLUDED.scan_timestamp, line_items.scan_timestamp)`

// Repository persists orders in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the tables the repository needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	return nil
}

// Create inserts the order. For an existing ID the status and line item
// details are replaced while scan counts and timestamps only move forward;
// see order.Merge.
func (r *Repository) Create(ctx context.Context, o order.Order) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, upsertOrder, o.ID, o.Status, o.TransferType)
	if err != nil {
		return fmt.Errorf("postgres: upsert order %s: %w", o.ID, err)
	}
	skus := make([]string, 0, len(o.SKUs))
	for sku := range o.SKUs {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	for _, sku := range skus {
		li := o.SKUs[sku]
		_, err = tx.ExecContext(ctx, upsertLineItem,
			o.ID, sku, li.Title, li.Color, li.Quantity, li.Scanned, li.Price, li.ScanTimestamp)
		if err != nil {
			return fmt.Errorf("postgres: upsert line item %s/%s: %w", o.ID, sku, err)
		}
	}
	return tx.Commit()
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrders+" WHERE o.id = $1 ORDER BY li.sku", id)
	if err != nil {
		return order.Order{}, err
	}
	defer rows.Close()
	orders, err := collect(rows)
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, order.ErrNotFound
	}
	return orders[0], nil
}

// List fetches all orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrders+" ORDER BY o.seq, li.sku")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// RecordScan increments the scan counter in a single statement.
func (r *Repository) RecordScan(ctx context.Context, id, sku, scannedAt string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE line_items SET scanned = scanned + 1, scan_timestamp = $3 WHERE order_id = $1 AND sku = $2",
		id, sku, scannedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

// UpdateStatus overwrites the order status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

// SetTransfer records the carrier chosen for the order.
func (r *Repository) SetTransfer(ctx context.Context, id, transferType string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET transfer_type = $2 WHERE id = $1", id, transferType)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

// collect folds joined order/line item rows into orders, keeping row order.
func collect(rows *sql.Rows) ([]order.Order, error) {
	var (
		orders []order.Order
		index  = make(map[string]int)
	)
	for rows.Next() {
		var (
			id, status   string
			transfer     string
			sku          sql.NullString
			title, color sql.NullString
			qty, scanned sql.NullInt64
			price        sql.NullFloat64
			scannedAt    sql.NullString
		)
		if err := rows.Scan(&id, &status, &transfer, &sku, &title, &color, &qty, &scanned, &price, &scannedAt); err != nil {
			return nil, err
		}
		i, ok := index[id]
		if !ok {
			i = len(orders)
			index[id] = i
			orders = append(orders, order.Order{ID: id, Status: status, TransferType: transfer, SKUs: make(map[string]order.LineItem)})
		}
		if !sku.Valid {
			continue
		}
		li := order.LineItem{
			Title:    title.String,
			Color:    color.String,
			Quantity: int(qty.Int64),
			Scanned:  int(scanned.Int64),
			Price:    price.Float64,
		}
		if scannedAt.Valid {
			ts := scannedAt.String
			li.ScanTimestamp = &ts
		}
		orders[i].SKUs[sku.String] = li
	}
	return orders, rows.Err()
}
