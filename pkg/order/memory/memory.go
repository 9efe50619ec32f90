// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"sync"

	"orderscan/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
	ids    []string
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{orders: make(map[string]order.Order)}
}

// Create stores the order, merging into any order with the same ID.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		r.ids = append(r.ids, o.ID)
		r.orders[o.ID] = o.Clone()
		return nil
	}
	r.orders[o.ID] = order.Merge(stored, o)
	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o.Clone(), nil
}

// List returns all orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]order.Order, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.orders[id].Clone())
	}
	return out, nil
}

// RecordScan increments the scan counter of one line item.
func (r *Repository) RecordScan(ctx context.Context, id, sku, scannedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	li, ok := o.SKUs[sku]
	if !ok {
		return order.ErrNotFound
	}
	li.Scanned++
	ts := scannedAt
	li.ScanTimestamp = &ts
	o.SKUs[sku] = li
	return nil
}

// UpdateStatus overwrites the order status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

// SetTransfer records the carrier chosen for the order.
func (r *Repository) SetTransfer(ctx context.Context, id, transferType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.TransferType = transferType
	r.orders[id] = o
	return nil
}
