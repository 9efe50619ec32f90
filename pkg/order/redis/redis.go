// Package redis stores orders in Redis as JSON documents.
//
// Each order lives under "order:<id>"; the "orders" list keeps insertion
// order. Mutations run inside WATCH/MULTI so concurrent scans never lose an
// increment.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"orderscan/pkg/order"
)

const (
	indexKey   = "orders"
	maxRetries = 10
)

// ErrConflict is returned when an optimistic transaction keeps losing races.
var ErrConflict = errors.New("redis: too many concurrent updates")

// Repository persists orders in Redis.
type Repository struct {
	client *goredis.Client
}

// New creates a Redis repository.
func New(client *goredis.Client) *Repository {
	return &Repository{client: client}
}

func orderKey(id string) string {
	return "order:" + id
}

// Create stores the order, merging into any order with the same ID.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	key := orderKey(o.ID)
	return r.retry(ctx, func(tx *goredis.Tx) error {
		existing, err := tx.Get(ctx, key).Bytes()
		isNew := errors.Is(err, goredis.Nil)
		if err != nil && !isNew {
			return err
		}
		next := o
		if !isNew {
			stored, err := decode(o.ID, existing)
			if err != nil {
				return err
			}
			next = order.Merge(stored, o)
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			if isNew {
				pipe.RPush(ctx, indexKey, o.ID)
			}
			return nil
		})
		return err
	}, key)
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	raw, err := r.client.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	return decode(id, raw)
}

// List returns all orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	ids, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]order.Order, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = orderKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		o, err := decode(ids[i], []byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// RecordScan increments the scan counter of one line item.
func (r *Repository) RecordScan(ctx context.Context, id, sku, scannedAt string) error {
	return r.update(ctx, id, func(o *order.Order) error {
		li, ok := o.SKUs[sku]
		if !ok {
			return order.ErrNotFound
		}
		li.Scanned++
		ts := scannedAt
		li.ScanTimestamp = &ts
		o.SKUs[sku] = li
		return nil
	})
}

// UpdateStatus overwrites the order status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.update(ctx, id, func(o *order.Order) error {
		o.Status = status
		return nil
	})
}

// SetTransfer records the carrier chosen for the order.
func (r *Repository) SetTransfer(ctx context.Context, id, transferType string) error {
	return r.update(ctx, id, func(o *order.Order) error {
		o.TransferType = transferType
		return nil
	})
}

// update applies fn to the stored order under an optimistic lock.
func (r *Repository) update(ctx context.Context, id string, fn func(*order.Order) error) error {
	key := orderKey(id)
	return r.retry(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return order.ErrNotFound
		}
		if err != nil {
			return err
		}
		o, err := decode(id, raw)
		if err != nil {
			return err
		}
		if err := fn(&o); err != nil {
			return err
		}
		updated, err := json.Marshal(o)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
}

func (r *Repository) retry(ctx context.Context, fn func(*goredis.Tx) error, keys ...string) error {
	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

func decode(id string, raw []byte) (order.Order, error) {
	var o order.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return order.Order{}, fmt.Errorf("redis: decode order %s: %w", id, err)
	}
	o.ID = id
	if o.SKUs == nil {
		o.SKUs = make(map[string]order.LineItem)
	}
	return o, nil
}
