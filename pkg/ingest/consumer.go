// Package ingest seeds the order store from a Kafka topic. Each message key
// is an order id and its value the order record.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"orderscan/pkg/fulfillment"
	"orderscan/pkg/logger"
	"orderscan/pkg/order"
)

// Reader is the subset of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Store accepts decoded orders.
type Store interface {
	Put(ctx context.Context, id string, o order.Order) error
}

// Consumer moves orders from Kafka into the store.
type Consumer struct {
	reader  Reader
	store   Store
	log     *logger.Logger
	backoff time.Duration
}

// NewReader creates a kafka-go reader with manual commits.
func NewReader(brokers []string, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        "orderscan",
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
}

// NewConsumer creates a Consumer.
func NewConsumer(r Reader, store Store, log *logger.Logger) *Consumer {
	return &Consumer{reader: r, store: store, log: log, backoff: time.Second}
}

// Run consumes until ctx is cancelled, then closes the reader.
//
// Undecodable or invalid messages are committed so they are skipped; storage
// failures are left uncommitted and retried after a pause.
func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info(ctx, "consumer stopped")
				return
			}
			c.log.Error(ctx, "fetch message", "error", err)
			if !c.sleep(ctx) {
				return
			}
			continue
		}

		if err := c.handle(ctx, m); err != nil {
			var ve *fulfillment.ValidationError
			if !errors.As(err, &ve) {
				c.log.Error(ctx, "store order", "order_id", string(m.Key), "error", err)
				if !c.sleep(ctx) {
					return
				}
				continue
			}
			c.log.Warn(ctx, "skipping message", "order_id", string(m.Key), "offset", m.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error(ctx, "commit message", "error", err)
			continue
		}
		c.log.Debug(ctx, "message committed", "order_id", string(m.Key), "offset", m.Offset)
	}
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) error {
	var o order.Order
	if err := json.Unmarshal(m.Value, &o); err != nil {
		return &fulfillment.ValidationError{Msg: "invalid order JSON: " + err.Error()}
	}
	return c.store.Put(ctx, string(m.Key), o)
}

func (c *Consumer) sleep(ctx context.Context) bool {
	t := time.NewTimer(c.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
