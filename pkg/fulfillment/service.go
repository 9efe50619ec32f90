// Package fulfillment implements order scanning and status tracking on top of
// an order.Repository.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"orderscan/pkg/jalali"
	"orderscan/pkg/logger"
	"orderscan/pkg/order"
)

// Version is reported by the system status endpoint.
const Version = "1.0.0"

// Row is one (order, SKU) pair of the flattened order listing.
type Row struct {
	ID            string  `json:"id"`
	SKU           string  `json:"sku"`
	Title         string  `json:"title"`
	Color         string  `json:"color"`
	Quantity      int     `json:"quantity"`
	Scanned       int     `json:"scanned"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	ScanTimestamp *string `json:"scanTimestamp"`
}

// SystemStatus is the static health payload.
type SystemStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Ping is the liveness payload.
type Ping struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service records scans and status changes.
type Service struct {
	repo order.Repository
	log  *logger.Logger
	now  func() time.Time
}

// New creates a Service backed by repo.
func New(repo order.Repository, log *logger.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status reports the service as operational.
func (s *Service) Status() SystemStatus {
	return SystemStatus{
		Status:    "operational",
		Timestamp: jalali.Second(s.now()),
		Version:   Version,
	}
}

// Ping reports liveness with a millisecond epoch timestamp.
func (s *Service) Ping() Ping {
	return Ping{Status: "ok", Timestamp: s.now().UnixMilli()}
}

// Rows flattens every order into one row per SKU. Orders keep repository
// order; SKUs are sorted within an order.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		skus := make([]string, 0, len(o.SKUs))
		for sku := range o.SKUs {
			skus = append(skus, sku)
		}
		sort.Strings(skus)
		for _, sku := range skus {
			li := o.SKUs[sku]
			rows = append(rows, Row{
				ID:            o.ID,
				SKU:           sku,
				Title:         li.Title,
				Color:         li.Color,
				Quantity:      li.Quantity,
				Scanned:       li.Scanned,
				Status:        li.Status(),
				Price:         li.Price,
				ScanTimestamp: li.ScanTimestamp,
			})
		}
	}
	return rows, nil
}

// Order returns the full order record.
func (s *Service) Order(ctx context.Context, id string) (order.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return order.Order{}, &NotFoundError{Msg: msgOrderNotFound, Err: err}
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// Scan records one physical scan of sku on the order. Every call increments
// the counter; over-scanning past the ordered quantity is allowed.
func (s *Service) Scan(ctx context.Context, orderID, sku string) error {
	if orderID == "" || sku == "" {
		return &ValidationError{Msg: msgMissingFields}
	}
	err := s.repo.RecordScan(ctx, orderID, sku, jalali.Minute(s.now()))
	if errors.Is(err, order.ErrNotFound) {
		return &NotFoundError{Msg: msgOrderOrSKU, Err: err}
	}
	if err != nil {
		return fmt.Errorf("record scan %s/%s: %w", orderID, sku, err)
	}
	s.log.Info(ctx, "scan recorded", "order_id", orderID, "sku", sku)
	return nil
}

// UpdateStatus overwrites the order status. An unknown order is reported
// before an empty status.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := s.Order(ctx, id); err != nil {
		return err
	}
	if status == "" {
		return &ValidationError{Msg: msgMissingStatus}
	}
	err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, order.ErrNotFound) {
		return &NotFoundError{Msg: msgOrderNotFound, Err: err}
	}
	if err != nil {
		return fmt.Errorf("update status %s: %w", id, err)
	}
	s.log.Info(ctx, "status updated", "order_id", id, "status", status)
	return nil
}

// SetTransfer records the carrier the order is handed to. An unknown order
// is reported before a missing or unknown transfer type.
func (s *Service) SetTransfer(ctx context.Context, id, transferType string) error {
	if _, err := s.Order(ctx, id); err != nil {
		return err
	}
	if err := validateTransfer(transferType); err != nil {
		return err
	}
	err := s.repo.SetTransfer(ctx, id, transferType)
	if errors.Is(err, order.ErrNotFound) {
		return &NotFoundError{Msg: msgOrderNotFound, Err: err}
	}
	if err != nil {
		return fmt.Errorf("set transfer %s: %w", id, err)
	}
	s.log.Info(ctx, "transfer set", "order_id", id, "transfer_type", transferType)
	return nil
}

// Transfer returns the carrier recorded for the order, or "" when none is.
func (s *Service) Transfer(ctx context.Context, id string) (string, error) {
	o, err := s.Order(ctx, id)
	if err != nil {
		return "", err
	}
	return o.TransferType, nil
}

// Import validates and stores a batch of orders keyed by id. Nothing is
// written unless every order is valid. Orders are stored in id order. An
// existing order with the same id takes the new status and line item details
// but keeps its scan progress.
func (s *Service) Import(ctx context.Context, orders map[string]order.Order) (int, error) {
	if len(orders) == 0 {
		return 0, &ValidationError{Msg: msgEmptyImport}
	}
	ids := make([]string, 0, len(orders))
	for id, o := range orders {
		if err := validate(id, o); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		o := orders[id]
		o.ID = id
		if o.Status == "" {
			o.Status = order.StatusPending
		}
		if o.SKUs == nil {
			o.SKUs = make(map[string]order.LineItem)
		}
		if err := s.repo.Create(ctx, o); err != nil {
			return 0, fmt.Errorf("import order %s: %w", id, err)
		}
	}
	s.log.Info(ctx, "orders imported", "count", len(ids))
	return len(ids), nil
}

// Put stores a single order, applying the same rules as Import.
func (s *Service) Put(ctx context.Context, id string, o order.Order) error {
	_, err := s.Import(ctx, map[string]order.Order{id: o})
	return err
}

func validate(id string, o order.Order) error {
	if id == "" {
		return &ValidationError{Msg: msgInvalidOrderID}
	}
	for sku, li := range o.SKUs {
		if sku == "" {
			return &ValidationError{Msg: fmt.Sprintf("%s (order %s)", msgInvalidSKU, id)}
		}
		if li.Quantity < 0 || li.Scanned < 0 {
			return &ValidationError{Msg: fmt.Sprintf("%s (order %s, sku %s)", msgInvalidQuantity, id, sku)}
		}
	}
	if o.TransferType != "" && !order.ValidTransfer(o.TransferType) {
		return &ValidationError{Msg: fmt.Sprintf("%s (order %s)", msgUnknownTransfer, id)}
	}
	return nil
}

func validateTransfer(t string) error {
	if t == "" {
		return &ValidationError{Msg: msgMissingTransfer}
	}
	if !order.ValidTransfer(t) {
		return &ValidationError{Msg: msgUnknownTransfer}
	}
	return nil
}
