package order

import (
	"context"
	"errors"
)

// Item statuses derived from scan progress.
const (
	StatusPending   = "Pending"
	StatusFulfilled = "Fulfilled"
)

// Carriers an order can be handed over to.
const (
	TransferPost     = "پست"
	TransferSnappBox = "اسنپ باکس"
	TransferMahex    = "ماهکس"
)

// TransferTypes lists the accepted carriers in display order.
var TransferTypes = []string{TransferPost, TransferSnappBox, TransferMahex}

// ValidTransfer reports whether t names a known carrier.
func ValidTransfer(t string) bool {
	for _, known := range TransferTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Order represents a customer order awaiting fulfillment. The JSON shape is the
// record returned verbatim by the API and accepted by the import endpoint.
type Order struct {
	ID           string              `json:"-"`
	Status       string              `json:"Status"`
	TransferType string              `json:"TransferType,omitempty"`
	SKUs         map[string]LineItem `json:"SKUs"`
}

// LineItem is a single SKU line of an order.
type LineItem struct {
	Title         string  `json:"Title"`
	Color         string  `json:"Color"`
	Quantity      int     `json:"Quantity"`
	Scanned       int     `json:"Scanned"`
	Price         float64 `json:"Price"`
	ScanTimestamp *string `json:"ScanTimestamp,omitempty"`
}

// Status reports whether enough units have been scanned.
func (li LineItem) Status() string {
	if li.Scanned >= li.Quantity {
		return StatusFulfilled
	}
	return StatusPending
}

// Clone returns a deep copy so callers can't mutate repository state.
func (o Order) Clone() Order {
	out := Order{ID: o.ID, Status: o.Status, TransferType: o.TransferType, SKUs: make(map[string]LineItem, len(o.SKUs))}
	for sku, li := range o.SKUs {
		if li.ScanTimestamp != nil {
			ts := *li.ScanTimestamp
			li.ScanTimestamp = &ts
		}
		out.SKUs[sku] = li
	}
	return out
}

// Merge applies incoming over stored without losing scan progress. Line item
// details and the order status come from incoming; Scanned keeps the larger
// count and ScanTimestamp keeps the stored value unless incoming carries one.
// Stored SKUs missing from incoming are kept, as is the stored transfer type
// when incoming has none.
func Merge(stored, incoming Order) Order {
	out := incoming.Clone()
	if out.TransferType == "" {
		out.TransferType = stored.TransferType
	}
	for sku, old := range stored.Clone().SKUs {
		li, ok := out.SKUs[sku]
		if !ok {
			out.SKUs[sku] = old
			continue
		}
		if old.Scanned > li.Scanned {
			li.Scanned = old.Scanned
		}
		if li.ScanTimestamp == nil {
			li.ScanTimestamp = old.ScanTimestamp
		}
		out.SKUs[sku] = li
	}
	return out
}

// Repository defines behavior for persisting orders.
//
// List returns orders in insertion order. Create merges into an existing
// order with the same ID as Merge does, so scan counts never go down.
// RecordScan must increment the scan counter atomically and returns
// ErrNotFound when either the order or the SKU is unknown.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	RecordScan(ctx context.Context, id, sku, scannedAt string) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetTransfer(ctx context.Context, id, transferType string) error
}

// ErrNotFound indicates the requested order (or SKU) does not exist.
var ErrNotFound = errors.New("order not found")
