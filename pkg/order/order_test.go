package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemStatus(t *testing.T) {
	tests := []struct {
		quantity, scanned int
		want              string
	}{
		{2, 0, StatusPending},
		{2, 1, StatusPending},
		{2, 2, StatusFulfilled},
		{2, 3, StatusFulfilled},
		{0, 0, StatusFulfilled},
	}
	for _, tt := range tests {
		li := LineItem{Quantity: tt.quantity, Scanned: tt.scanned}
		assert.Equal(t, tt.want, li.Status(), "quantity=%d scanned=%d", tt.quantity, tt.scanned)
	}
}

func TestOrderJSONShape(t *testing.T) {
	ts := "1405/07/26 10:15"
	o := Order{
		ID:     "O1",
		Status: "Pending",
		SKUs: map[string]LineItem{
			"A1": {Title: "Widget", Color: "red", Quantity: 2, Scanned: 1, Price: 9.99, ScanTimestamp: &ts},
			"B2": {Title: "Gadget", Color: "blue", Quantity: 1, Price: 5},
		},
	}
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.NotContains(t, got, "ID")
	assert.NotContains(t, got, "TransferType")
	assert.Equal(t, "Pending", got["Status"])

	skus := got["SKUs"].(map[string]any)
	a1 := skus["A1"].(map[string]any)
	assert.Equal(t, ts, a1["ScanTimestamp"])
	b2 := skus["B2"].(map[string]any)
	assert.NotContains(t, b2, "ScanTimestamp")
}

func TestOrderClone(t *testing.T) {
	ts := "1405/07/26 10:15"
	o := Order{ID: "O1", SKUs: map[string]LineItem{"A1": {ScanTimestamp: &ts}}}
	c := o.Clone()
	*c.SKUs["A1"].ScanTimestamp = "changed"
	c.SKUs["B2"] = LineItem{}
	assert.Equal(t, "1405/07/26 10:15", *o.SKUs["A1"].ScanTimestamp)
	assert.Len(t, o.SKUs, 1)
}

func TestMergeKeepsScanProgress(t *testing.T) {
	ts := "1405/07/26 10:15"
	stored := Order{
		ID:           "O1",
		Status:       "Pending",
		TransferType: TransferPost,
		SKUs: map[string]LineItem{
			"A1": {Title: "Widget", Quantity: 2, Scanned: 2, ScanTimestamp: &ts},
			"B2": {Title: "Gadget", Quantity: 1, Scanned: 1},
		},
	}
	incoming := Order{
		ID:     "O1",
		Status: "Packed",
		SKUs: map[string]LineItem{
			"A1": {Title: "Widget v2", Quantity: 3, Scanned: 0},
			"C3": {Title: "Cog", Quantity: 1},
		},
	}

	got := Merge(stored, incoming)
	assert.Equal(t, "Packed", got.Status)
	assert.Equal(t, TransferPost, got.TransferType)
	require.Len(t, got.SKUs, 3)

	a1 := got.SKUs["A1"]
	assert.Equal(t, "Widget v2", a1.Title)
	assert.Equal(t, 3, a1.Quantity)
	assert.Equal(t, 2, a1.Scanned)
	require.NotNil(t, a1.ScanTimestamp)
	assert.Equal(t, ts, *a1.ScanTimestamp)
	assert.Equal(t, 1, got.SKUs["B2"].Scanned)
	assert.Equal(t, 0, got.SKUs["C3"].Scanned)

	*a1.ScanTimestamp = "changed"
	assert.Equal(t, "1405/07/26 10:15", *stored.SKUs["A1"].ScanTimestamp)
}

func TestMergeTakesHigherIncomingCount(t *testing.T) {
	newer := "1405/07/27 09:00"
	stored := Order{SKUs: map[string]LineItem{"A1": {Quantity: 5, Scanned: 1}}}
	incoming := Order{TransferType: TransferMahex, SKUs: map[string]LineItem{"A1": {Quantity: 5, Scanned: 4, ScanTimestamp: &newer}}}

	got := Merge(stored, incoming)
	assert.Equal(t, 4, got.SKUs["A1"].Scanned)
	assert.Equal(t, newer, *got.SKUs["A1"].ScanTimestamp)
	assert.Equal(t, TransferMahex, got.TransferType)
}

func TestValidTransfer(t *testing.T) {
	for _, tt := range TransferTypes {
		assert.True(t, ValidTransfer(tt), tt)
	}
	assert.False(t, ValidTransfer(""))
	assert.False(t, ValidTransfer("DHL"))
}
