package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"orderscan/pkg/api"
	"orderscan/pkg/fulfillment"
	"orderscan/pkg/logger"
	"orderscan/pkg/order"
	"orderscan/pkg/order/memory"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	log := logger.New(io.Discard, logger.LevelInfo, "test", nil)
	svc := fulfillment.New(memory.New(), log)
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(svc, log), log, noop.NewTracerProvider().Tracer("test")))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	n, err := c.Import(ctx, map[string]order.Order{
		"O1": {Status: "Pending", SKUs: map[string]order.LineItem{
			"A1": {Title: "Widget", Color: "red", Quantity: 2, Price: 9.99},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	msg, err := c.Scan(ctx, "O1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Scan successful", msg)

	rows, err := c.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Scanned)

	msg, err = c.SetStatus(ctx, "O1", "Shipped")
	require.NoError(t, err)
	assert.Equal(t, "Status updated successfully", msg)

	o, err := c.Order(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, "O1", o.ID)
	assert.Equal(t, "Shipped", o.Status)
	assert.Equal(t, 1, o.SKUs["A1"].Scanned)

	msg, err = c.SetTransfer(ctx, "O1", order.TransferPost)
	require.NoError(t, err)
	assert.Equal(t, "Transfer updated successfully", msg)
	transfer, err := c.Transfer(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, order.TransferPost, transfer)

	p, err := c.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", p.Status)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "operational", st.Status)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	_, err := c.Scan(ctx, "O9", "A1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Order or SKU not found", apiErr.Message)

	_, err = c.Scan(ctx, "", "")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Missing required fields", apiErr.Message)

	o, err := c.Order(ctx, "O9")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Empty(t, o.ID)

	_, err = c.SetTransfer(ctx, "O9", order.TransferPost)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
