// Package client is a Go client for the orderscan HTTP API.
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	"orderscan/pkg/fulfillment"
	"orderscan/pkg/order"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("orderscan: %d %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// Client talks to one orderscan server.
type Client struct {
	http *resty.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetError(&errorBody{}),
	}
}

// Status fetches the system status.
func (c *Client) Status(ctx context.Context) (fulfillment.SystemStatus, error) {
	var out fulfillment.SystemStatus
	err := c.do(ctx, resty.MethodGet, "/api/system/status", nil, &out)
	return out, err
}

// Ping checks liveness.
func (c *Client) Ping(ctx context.Context) (fulfillment.Ping, error) {
	var out fulfillment.Ping
	err := c.do(ctx, resty.MethodGet, "/api/system/ping", nil, &out)
	return out, err
}

// Orders lists one row per order line item.
func (c *Client) Orders(ctx context.Context) ([]fulfillment.Row, error) {
	var out []fulfillment.Row
	err := c.do(ctx, resty.MethodGet, "/api/orders", nil, &out)
	return out, err
}

// Order fetches a full order record.
func (c *Client) Order(ctx context.Context, id string) (order.Order, error) {
	var out order.Order
	if err := c.do(ctx, resty.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return order.Order{}, err
	}
	out.ID = id
	return out, nil
}

// Scan records one scan and returns the server acknowledgement.
func (c *Client) Scan(ctx context.Context, orderID, sku string) (string, error) {
	var out messageBody
	body := map[string]string{"orderId": orderID, "sku": sku}
	err := c.do(ctx, resty.MethodPost, "/api/scan", body, &out)
	return out.Message, err
}

// SetStatus overwrites an order status.
func (c *Client) SetStatus(ctx context.Context, id, status string) (string, error) {
	var out messageBody
	body := map[string]string{"status": status}
	err := c.do(ctx, resty.MethodPut, "/api/orders/"+url.PathEscape(id)+"/status", body, &out)
	return out.Message, err
}

// SetTransfer records the carrier the order is handed to.
func (c *Client) SetTransfer(ctx context.Context, id, transferType string) (string, error) {
	var out messageBody
	body := map[string]string{"transferType": transferType}
	err := c.do(ctx, resty.MethodPut, "/api/orders/"+url.PathEscape(id)+"/transfer", body, &out)
	return out.Message, err
}

// Transfer returns the carrier recorded for the order, "" when none is.
func (c *Client) Transfer(ctx context.Context, id string) (string, error) {
	var out struct {
		TransferType string `json:"transferType"`
	}
	err := c.do(ctx, resty.MethodGet, "/api/orders/"+url.PathEscape(id)+"/transfer", nil, &out)
	return out.TransferType, err
}

// Import bulk-loads orders keyed by id and returns how many were stored.
func (c *Client) Import(ctx context.Context, orders map[string]order.Order) (int, error) {
	var out messageBody
	err := c.do(ctx, resty.MethodPost, "/api/orders/import", orders, &out)
	return out.Imported, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx).SetResult(result)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("orderscan: %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if e, ok := resp.Error().(*errorBody); ok && e.Error != "" {
			msg = e.Error
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
