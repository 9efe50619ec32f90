// Package api exposes the fulfillment service over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"orderscan/pkg/fulfillment"
	"orderscan/pkg/logger"
	"orderscan/pkg/order"
	"orderscan/pkg/otel"
)

// Handler serves the order scanning endpoints.
type Handler struct {
	svc *fulfillment.Service
	log *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc *fulfillment.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// ScanRequest is the body of POST /api/scan.
type ScanRequest struct {
	OrderID string `json:"orderId"`
	SKU     string `json:"sku"`
}

// StatusRequest is the body of PUT /api/orders/{order_id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// TransferRequest is the body of PUT /api/orders/{order_id}/transfer.
type TransferRequest struct {
	TransferType string `json:"transferType"`
}

// TransferResponse reports the carrier recorded for an order.
type TransferResponse struct {
	OrderID      string `json:"orderId"`
	TransferType string `json:"transferType"`
}

// MessageResponse acknowledges a successful write.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImportResponse reports how many orders were stored.
type ImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

const msgInvalidBody = "Invalid request body"

// systemStatus reports the service state.
// @Summary System status
// @Tags system
// @Produce json
// @Success 200 {object} fulfillment.SystemStatus
// @Router /api/system/status [get]
func (h *Handler) systemStatus(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "systemStatusHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, h.svc.Status())
}

// ping is a liveness check.
// @Summary Ping
// @Tags system
// @Produce json
// @Success 200 {object} fulfillment.Ping
// @Router /api/system/ping [get]
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "pingHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, h.svc.Ping())
}

// listOrders lists one row per order line item.
// @Summary List order line items
// @Tags orders
// @Produce json
// @Success 200 {array} fulfillment.Row
// @Router /api/orders [get]
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	rows, err := h.svc.Rows(ctx)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// getOrder returns the full order record.
// @Summary Get order
// @Tags orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{order_id} [get]
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler", attribute.String("order_id", id))
	defer span.End()

	o, err := h.svc.Order(ctx, id)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// scan records a barcode scan against an order line item.
// @Summary Record scan
// @Tags scan
// @Accept json
// @Produce json
// @Param scan body ScanRequest true "Scan"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/scan [post]
func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "scanHandler")
	defer span.End()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, &fulfillment.ValidationError{Msg: msgInvalidBody})
		return
	}
	span.SetAttributes(attribute.String("order_id", req.OrderID), attribute.String("sku", req.SKU))

	if err := h.svc.Scan(ctx, req.OrderID, req.SKU); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Scan successful"})
}

// updateStatus overwrites the order status.
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param status body StatusRequest true "Status"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{order_id}/status [put]
func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "updateStatusHandler", attribute.String("order_id", id))
	defer span.End()

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if _, err := h.svc.Order(ctx, id); err != nil {
			h.writeError(ctx, w, err)
			return
		}
		h.writeError(ctx, w, &fulfillment.ValidationError{Msg: msgInvalidBody})
		return
	}

	if err := h.svc.UpdateStatus(ctx, id, req.Status); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Status updated successfully"})
}

// setTransfer records the carrier the order is handed to.
// @Summary Set order transfer type
// @Tags orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param transfer body TransferRequest true "Transfer type"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{order_id}/transfer [put]
func (h *Handler) setTransfer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "setTransferHandler", attribute.String("order_id", id))
	defer span.End()

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if _, err := h.svc.Order(ctx, id); err != nil {
			h.writeError(ctx, w, err)
			return
		}
		h.writeError(ctx, w, &fulfillment.ValidationError{Msg: msgInvalidBody})
		return
	}
	span.SetAttributes(attribute.String("transfer_type", req.TransferType))

	if err := h.svc.SetTransfer(ctx, id, req.TransferType); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Transfer updated successfully"})
}

// getTransfer returns the carrier recorded for the order.
// @Summary Get order transfer type
// @Tags orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} TransferResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{order_id}/transfer [get]
func (h *Handler) getTransfer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "getTransferHandler", attribute.String("order_id", id))
	defer span.End()

	t, err := h.svc.Transfer(ctx, id)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, TransferResponse{OrderID: id, TransferType: t})
}

// importOrders bulk-loads orders keyed by id.
// @Summary Import orders
// @Tags orders
// @Accept json
// @Produce json
// @Param orders body map[string]order.Order true "Orders by id"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/orders/import [post]
func (h *Handler) importOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "importOrdersHandler")
	defer span.End()

	var orders map[string]order.Order
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		h.writeError(ctx, w, &fulfillment.ValidationError{Msg: msgInvalidBody})
		return
	}

	n, err := h.svc.Import(ctx, orders)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Message: "Orders imported", Imported: n})
}

// writeError maps service errors onto status codes.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		ve *fulfillment.ValidationError
		nf *fulfillment.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Msg})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: nf.Msg})
	default:
		h.log.Error(ctx, "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
