package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "orderscan/docs"
	"orderscan/pkg/logger"
	"orderscan/pkg/otel"
)

// NewRouter wires the handlers under /api with tracing, access logging and a
// CORS policy that admits any origin.
func NewRouter(h *Handler, log *logger.Logger, tracer trace.Tracer) http.Handler {
	r := mux.NewRouter()
	r.Use(traceMiddleware(tracer))
	r.Use(log.AccessLog)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/system/status", h.systemStatus).Methods(http.MethodGet)
	api.HandleFunc("/system/ping", h.ping).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/import", h.importOrders).Methods(http.MethodPost)
	api.HandleFunc("/orders/{order_id}", h.getOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{order_id}/status", h.updateStatus).Methods(http.MethodPut)
	api.HandleFunc("/orders/{order_id}/transfer", h.setTransfer).Methods(http.MethodPut)
	api.HandleFunc("/orders/{order_id}/transfer", h.getTransfer).Methods(http.MethodGet)
	api.HandleFunc("/scan", h.scan).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
	)
	return cors(r)
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.Extract(r.Context(), r.Header)
			ctx = otel.InjectTracing(ctx, tracer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
