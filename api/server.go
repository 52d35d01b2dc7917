/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. Metrics:    Prometheus counters/latency (see metrics.go)
  5. CORS:       Cross-origin requests for frontend tooling

ROUTE GROUPS:
  /api/customers/*   Customer registration, lookup, deposits
  /api/products/*    Product catalog
  /api/sales/*       Sale lifecycle
  /api/reports/*     The six report queries
  /api/scenarios/*   Demo datasets
  /health            Liveness check
  /metrics           Prometheus scrape endpoint

SECURITY NOTE:
  No authentication middleware. All endpoints are public; put the
  server behind a gateway if that matters.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Customer routes
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.RegisterCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Post("/{id}/deposits", h.Deposit)
		})

		// Product routes
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.RegisterProduct)
			r.Get("/{code}", h.GetProduct)
		})

		// Sale routes
		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.OpenSale)
			r.Get("/{code}", h.GetSale)
			r.Post("/{code}/items", h.AddItem)
			r.Post("/{code}/finalize", h.FinalizeSale)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/products-sold", h.ProductsSold)
			r.Get("/customers/{id}/purchases", h.CustomerPurchases)
			r.Get("/top-customers", h.TopCustomers)
			r.Get("/customer-activity", h.CustomerActivity)
			r.Get("/summary", h.Summary)
			r.Get("/unsold-products", h.UnsoldProducts)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
