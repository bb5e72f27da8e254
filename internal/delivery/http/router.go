package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Listings *ListingHandler
	Orders   *OrderHandler
	Disputes *DisputeHandler
	Ratings  *RatingHandler
	Vault    *VaultHandler
	Admin    *AdminHandler
}

// NewRouter wires every handler under /api/v1 plus the ops endpoints.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/listings", func(r chi.Router) {
			r.Post("/", h.Listings.Create)
			r.Get("/", h.Listings.ListActive)
			r.Get("/{id}", h.Listings.GetByID)
			r.Patch("/{id}", h.Listings.Update)
			r.Post("/{id}/deactivate", h.Listings.Deactivate)
			r.Get("/{id}/available", h.Listings.Available)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)
			r.Get("/count", h.Orders.Count)
			r.Get("/{id}", h.Orders.GetByID)
			r.Post("/{id}/fund", h.Orders.Fund)
			r.Post("/{id}/ship", h.Orders.Ship)
			r.Post("/{id}/confirm-delivery", h.Orders.ConfirmDelivery)
			r.Get("/{id}/can-confirm", h.Orders.CanConfirm)
			r.Post("/{id}/release", h.Orders.Release)
			r.Post("/{id}/refund", h.Orders.Refund)
			r.Post("/{id}/cancel", h.Orders.Cancel)
			r.Post("/{id}/auto-release", h.Orders.AutoRelease)
			r.Get("/{id}/dispute", h.Disputes.GetByOrderID)
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", h.Disputes.Open)
			r.Get("/count", h.Disputes.Count)
			r.Get("/{id}", h.Disputes.GetByID)
			r.Post("/{id}/resolve", h.Disputes.Resolve)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Post("/", h.Ratings.Submit)
			r.Get("/count", h.Ratings.Count)
			r.Get("/{orderId}", h.Ratings.GetByOrderID)
			r.Delete("/{orderId}", h.Ratings.Remove)
		})

		r.Route("/sellers/{address}", func(r chi.Router) {
			r.Get("/listings", h.Listings.ListBySeller)
			r.Get("/orders", h.Orders.ListBySeller)
			r.Get("/rating", h.Ratings.SellerAggregate)
			r.Get("/ratings", h.Ratings.ListBySeller)
		})
		r.Get("/buyers/{address}/orders", h.Orders.ListByBuyer)

		r.Route("/vault", func(r chi.Router) {
			r.Post("/deposit", h.Vault.Deposit)
			r.Get("/{address}/balance", h.Vault.Balance)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/arbitrator", h.Admin.SetArbitrator)
			r.Get("/arbitrator", h.Admin.GetArbitrator)
		})
	})

	return r
}
