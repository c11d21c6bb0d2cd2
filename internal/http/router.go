package http

import (
	"net/http"
	"time"

	"github.com/fjod/cozy_storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxRequestBodySize = 1 << 20

type RouterDeps struct {
	Catalog  catalog.Source
	Sessions SessionStore
	// Orders is optional; the order lookup route is mounted only when set.
	Orders         OrderLookup
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

// NewRouter builds the storefront API.
func NewRouter(d RouterDeps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	products := NewProductHandler(d.Catalog, d.RequestTimeout, d.Logger)
	cart := NewCartHandler(d.Sessions, d.Catalog, d.RequestTimeout, d.Logger)
	checkout := NewCheckoutHandler(d.Sessions, d.RequestTimeout, d.Logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(AccessLog(d.Logger))
	r.Use(middleware.RequestSize(maxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{id}", products.Get)
		})
		r.Get("/categories", products.Categories)

		if d.Orders != nil {
			ordersHandler := NewOrdersHandler(d.Orders, d.RequestTimeout, d.Logger)
			r.Get("/orders/{order_id}", ordersHandler.GetOrder)
		}

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cart.GetCart)
				r.Delete("/", cart.ClearCart)
				r.Post("/items", cart.AddItem)
				r.Post("/items/{id}/increment", cart.Increment)
				r.Post("/items/{id}/decrement", cart.Decrement)
				r.Delete("/items/{id}", cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkout.GetState)
				r.Delete("/", checkout.Reset)
				r.Put("/contact", checkout.SetContact)
				r.Put("/delivery", checkout.SetDelivery)
				r.Put("/payment", checkout.SetPayment)
				r.Post("/next", checkout.Next)
				r.Post("/back", checkout.Back)
				r.Post("/export", checkout.Export)
			})
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
