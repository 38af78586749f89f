package http

import (
	"net/http"

	"github.com/emilybakes/bakery/internal/auth"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/go-chi/chi/v5"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Orders   interfaces.OrderService
	Tracking interfaces.TrackingService
	Reports  interfaces.ReportService
	Auth     interfaces.AuthService
	Tokens   *auth.Manager
}

// NewRouter builds the full API surface. Admin routes sit behind JWT auth;
// the tracking route is public but rate limited.
func NewRouter(deps RouterDeps) http.Handler {
	orders := NewOrderHandler(deps.Orders)
	tracking := NewTrackingHandler(deps.Tracking)
	reports := NewReportHandler(deps.Reports)
	login := NewAuthHandler(deps.Auth)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth/login", login.Login)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(5, 10))
		r.Get("/api/orders/track/{token}", tracking.TrackOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.Tokens))

		r.Post("/api/orders", orders.CreateOrder)
		r.Get("/api/orders", orders.ListOrders)
		r.Get("/api/orders/{id}", orders.GetOrder)
		r.Patch("/api/orders/{id}/status", orders.UpdateStatus)
		r.Post("/api/orders/{id}/payments", orders.RecordPayment)
		r.Patch("/api/orders/{id}/assign", orders.AssignStaff)
		r.Get("/api/orders/{id}/history", orders.GetStatusHistory)

		r.Get("/api/reports/order-summary", reports.OrderSummary)
	})

	return r
}

// NewPublicRouter mounts only the public tracking surface. The standalone
// tracking service uses it so no admin route is ever reachable from it.
func NewPublicRouter(tracking *TrackingHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RateLimitMiddleware(5, 10))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/orders/track/{token}", tracking.TrackOrder)

	return r
}
