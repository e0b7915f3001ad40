package http

import (
	"net/http"

	"registration-module/http/handlers"
	"registration-module/http/middleware"
)

// NewRouter builds the route table with CORS applied to every endpoint.
func NewRouter(payment *handlers.PaymentHandler, admin *handlers.AdminHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", middleware.EnableCORS(handlers.Health))

	// Payment APIs
	mux.HandleFunc("/create-payment", middleware.EnableCORS(payment.CreatePayment))
	mux.HandleFunc("/payu-success", middleware.EnableCORS(payment.PayUSuccess))
	mux.HandleFunc("/payu-failure", middleware.EnableCORS(payment.PayUFailure))

	// Admin APIs
	mux.HandleFunc("/admin/download-registrations", middleware.EnableCORS(admin.DownloadRegistrations))
	mux.HandleFunc("/admin/create-influencer", middleware.EnableCORS(admin.CreateInfluencer))
	mux.HandleFunc("/admin/influencer-stats", middleware.EnableCORS(admin.InfluencerStats))

	return mux
}
