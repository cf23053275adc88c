package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/service"
)

// NewRouter wires all API routes. Every route under /api/v1 requires the
// X-Tenant-ID header, enforced by TenantMiddleware.
func NewRouter(bookingSvc service.BookingService, receiptSvc service.ReceiptService, avizoSvc service.AvizoService) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(TenantMiddleware)

	bookings := NewBookingHandler(bookingSvc)
	api.HandleFunc("/bookings", bookings.Create).Methods("POST")
	api.HandleFunc("/bookings", bookings.List).Methods("GET")
	api.HandleFunc("/bookings/availability", bookings.CheckAvailability).Methods("POST")
	api.HandleFunc("/bookings/timeslots", bookings.TimeSlots).Methods("GET")
	api.HandleFunc("/bookings/number/{number}", bookings.GetByNumber).Methods("GET")
	api.HandleFunc("/bookings/status/{token}", bookings.Status).Methods("GET")
	api.HandleFunc("/bookings/confirm/{token}", bookings.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/resend-confirmation", bookings.ResendConfirmation).Methods("POST")

	receiving := NewReceivingHandler(receiptSvc, avizoSvc)
	api.HandleFunc("/receipts", receiving.CreateReceipt).Methods("POST")
	api.HandleFunc("/receipts", receiving.ListReceipts).Methods("GET")
	api.HandleFunc("/receipts/{id}", receiving.GetReceipt).Methods("GET")
	api.HandleFunc("/receipts/{id}/complete", receiving.CompleteReceipt).Methods("POST")
	api.HandleFunc("/receipts/{id}/discrepancies", receiving.CreateDiscrepancy).Methods("POST")
	api.HandleFunc("/discrepancies/{id}/resolve", receiving.ResolveDiscrepancy).Methods("POST")

	api.HandleFunc("/avizos", receiving.CreateAvizo).Methods("POST")
	api.HandleFunc("/avizos", receiving.ListAvizos).Methods("GET")
	api.HandleFunc("/avizos/{id}", receiving.GetAvizo).Methods("GET")
	api.HandleFunc("/avizos/{id}", receiving.UpdateAvizo).Methods("PATCH")
	api.HandleFunc("/avizos/{id}/cancel", receiving.CancelAvizo).Methods("POST")

	return router
}
