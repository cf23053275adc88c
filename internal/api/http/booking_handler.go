package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/service"
)

// BookingHandler exposes the online booking operations.
type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), tenantID(r), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	booking, err := h.bookingSvc.GetBookingByNumber(r.Context(), tenantID(r), number)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), tenantID(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings, "total": total})
}

func (h *BookingHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	booking, err := h.bookingSvc.GetBookingStatus(r.Context(), tenantID(r), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	confirmation, err := h.bookingSvc.ConfirmBooking(r.Context(), tenantID(r), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	booking, err := h.bookingSvc.CancelBooking(r.Context(), tenantID(r), id, body.Reason, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookingSvc.ResendConfirmation(r.Context(), tenantID(r), id, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid or missing date, expected yyyy-mm-dd"})
		return
	}
	bookingType := domain.BookingType(r.URL.Query().Get("type"))
	if bookingType != domain.BookingTypeRental && bookingType != domain.BookingTypeService {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be RENTAL or SERVICE"})
		return
	}

	slots, err := h.bookingSvc.GetTimeSlots(r.Context(), tenantID(r), date, bookingType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EquipmentIDs []int32   `json:"equipment_ids"`
		Start        time.Time `json:"start"`
		End          time.Time `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	results, err := h.bookingSvc.CheckAvailability(r.Context(), tenantID(r), body.EquipmentIDs, body.Start, body.End)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(id), err
}
