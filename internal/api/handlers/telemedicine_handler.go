package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/domain/entities"
)

// BookingService defines the telemedicine operations used by the handler.
type BookingService interface {
	ListDoctors() []entities.Doctor
	Slots(doctorID string, from time.Time) ([]entities.Slot, error)
	Book(ctx context.Context, userID, doctorID string, startsAt time.Time, reason, phone string) (*entities.Booking, error)
	ListBookings(ctx context.Context, userID string, limit, offset int) ([]*entities.Booking, error)
}

// TelemedicineHandler handles the doctor directory and bookings.
type TelemedicineHandler struct {
	service BookingService
}

// NewTelemedicineHandler creates a new telemedicine handler.
func NewTelemedicineHandler(service BookingService) *TelemedicineHandler {
	return &TelemedicineHandler{service: service}
}

// ListDoctors handles GET /api/telemedicine/doctors
func (h *TelemedicineHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.service.ListDoctors()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetSlots handles GET /api/telemedicine/doctors/{id}/slots
func (h *TelemedicineHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")

	slots, err := h.service.Slots(doctorID, time.Now())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctor_id": doctorID,
		"slots":     slots,
	})
}

type bookingRequest struct {
	DoctorID string    `json:"doctor_id"`
	StartsAt time.Time `json:"starts_at"`
	Reason   string    `json:"reason"`
	Phone    string    `json:"phone"`
}

// Book handles POST /api/telemedicine/bookings
func (h *TelemedicineHandler) Book(w http.ResponseWriter, r *http.Request) {
	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	booking, err := h.service.Book(r.Context(), userID, payload.DoctorID, payload.StartsAt, payload.Reason, payload.Phone)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// ListBookings handles GET /api/telemedicine/bookings
func (h *TelemedicineHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	limit, offset := paginationParams(r)

	bookings, err := h.service.ListBookings(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
