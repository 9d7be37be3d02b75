package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/careloop/backend/internal/api/handlers"
	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/domain/entities"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingService struct {
	booking   *entities.Booking
	bookErr   error
	lastPhone string
}

func (s *stubBookingService) ListDoctors() []entities.Doctor {
	return []entities.Doctor{{ID: "doc-001", Name: "Dr. Amara Okafor", Specialty: "General Practice"}}
}

func (s *stubBookingService) Slots(doctorID string, from time.Time) ([]entities.Slot, error) {
	if doctorID != "doc-001" {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}
	return []entities.Slot{{DoctorID: doctorID, StartsAt: from.Add(24 * time.Hour), Duration: 30}}, nil
}

func (s *stubBookingService) Book(ctx context.Context, userID, doctorID string, startsAt time.Time, reason, phone string) (*entities.Booking, error) {
	s.lastPhone = phone
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.booking, nil
}

func (s *stubBookingService) ListBookings(ctx context.Context, userID string, limit, offset int) ([]*entities.Booking, error) {
	if s.booking == nil {
		return []*entities.Booking{}, nil
	}
	return []*entities.Booking{s.booking}, nil
}

func TestTelemedicineHandler_ListDoctors(t *testing.T) {
	handler := handlers.NewTelemedicineHandler(&stubBookingService{})

	req := httptest.NewRequest("GET", "/api/telemedicine/doctors", nil)
	w := httptest.NewRecorder()

	handler.ListDoctors(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}

func TestTelemedicineHandler_GetSlots(t *testing.T) {
	handler := handlers.NewTelemedicineHandler(&stubBookingService{})

	req := httptest.NewRequest("GET", "/api/telemedicine/doctors/doc-001/slots", nil)
	req.SetPathValue("id", "doc-001")
	w := httptest.NewRecorder()

	handler.GetSlots(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTelemedicineHandler_GetSlots_UnknownDoctor(t *testing.T) {
	handler := handlers.NewTelemedicineHandler(&stubBookingService{})

	req := httptest.NewRequest("GET", "/api/telemedicine/doctors/doc-999/slots", nil)
	req.SetPathValue("id", "doc-999")
	w := httptest.NewRecorder()

	handler.GetSlots(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTelemedicineHandler_Book(t *testing.T) {
	service := &stubBookingService{
		booking: &entities.Booking{ID: "booking-1", UserID: "user-1", ConfirmationCode: "ABCD1234"},
	}
	handler := handlers.NewTelemedicineHandler(service)

	body := `{"doctor_id":"doc-001","starts_at":"2027-03-01T10:00:00Z","reason":"checkup","phone":"+2348001234567"}`
	req := httptest.NewRequest("POST", "/api/telemedicine/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	w := httptest.NewRecorder()

	handler.Book(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "+2348001234567", service.lastPhone)

	var booking entities.Booking
	require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
	assert.Equal(t, "ABCD1234", booking.ConfirmationCode)
}

func TestTelemedicineHandler_Book_InvalidJSON(t *testing.T) {
	handler := handlers.NewTelemedicineHandler(&stubBookingService{})

	req := httptest.NewRequest("POST", "/api/telemedicine/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Book(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTelemedicineHandler_Book_PastTime(t *testing.T) {
	service := &stubBookingService{
		bookErr: apperrors.NewValidationError("booking time must be in the future"),
	}
	handler := handlers.NewTelemedicineHandler(service)

	body := `{"doctor_id":"doc-001","starts_at":"2020-03-01T10:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/telemedicine/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	w := httptest.NewRecorder()

	handler.Book(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTelemedicineHandler_ListBookings(t *testing.T) {
	service := &stubBookingService{
		booking: &entities.Booking{ID: "booking-1", UserID: "user-1"},
	}
	handler := handlers.NewTelemedicineHandler(service)

	req := httptest.NewRequest("GET", "/api/telemedicine/bookings?limit=10", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	w := httptest.NewRecorder()

	handler.ListBookings(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}
