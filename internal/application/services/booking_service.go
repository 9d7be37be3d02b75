package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/repositories"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// doctorDirectory is the fixed telemedicine directory shown in the booking
// flow. Consultations themselves are out of scope; bookings are real records
// against mock practitioners.
var doctorDirectory = []entities.Doctor{
	{ID: "doc-001", Name: "Dr. Amara Okafor", Specialty: "General Practice", Rating: 4.8, FeeUSD: 25, Available: true},
	{ID: "doc-002", Name: "Dr. Samuel Mensah", Specialty: "Internal Medicine", Rating: 4.7, FeeUSD: 35, Available: true},
	{ID: "doc-003", Name: "Dr. Lena Fischer", Specialty: "Pediatrics", Rating: 4.9, FeeUSD: 30, Available: true},
	{ID: "doc-004", Name: "Dr. Priya Raman", Specialty: "Dermatology", Rating: 4.6, FeeUSD: 40, Available: false},
	{ID: "doc-005", Name: "Dr. Mateo Alvarez", Specialty: "Mental Health", Rating: 4.9, FeeUSD: 45, Available: true},
}

// ConfirmationSender delivers a booking confirmation message to a phone
// number. Delivery is best effort.
type ConfirmationSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// BookingService handles the telemedicine directory and appointment booking.
type BookingService struct {
	repo     repositories.BookingRepository
	notifier ConfirmationSender
}

// NewBookingService creates a new booking service.
func NewBookingService(repo repositories.BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

// SetNotifier enables booking confirmation messages.
func (s *BookingService) SetNotifier(notifier ConfirmationSender) {
	s.notifier = notifier
}

// ListDoctors returns the telemedicine directory.
func (s *BookingService) ListDoctors() []entities.Doctor {
	doctors := make([]entities.Doctor, len(doctorDirectory))
	copy(doctors, doctorDirectory)
	return doctors
}

// Slots returns mock half-hour consultation windows for the next three days,
// working hours only.
func (s *BookingService) Slots(doctorID string, from time.Time) ([]entities.Slot, error) {
	doctor, err := findDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return []entities.Slot{}, nil
	}

	var slots []entities.Slot
	day := from.Truncate(24 * time.Hour).Add(24 * time.Hour)
	for d := 0; d < 3; d++ {
		for hour := 9; hour < 17; hour++ {
			slots = append(slots, entities.Slot{
				DoctorID: doctor.ID,
				StartsAt: day.Add(time.Duration(d)*24*time.Hour + time.Duration(hour)*time.Hour),
				Duration: 30,
			})
		}
	}
	return slots, nil
}

// Book creates a booking with a fresh confirmation code. When a phone number
// is given and a notifier is configured, a confirmation message is sent;
// delivery failures do not fail the booking.
func (s *BookingService) Book(ctx context.Context, userID, doctorID string, startsAt time.Time, reason, phone string) (*entities.Booking, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to book a consultation")
	}
	doctor, err := findDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	if startsAt.Before(time.Now()) {
		return nil, apperrors.NewValidationError("booking time must be in the future")
	}

	booking := &entities.Booking{
		ID:               uuid.New().String(),
		UserID:           userID,
		DoctorID:         doctorID,
		StartsAt:         startsAt.UTC(),
		Reason:           strings.TrimSpace(reason),
		ConfirmationCode: strings.ToUpper(uuid.New().String()[:8]),
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.notifier != nil && strings.TrimSpace(phone) != "" {
		body := fmt.Sprintf(
			"Your Careloop consultation with %s on %s is confirmed. Confirmation code: %s",
			doctor.Name,
			booking.StartsAt.Format("Mon, 2 Jan 2006 15:04 MST"),
			booking.ConfirmationCode,
		)
		if _, err := s.notifier.SendText(ctx, strings.TrimSpace(phone), body); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("booking confirmation message failed")
		}
	}

	return booking, nil
}

// ListBookings returns a user's bookings, newest first.
func (s *BookingService) ListBookings(ctx context.Context, userID string, limit, offset int) ([]*entities.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func findDoctor(id string) (*entities.Doctor, error) {
	for i := range doctorDirectory {
		if doctorDirectory[i].ID == id {
			return &doctorDirectory[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("doctor not found")
}
