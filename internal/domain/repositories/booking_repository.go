package repositories

import (
	"context"

	"github.com/careloop/backend/internal/domain/entities"
)

// BookingRepository defines the interface for telemedicine booking persistence
type BookingRepository interface {
	// Create stores a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// ListByUser retrieves a user's bookings, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Booking, error)
}
