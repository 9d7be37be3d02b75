package database

import (
	"context"
	"database/sql"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/repositories"
	"github.com/careloop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// BookingAdapter implements BookingRepository in Postgres.
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter.
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new booking row.
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":                booking.ID,
		"user_id":           booking.UserID,
		"doctor_id":         booking.DoctorID,
		"starts_at":         booking.StartsAt,
		"reason":            sql.NullString{String: booking.Reason, Valid: booking.Reason != ""},
		"confirmation_code": booking.ConfirmationCode,
		"created_at":        booking.CreatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// ListByUser retrieves a user's bookings, newest first.
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "doctor_id", "starts_at", "reason",
		"confirmation_code", "created_at",
	).From("bookings").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("starts_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking := &entities.Booking{}
		var reason sql.NullString
		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.DoctorID,
			&booking.StartsAt,
			&reason,
			&booking.ConfirmationCode,
			&booking.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		booking.Reason = reason.String
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}
