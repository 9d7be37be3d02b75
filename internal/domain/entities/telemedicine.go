package entities

import "time"

// Doctor is an entry in the telemedicine directory.
type Doctor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Rating    float64 `json:"rating"`
	FeeUSD    int     `json:"fee_usd"`
	Available bool    `json:"available"`
}

// Slot is a bookable consultation window.
type Slot struct {
	DoctorID string    `json:"doctor_id"`
	StartsAt time.Time `json:"starts_at"`
	Duration int       `json:"duration_minutes"`
}

// Booking is a confirmed telemedicine appointment.
type Booking struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	DoctorID         string    `json:"doctor_id" db:"doctor_id"`
	StartsAt         time.Time `json:"starts_at" db:"starts_at"`
	Reason           string    `json:"reason" db:"reason"`
	ConfirmationCode string    `json:"confirmation_code" db:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
