package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking binds one seat of one show to one user. Rows are never deleted;
// cancellation flips the status, keeping the booking history intact.
type Booking struct {
	Base
	BookingRef string        `db:"booking_ref"`
	UserID     uuid.UUID     `db:"user_id"`
	ShowID     uuid.UUID     `db:"show_id"`
	SeatNumber string        `db:"seat_number"` // A1, B12, etc. Stored uppercase.
	Status     BookingStatus `db:"status"`
}
