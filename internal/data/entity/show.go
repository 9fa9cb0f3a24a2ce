package entity

import (
	"time"

	"github.com/google/uuid"
)

type Show struct {
	Base
	MovieID    uuid.UUID `db:"movie_id"`
	ScreenName string    `db:"screen_name"`
	StartTime  time.Time `db:"start_time"`
	TotalSeats int       `db:"total_seats"`
	Price      float64   `db:"price"`
}

// HasStarted reports whether the show's start time has passed.
func (s *Show) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}
