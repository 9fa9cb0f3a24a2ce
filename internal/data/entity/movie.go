package entity

import "time"

type Movie struct {
	Base
	Title           string     `db:"title"`
	DurationMinutes int        `db:"duration_minutes"`
	Description     *string    `db:"description"`
	Genre           *string    `db:"genre"`
	Rating          *string    `db:"rating"` // PG, PG-13, R, etc.
	ReleaseDate     *time.Time `db:"release_date"`
	IsActive        bool       `db:"is_active"`
}
