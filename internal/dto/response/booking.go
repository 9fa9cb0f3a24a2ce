package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	BookingRef string               `json:"booking_ref"`
	ShowID     string               `json:"show_id"`
	MovieTitle string               `json:"movie_title,omitempty"`
	ScreenName string               `json:"screen_name,omitempty"`
	ShowTime   *time.Time           `json:"show_time,omitempty"`
	SeatNumber string               `json:"seat_number"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, show *entity.Show, movieTitle string) BookingResponse {
	resp := BookingResponse{
		ID:         booking.ID.String(),
		BookingRef: booking.BookingRef,
		ShowID:     booking.ShowID.String(),
		MovieTitle: movieTitle,
		SeatNumber: booking.SeatNumber,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}

	if show != nil {
		resp.ScreenName = show.ScreenName
		resp.ShowTime = &show.StartTime
	}

	return resp
}
