package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// All booking routes require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/shows/{id}/book - Book a seat for a show
		r.Post("/api/shows/{id}/book", bookingHandler.BookSeat)

		// POST /api/bookings/{id}/cancel - Cancel own booking
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/my-bookings - Booking history (any status)
		r.Get("/api/my-bookings", bookingHandler.GetMyBookings)
	})
}
