package adaptor

import (
	"movie-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Movie   *MovieHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
