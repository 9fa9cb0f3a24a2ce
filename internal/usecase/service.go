package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Movie:   NewMovieService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}
