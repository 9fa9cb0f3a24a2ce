package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Catalog routes are all public
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}/shows", movieHandler.GetMovieShows)

	// "upcoming" must be registered before "{id}" so chi matches it first
	r.Get("/api/shows/upcoming", movieHandler.GetUpcomingShows)
	r.Get("/api/shows/{id}", movieHandler.GetShowDetail)
}
