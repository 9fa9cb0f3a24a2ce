package adaptor

import (
	"errors"
	"net/http"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies (public)
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieShows handles GET /api/movies/{id}/shows (public)
func (h *MovieHandler) GetMovieShows(w http.ResponseWriter, r *http.Request) {
	movieID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	movie, shows, err := h.service.GetMovieShows(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie shows")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{
		"movie": movie,
		"count": len(shows),
		"shows": shows,
	})
}

// GetShowDetail handles GET /api/shows/{id} (public)
func (h *MovieHandler) GetShowDetail(w http.ResponseWriter, r *http.Request) {
	showID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid show ID", nil)
		return
	}

	show, err := h.service.GetShowDetail(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get show detail")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// GetUpcomingShows handles GET /api/shows/upcoming (public)
func (h *MovieHandler) GetUpcomingShows(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	shows, err := h.service.GetUpcomingShows(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get upcoming shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrShowNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
