package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieShows(ctx context.Context, movieID uuid.UUID) (*response.MovieResponse, []response.ShowResponse, error)
	GetShowDetail(ctx context.Context, showID uuid.UUID) (*response.ShowDetailResponse, error)
	GetUpcomingShows(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowResponse], error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAllActive(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountActive(ctx)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieShows(ctx context.Context, movieID uuid.UUID) (*response.MovieResponse, []response.ShowResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, nil, fmt.Errorf("find movie %s: %w", movieID.String(), err)
	}
	if movie == nil || !movie.IsActive {
		return nil, nil, repository.ErrMovieNotFound
	}

	shows, err := s.repo.Show.FindUpcomingByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get shows for movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, nil, fmt.Errorf("get shows for movie %s: %w", movieID.String(), err)
	}

	showResponses := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		showResponses[i] = response.ShowToResponse(show, movie.Title)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, showResponses, nil
}

func (s *movieService) GetShowDetail(ctx context.Context, showID uuid.UUID) (*response.ShowDetailResponse, error) {
	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("find show %s: %w", showID.String(), err)
	}
	if show == nil {
		return nil, repository.ErrShowNotFound
	}

	var movieTitle string
	movie, err := s.repo.Movie.FindByID(ctx, show.MovieID)
	if err != nil {
		s.log.Warn("Failed to get movie for show",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
	}
	if movie != nil {
		movieTitle = movie.Title
	}

	bookedSeats, err := s.repo.Booking.FindActiveSeatNumbers(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("get booked seats for show %s: %w", showID.String(), err)
	}

	occupied, err := s.repo.Booking.CountActiveByShowID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("count booked seats for show %s: %w", showID.String(), err)
	}

	available := show.TotalSeats - occupied
	if available < 0 {
		available = 0
	}

	return &response.ShowDetailResponse{
		ShowResponse: response.ShowToResponse(show, movieTitle),
		Availability: response.SeatAvailability{
			TotalSeats:     show.TotalSeats,
			AvailableSeats: available,
			BookedSeats:    bookedSeats,
			IsFullyBooked:  available <= 0,
		},
	}, nil
}

func (s *movieService) GetUpcomingShows(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	shows, err := s.repo.Show.FindUpcoming(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get upcoming shows", zap.Error(err))
		return nil, fmt.Errorf("get upcoming shows: %w", err)
	}

	total, err := s.repo.Show.CountUpcoming(ctx)
	if err != nil {
		s.log.Error("Failed to count upcoming shows", zap.Error(err))
		return nil, fmt.Errorf("count upcoming shows: %w", err)
	}

	showResponses := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		var movieTitle string
		movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
		if movie != nil {
			movieTitle = movie.Title
		}
		showResponses[i] = response.ShowToResponse(show, movieTitle)
	}

	return response.NewPaginatedResponse(showResponses, req.Page, req.PerPage, total), nil
}
