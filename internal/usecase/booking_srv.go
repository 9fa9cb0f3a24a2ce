package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	BookSeat(ctx context.Context, userID, showID uuid.UUID, req *request.BookSeatRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest, statusFilter *entity.BookingStatus) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// BookSeat validates the request and delegates to the seat ledger. A
// conflict (seat taken, show full) is a legitimate business outcome and is
// returned to the caller unchanged; nothing is retried here.
func (s *bookingService) BookSeat(ctx context.Context, userID, showID uuid.UUID, req *request.BookSeatRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book seat validation failed", zap.Any("errors", errs))
		return nil, repository.ErrInvalidSeatNumber
	}

	seatNumber, ok := utils.NormalizeSeatNumber(req.SeatNumber)
	if !ok {
		return nil, repository.ErrInvalidSeatNumber
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("find show %s: %w", showID.String(), err)
	}
	if show == nil {
		return nil, repository.ErrShowNotFound
	}

	if show.HasStarted(time.Now()) {
		return nil, repository.ErrShowStarted
	}

	// Early availability check. The ledger re-validates inside its own
	// transaction; this only short-circuits the obvious case.
	available, err := s.repo.Booking.IsSeatAvailable(ctx, showID, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	if !available {
		return nil, repository.ErrSeatTaken
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef: utils.GenerateBookingRef(),
		UserID:     userID,
		ShowID:     showID,
		SeatNumber: seatNumber,
		Status:     entity.BookingStatusActive,
	}

	if err := s.repo.Booking.Reserve(ctx, booking); err != nil {
		s.log.Warn("Reserve failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.String("seat_number", seatNumber),
			zap.String("user_id", userID.String()),
		)
		return nil, err
	}

	s.log.Info("Seat booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("show_id", showID.String()),
		zap.String("seat_number", seatNumber),
		zap.String("user_id", userID.String()),
	)

	resp := s.buildBookingResponse(ctx, booking, show)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	if err := s.repo.Booking.Release(ctx, bookingID, userID); err != nil {
		s.log.Warn("Release failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
	)

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find cancelled booking %s: %w", bookingID.String(), err)
	}
	if booking == nil {
		return nil, fmt.Errorf("cancelled booking %s disappeared after release", bookingID.String())
	}

	resp := s.buildBookingResponse(ctx, booking, nil)
	return &resp, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest, statusFilter *entity.BookingStatus) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, statusFilter, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID, statusFilter)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = s.buildBookingResponse(ctx, booking, nil)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking, show *entity.Show) response.BookingResponse {
	if show == nil {
		show, _ = s.repo.Show.FindByID(ctx, booking.ShowID)
	}

	var movieTitle string
	if show != nil {
		movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
		if movie != nil {
			movieTitle = movie.Title
		}
	}

	return response.BookingToResponse(booking, show, movieTitle)
}
