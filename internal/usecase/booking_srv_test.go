package usecase

import (
	"context"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingTestService(showRepo *MockShowRepository, bookingRepo *MockBookingRepository, movieRepo *MockMovieRepository) BookingService {
	repo := &repository.Repository{
		Show:    showRepo,
		Booking: bookingRepo,
		Movie:   movieRepo,
	}
	return NewBookingService(repo, zap.NewNop())
}

func upcomingShow(movieID uuid.UUID, totalSeats int) *entity.Show {
	now := time.Now()
	return &entity.Show{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:    movieID,
		ScreenName: "Screen 1",
		StartTime:  now.Add(48 * time.Hour),
		TotalSeats: totalSeats,
		Price:      12.50,
	}
}

func TestBookSeat_Success(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	movieID := uuid.New()
	userID := uuid.New()
	show := upcomingShow(movieID, 100)

	showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)
	bookingRepo.On("IsSeatAvailable", mock.Anything, show.ID, "A1").Return(true, nil)
	bookingRepo.On("Reserve", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.ShowID == show.ID &&
			b.UserID == userID &&
			b.SeatNumber == "A1" &&
			b.Status == entity.BookingStatusActive &&
			b.BookingRef != ""
	})).Return(nil)
	movieRepo.On("FindByID", mock.Anything, movieID).Return(&entity.Movie{Title: "Inception"}, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	resp, err := svc.BookSeat(context.Background(), userID, show.ID, &request.BookSeatRequest{SeatNumber: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "A1", resp.SeatNumber)
	assert.Equal(t, entity.BookingStatusActive, resp.Status)
	assert.Equal(t, "Inception", resp.MovieTitle)
	assert.Len(t, resp.BookingRef, 8)

	bookingRepo.AssertExpectations(t)
}

func TestBookSeat_ShowNotFound(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	showID := uuid.New()
	showRepo.On("FindByID", mock.Anything, showID).Return(nil, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	_, err := svc.BookSeat(context.Background(), uuid.New(), showID, &request.BookSeatRequest{SeatNumber: "A1"})
	assert.ErrorIs(t, err, repository.ErrShowNotFound)

	// No reservation attempted for a missing show
	bookingRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestBookSeat_InvalidSeatNumber(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	cases := []string{"", "1A", "A0", "A100", "AA", "11", "A"}
	for _, seat := range cases {
		_, err := svc.BookSeat(context.Background(), uuid.New(), uuid.New(), &request.BookSeatRequest{SeatNumber: seat})
		assert.ErrorIs(t, err, repository.ErrInvalidSeatNumber, "seat %q", seat)
	}

	showRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestBookSeat_ShowAlreadyStarted(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	show := upcomingShow(uuid.New(), 50)
	show.StartTime = time.Now().Add(-1 * time.Hour)

	showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	_, err := svc.BookSeat(context.Background(), uuid.New(), show.ID, &request.BookSeatRequest{SeatNumber: "B2"})
	assert.ErrorIs(t, err, repository.ErrShowStarted)
}

func TestBookSeat_SeatTaken(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	show := upcomingShow(uuid.New(), 50)

	showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)
	bookingRepo.On("IsSeatAvailable", mock.Anything, show.ID, "C3").Return(false, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	_, err := svc.BookSeat(context.Background(), uuid.New(), show.ID, &request.BookSeatRequest{SeatNumber: "C3"})
	assert.ErrorIs(t, err, repository.ErrSeatTaken)
}

func TestBookSeat_LedgerConflictsPassThroughUnchanged(t *testing.T) {
	// A conflict detected at commit time must reach the caller with its
	// precise kind, even when the earlier availability check passed.
	for _, ledgerErr := range []error{repository.ErrSeatTaken, repository.ErrShowFull} {
		showRepo := new(MockShowRepository)
		bookingRepo := new(MockBookingRepository)
		movieRepo := new(MockMovieRepository)

		show := upcomingShow(uuid.New(), 50)

		showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)
		bookingRepo.On("IsSeatAvailable", mock.Anything, show.ID, "D4").Return(true, nil)
		bookingRepo.On("Reserve", mock.Anything, mock.Anything).Return(ledgerErr)

		svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

		_, err := svc.BookSeat(context.Background(), uuid.New(), show.ID, &request.BookSeatRequest{SeatNumber: "D4"})
		assert.ErrorIs(t, err, ledgerErr)
	}
}

func TestCancelBooking_ErrorsPassThroughUnchanged(t *testing.T) {
	for _, ledgerErr := range []error{
		repository.ErrBookingNotFound,
		repository.ErrNotOwner,
		repository.ErrAlreadyCancelled,
		repository.ErrShowStarted,
	} {
		showRepo := new(MockShowRepository)
		bookingRepo := new(MockBookingRepository)
		movieRepo := new(MockMovieRepository)

		bookingID := uuid.New()
		userID := uuid.New()
		bookingRepo.On("Release", mock.Anything, bookingID, userID).Return(ledgerErr)

		svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

		_, err := svc.CancelBooking(context.Background(), userID, bookingID)
		assert.ErrorIs(t, err, ledgerErr)
	}
}

func TestCancelBooking_RefetchFailureYieldsRealError(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	bookingID := uuid.New()
	userID := uuid.New()
	bookingRepo.On("Release", mock.Anything, bookingID, userID).Return(nil)
	bookingRepo.On("FindByID", mock.Anything, bookingID).Return(nil, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	_, err := svc.CancelBooking(context.Background(), userID, bookingID)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "%!w", "must not wrap a nil error")
}

func TestCancelBooking_Success(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	movieID := uuid.New()
	show := upcomingShow(movieID, 50)
	userID := uuid.New()

	now := time.Now()
	cancelled := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now,
		},
		BookingRef: "AB12CD34",
		UserID:     userID,
		ShowID:     show.ID,
		SeatNumber: "E5",
		Status:     entity.BookingStatusCancelled,
	}

	bookingRepo.On("Release", mock.Anything, cancelled.ID, userID).Return(nil)
	bookingRepo.On("FindByID", mock.Anything, cancelled.ID).Return(cancelled, nil)
	showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)
	movieRepo.On("FindByID", mock.Anything, movieID).Return(&entity.Movie{Title: "Dune"}, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	resp, err := svc.CancelBooking(context.Background(), userID, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, "E5", resp.SeatNumber)
}

func TestGetMyBookings(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	userID := uuid.New()
	show := upcomingShow(uuid.New(), 50)

	now := time.Now()
	bookings := []*entity.Booking{
		{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			BookingRef: "11111111",
			UserID:     userID,
			ShowID:     show.ID,
			SeatNumber: "A1",
			Status:     entity.BookingStatusActive,
		},
		{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
			BookingRef: "22222222",
			UserID:     userID,
			ShowID:     show.ID,
			SeatNumber: "A2",
			Status:     entity.BookingStatusCancelled,
		},
	}

	bookingRepo.On("FindByUserID", mock.Anything, userID, (*entity.BookingStatus)(nil), 10, 0).Return(bookings, nil)
	bookingRepo.On("CountByUserID", mock.Anything, userID, (*entity.BookingStatus)(nil)).Return(int64(2), nil)
	showRepo.On("FindByID", mock.Anything, show.ID).Return(show, nil)
	movieRepo.On("FindByID", mock.Anything, show.MovieID).Return(&entity.Movie{Title: "Alien"}, nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	resp, err := svc.GetMyBookings(context.Background(), userID, &request.PaginatedRequest{Page: 1, PerPage: 10}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, "11111111", resp.Data[0].BookingRef)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Data[1].Status)
}

func TestGetMyBookings_StatusFilter(t *testing.T) {
	showRepo := new(MockShowRepository)
	bookingRepo := new(MockBookingRepository)
	movieRepo := new(MockMovieRepository)

	userID := uuid.New()
	active := entity.BookingStatusActive

	bookingRepo.On("FindByUserID", mock.Anything, userID, &active, 10, 0).Return([]*entity.Booking{}, nil)
	bookingRepo.On("CountByUserID", mock.Anything, userID, &active).Return(int64(0), nil)

	svc := newBookingTestService(showRepo, bookingRepo, movieRepo)

	resp, err := svc.GetMyBookings(context.Background(), userID, &request.PaginatedRequest{Page: 1, PerPage: 10}, &active)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)

	bookingRepo.AssertExpectations(t)
}
