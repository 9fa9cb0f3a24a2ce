package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// BookSeat handles POST /api/shows/{id}/book (protected)
func (h *BookingHandler) BookSeat(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	showID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid show ID", nil)
		return
	}

	var req request.BookSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.BookSeat(r.Context(), userID, showID, &req)
	if err != nil {
		h.handleServiceError(w, err, "book seat")
		return
	}

	utils.ResponseCreated(w, "Seat booked successfully", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), userID, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// GetMyBookings handles GET /api/my-bookings (protected)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	// Optional status filter; anything else is ignored
	var statusFilter *entity.BookingStatus
	switch entity.BookingStatus(query.Get("status")) {
	case entity.BookingStatusActive:
		status := entity.BookingStatusActive
		statusFilter = &status
	case entity.BookingStatusCancelled:
		status := entity.BookingStatusCancelled
		statusFilter = &status
	}

	bookings, err := h.service.GetMyBookings(r.Context(), userID, req, statusFilter)
	if err != nil {
		h.handleServiceError(w, err, "get my bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// handleServiceError maps booking error kinds to HTTP status codes.
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrShowNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrSeatTaken),
		errors.Is(err, repository.ErrShowFull),
		errors.Is(err, repository.ErrAlreadyCancelled):
		h.log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, repository.ErrNotOwner):
		h.log.Warn(operation+" failed - not owner", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrInvalidSeatNumber),
		errors.Is(err, repository.ErrShowStarted):
		h.log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
