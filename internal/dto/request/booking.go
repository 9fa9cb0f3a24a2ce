package request

type BookSeatRequest struct {
	SeatNumber string `json:"seat_number" validate:"required,min=2,max=10"`
}
