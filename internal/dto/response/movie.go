package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     *string `json:"description,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	Rating          *string `json:"rating,omitempty"`
	ReleaseDate     *string `json:"release_date,omitempty"`
}

type ShowResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	ScreenName string    `json:"screen_name"`
	StartTime  time.Time `json:"start_time"`
	TotalSeats int       `json:"total_seats"`
	Price      float64   `json:"price"`
}

type SeatAvailability struct {
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats int      `json:"available_seats"`
	BookedSeats    []string `json:"booked_seats"`
	IsFullyBooked  bool     `json:"is_fully_booked"`
}

type ShowDetailResponse struct {
	ShowResponse
	Availability SeatAvailability `json:"availability"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		Description:     movie.Description,
		Genre:           movie.Genre,
		Rating:          movie.Rating,
	}

	if movie.ReleaseDate != nil {
		date := movie.ReleaseDate.Format("2006-01-02")
		resp.ReleaseDate = &date
	}

	return resp
}

func ShowToResponse(show *entity.Show, movieTitle string) ShowResponse {
	return ShowResponse{
		ID:         show.ID.String(),
		MovieID:    show.MovieID.String(),
		MovieTitle: movieTitle,
		ScreenName: show.ScreenName,
		StartTime:  show.StartTime,
		TotalSeats: show.TotalSeats,
		Price:      show.Price,
	}
}
