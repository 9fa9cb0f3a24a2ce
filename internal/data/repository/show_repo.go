package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Show, error)
	FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Show, error)
	CountUpcoming(ctx context.Context) (int64, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, movie_id, screen_name, start_time, total_seats, price, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	var show entity.Show
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.ScreenName,
		&show.StartTime,
		&show.TotalSeats,
		&show.Price,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return &show, nil
}

func (r *showRepository) FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Show, error) {
	query := `
		SELECT id, movie_id, screen_name, start_time, total_seats, price, created_at, updated_at
		FROM shows
		WHERE movie_id = $1 AND start_time >= NOW()
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find upcoming shows by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find upcoming shows for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	return scanShows(rows, r.log)
}

func (r *showRepository) FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Show, error) {
	query := `
		SELECT s.id, s.movie_id, s.screen_name, s.start_time, s.total_seats, s.price, s.created_at, s.updated_at
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.start_time >= NOW() AND m.is_active = TRUE
		ORDER BY s.start_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find upcoming shows",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find upcoming shows: %w", err)
	}
	defer rows.Close()

	return scanShows(rows, r.log)
}

func (r *showRepository) CountUpcoming(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.start_time >= NOW() AND m.is_active = TRUE
	`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count upcoming shows", zap.Error(err))
		return 0, fmt.Errorf("count upcoming shows: %w", err)
	}

	return count, nil
}

func scanShows(rows pgx.Rows, log *zap.Logger) ([]*entity.Show, error) {
	var shows []*entity.Show
	for rows.Next() {
		var show entity.Show
		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.ScreenName,
			&show.StartTime,
			&show.TotalSeats,
			&show.Price,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, &show)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate show rows: %w", err)
	}

	return shows, nil
}
