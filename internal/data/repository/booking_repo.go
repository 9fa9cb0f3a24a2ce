package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingRepository is the seat ledger: the authoritative, transactional
// view of seat occupancy per show. Reserve and Release re-validate every
// invariant inside a single transaction, so two concurrent attempts on
// the same seat (or on a show near capacity) can never both commit.
type BookingRepository interface {
	Reserve(ctx context.Context, booking *entity.Booking) error
	Release(ctx context.Context, bookingID, userID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error)

	FindActiveSeatNumbers(ctx context.Context, showID uuid.UUID) ([]string, error)
	CountActiveByShowID(ctx context.Context, showID uuid.UUID) (int, error)
	IsSeatAvailable(ctx context.Context, showID uuid.UUID, seatNumber string) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// uniqueViolation is the Postgres error code raised when the partial
// unique index on (show_id, seat_number) WHERE status='active' fires.
const uniqueViolation = "23505"

func (r *bookingRepository) Reserve(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		r.log.Error("Failed to begin reserve transaction", zap.Error(err))
		return fmt.Errorf("begin reserve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the show row. Every concurrent Reserve for this show queues
	// here, so the availability and capacity checks below are re-validated
	// at commit time, not just at an earlier read.
	var totalSeats int
	err = tx.QueryRow(ctx,
		`SELECT total_seats FROM shows WHERE id = $1 FOR UPDATE`,
		booking.ShowID,
	).Scan(&totalSeats)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrShowNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock show for reserve",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
		return fmt.Errorf("lock show %s: %w", booking.ShowID.String(), err)
	}

	var activeCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE show_id = $1 AND status = 'active'`,
		booking.ShowID,
	).Scan(&activeCount)
	if err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
		return fmt.Errorf("count active bookings for show %s: %w", booking.ShowID.String(), err)
	}

	if activeCount >= totalSeats {
		return ErrShowFull
	}

	var seatTaken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE show_id = $1 AND seat_number = $2 AND status = 'active'
		)`,
		booking.ShowID, booking.SeatNumber,
	).Scan(&seatTaken)
	if err != nil {
		r.log.Error("Failed to check seat availability",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
			zap.String("seat_number", booking.SeatNumber),
		)
		return fmt.Errorf("check seat %s availability: %w", booking.SeatNumber, err)
	}

	if seatTaken {
		return ErrSeatTaken
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, booking_ref, user_id, show_id, seat_number, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.ShowID,
		booking.SeatNumber,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		// The partial unique index backstops the availability check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSeatTaken
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("show_id", booking.ShowID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.BookingRef, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit reserve transaction", zap.Error(err))
		return fmt.Errorf("commit reserve transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) Release(ctx context.Context, bookingID, userID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		r.log.Error("Failed to begin release transaction", zap.Error(err))
		return fmt.Errorf("begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID uuid.UUID
	var status entity.BookingStatus
	var showStarted bool
	err = tx.QueryRow(ctx,
		`SELECT b.user_id, b.status, s.start_time <= NOW()
		 FROM bookings b
		 JOIN shows s ON s.id = b.show_id
		 WHERE b.id = $1
		 FOR UPDATE OF b`,
		bookingID,
	).Scan(&ownerID, &status, &showStarted)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock booking for release",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("lock booking %s: %w", bookingID.String(), err)
	}

	if ownerID != userID {
		return ErrNotOwner
	}
	if status == entity.BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	if showStarted {
		return ErrShowStarted
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE id = $1`,
		bookingID,
	)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit release transaction", zap.Error(err))
		return fmt.Errorf("commit release transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, booking_ref, user_id, show_id, seat_number, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.UserID,
		&booking.ShowID,
		&booking.SeatNumber,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, booking_ref, user_id, show_id, seat_number, status, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingRef,
			&booking.UserID,
			&booking.ShowID,
			&booking.SeatNumber,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE user_id = $1
		  AND ($2::text IS NULL OR status = $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveSeatNumbers(ctx context.Context, showID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_number FROM bookings
		WHERE show_id = $1 AND status = 'active'
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find active seat numbers",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find active seat numbers for show %s: %w", showID.String(), err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat number", zap.Error(err))
			return nil, fmt.Errorf("scan seat number: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat number rows: %w", err)
	}

	return seats, nil
}

func (r *bookingRepository) CountActiveByShowID(ctx context.Context, showID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE show_id = $1 AND status = 'active'`

	var count int
	err := r.db.QueryRow(ctx, query, showID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return 0, fmt.Errorf("count active bookings for show %s: %w", showID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) IsSeatAvailable(ctx context.Context, showID uuid.UUID, seatNumber string) (bool, error) {
	query := `
		SELECT NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE show_id = $1 AND seat_number = $2 AND status = 'active'
		)
	`

	var available bool
	err := r.db.QueryRow(ctx, query, showID, seatNumber).Scan(&available)
	if err != nil {
		r.log.Error("Failed to check seat availability",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.String("seat_number", seatNumber),
		)
		return false, fmt.Errorf("check seat %s availability: %w", seatNumber, err)
	}

	return available, nil
}
