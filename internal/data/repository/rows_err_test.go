package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// faultyRows yields its seat values, then reports a connection error from
// Err(). Mirrors pgx behavior where Next() returns false on both
// exhaustion and mid-stream failure.
type faultyRows struct {
	seats []string
	pos   int
	err   error
}

func (r *faultyRows) Close()                                       {}
func (r *faultyRows) Err() error                                   { return r.err }
func (r *faultyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *faultyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *faultyRows) Values() ([]any, error)                       { return nil, r.err }
func (r *faultyRows) RawValues() [][]byte                          { return nil }
func (r *faultyRows) Conn() *pgx.Conn                              { return nil }

func (r *faultyRows) Next() bool {
	return r.pos < len(r.seats)
}

func (r *faultyRows) Scan(dest ...any) error {
	if seat, ok := dest[0].(*string); ok {
		*seat = r.seats[r.pos]
	}
	r.pos++
	return nil
}

// faultyDB hands out the same faultyRows for every query.
type faultyDB struct {
	rows *faultyRows
}

func (db *faultyDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.rows, nil
}
func (db *faultyDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (db *faultyDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (db *faultyDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return nil, errors.New("not supported")
}
func (db *faultyDB) Ping(ctx context.Context) error { return nil }
func (db *faultyDB) Close()                         {}

var errConnReset = errors.New("unexpected EOF on connection")

func TestFindActiveSeatNumbers_IterationErrorNotSwallowed(t *testing.T) {
	// One seat scans fine before the stream breaks. Returning ("A1", nil)
	// here would under-report occupancy; the error must surface.
	db := &faultyDB{rows: &faultyRows{seats: []string{"A1"}, err: errConnReset}}
	repo := NewBookingRepository(db, zap.NewNop())

	seats, err := repo.FindActiveSeatNumbers(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errConnReset)
	assert.Nil(t, seats)
}

func TestFindByUserID_IterationErrorNotSwallowed(t *testing.T) {
	db := &faultyDB{rows: &faultyRows{err: errConnReset}}
	repo := NewBookingRepository(db, zap.NewNop())

	bookings, err := repo.FindByUserID(context.Background(), uuid.New(), nil, 10, 0)
	assert.ErrorIs(t, err, errConnReset)
	assert.Nil(t, bookings)
}

func TestFindUpcomingShows_IterationErrorNotSwallowed(t *testing.T) {
	db := &faultyDB{rows: &faultyRows{err: errConnReset}}
	repo := NewShowRepository(db, zap.NewNop())

	shows, err := repo.FindUpcoming(context.Background(), 10, 0)
	assert.ErrorIs(t, err, errConnReset)
	assert.Nil(t, shows)
}

func TestFindAllActiveMovies_IterationErrorNotSwallowed(t *testing.T) {
	db := &faultyDB{rows: &faultyRows{err: errConnReset}}
	repo := NewMovieRepository(db, zap.NewNop())

	movies, err := repo.FindAllActive(context.Background(), 10, 0)
	assert.ErrorIs(t, err, errConnReset)
	assert.Nil(t, movies)
}
