package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// BookingRepo provides persistence for bookings and their participant
// rosters.  The roster lives in the users_has_bookings join table keyed by
// (users_id, bookings_id).  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and the creator's participation row inside one
// transaction.  Either both rows land or neither does, so a failure can
// never leave a booking without its creator on the roster.  The generated
// ID and timestamps are populated on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	const qInsert = `INSERT INTO bookings (play_date_start, play_date_end, fields_id, users_id_booking) VALUES (?, ?, ?, ?)`
	var res sql.Result
	res, err = tx.ExecContext(ctx, qInsert, b.PlayDateStart, b.PlayDateEnd, b.FieldID, b.CreatedBy)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO users_has_bookings (users_id, bookings_id) VALUES (?, ?)`,
		b.CreatedBy, b.ID); err != nil {
		return err
	}
	const qSelect = `SELECT play_date_start, play_date_end, fields_id, users_id_booking, created_at, updated_at FROM bookings WHERE id = ?`
	err = tx.QueryRowContext(ctx, qSelect, b.ID).Scan(
		&b.PlayDateStart, &b.PlayDateEnd, &b.FieldID, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	return err
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, play_date_start, play_date_end, fields_id, users_id_booking, created_at, updated_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.FieldID, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all bookings ordered by id.
func (r *BookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	const q = `SELECT id, play_date_start, play_date_end, fields_id, users_id_booking, created_at, updated_at
	           FROM bookings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Booking
	for rows.Next() {
		b := new(model.Booking)
		if err := rows.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.FieldID, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Join upserts the participation row for (userID, bookingID).  Joining a
// booking twice is a no-op success, not an error.  A booking id that does
// not exist trips the foreign key and is reported as ErrBookingNotFound.
func (r *BookingRepo) Join(ctx context.Context, userID, bookingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users_has_bookings (users_id, bookings_id) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE bookings_id = bookings_id`,
		userID, bookingID)
	if err != nil {
		// 1452: foreign key constraint fails -> the booking (or user) is gone.
		if strings.Contains(err.Error(), "1452") {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// Unjoin deletes the participation row for (userID, bookingID).  It
// returns ErrNotJoined when no such row exists and never touches rows of
// other users or bookings.
func (r *BookingRepo) Unjoin(ctx context.Context, userID, bookingID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users_has_bookings WHERE users_id = ? AND bookings_id = ?`,
		userID, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotJoined
	}
	return nil
}

// Participants resolves a booking's roster against the users table.
func (r *BookingRepo) Participants(ctx context.Context, bookingID uint64) ([]model.Participant, error) {
	const q = `SELECT u.id, u.name, u.email
	           FROM users_has_bookings uhb
	           LEFT JOIN users u ON uhb.users_id = u.id
	           WHERE uhb.bookings_id = ?
	           ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Participant, 0)
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SchedulesByUser returns every booking the user participates in, walked
// through the join table.
func (r *BookingRepo) SchedulesByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	const q = `SELECT b.id, b.play_date_start, b.play_date_end, b.fields_id, b.users_id_booking, b.created_at, b.updated_at
	           FROM users_has_bookings uhb
	           LEFT JOIN bookings b ON uhb.bookings_id = b.id
	           WHERE uhb.users_id = ?
	           ORDER BY b.play_date_start`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Booking, 0)
	for rows.Next() {
		b := new(model.Booking)
		if err := rows.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.FieldID, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
