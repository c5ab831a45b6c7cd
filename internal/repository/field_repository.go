package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// FieldRepo manages playing fields.  Every lookup that takes a field id is
// double-keyed on the venue id from the request path; a field that exists
// under another venue behaves exactly like a missing field.
type FieldRepo struct {
	db *sql.DB
}

func NewFieldRepo(db *sql.DB) *FieldRepo { return &FieldRepo{db: db} }

// Create inserts a field under the given venue and populates the generated
// ID and timestamps.  The venue must be checked by the caller beforehand;
// a dangling venue id surfaces as a foreign key error from the driver.
func (r *FieldRepo) Create(ctx context.Context, f *model.Field) error {
	const qInsert = "INSERT INTO fields (name, type, venues_id) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, f.Name, f.Type, f.VenueID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	const qSelect = "SELECT name, type, venues_id, created_at, updated_at FROM fields WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, f.ID).Scan(
		&f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt)
}

// GetByIDAndVenue fetches a field only when it belongs to the venue.
func (r *FieldRepo) GetByIDAndVenue(ctx context.Context, id, venueID uint64) (*model.Field, error) {
	const q = "SELECT id, name, type, venues_id, created_at, updated_at FROM fields WHERE id = ? AND venues_id = ?"
	var f model.Field
	if err := r.db.QueryRowContext(ctx, q, id, venueID).Scan(&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListByVenue returns all fields of a venue ordered by id.
func (r *FieldRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Field, error) {
	const q = `SELECT id, name, type, venues_id, created_at, updated_at
	           FROM fields WHERE venues_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Field
	for rows.Next() {
		f := new(model.Field)
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces name and type of a field scoped to its venue.  It
// returns ErrFieldNotFound when (id, venueID) does not resolve.
func (r *FieldRepo) Update(ctx context.Context, id, venueID uint64, name, fieldType string) error {
	if _, err := r.GetByIDAndVenue(ctx, id, venueID); err != nil {
		return err
	}
	const q = `UPDATE fields
	           SET name = ?, type = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND venues_id = ?`
	_, err := r.db.ExecContext(ctx, q, name, fieldType, id, venueID)
	return err
}

// Delete removes a field scoped to its venue along with its bookings and
// rosters.  ErrFieldNotFound is returned when (id, venueID) does not
// resolve.
func (r *FieldRepo) Delete(ctx context.Context, id, venueID uint64) error {
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
	var fieldID uint64
	if err = tx.QueryRowContext(ctx,
		`SELECT id FROM fields WHERE id = ? AND venues_id = ?`, id, venueID).Scan(&fieldID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrFieldNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE uhb FROM users_has_bookings uhb
		 JOIN bookings b ON b.id = uhb.bookings_id
		 WHERE b.fields_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE fields_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM fields WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
