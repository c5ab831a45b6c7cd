// This file defines repository methods for venues.  A venue belongs to a
// single owner and contains the fields that bookings are placed on.
// Deleting a venue removes its fields, their bookings and the booking
// rosters inside one transaction so no dependent rows survive.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue and populates the generated ID and timestamp
// fields on the provided record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = "INSERT INTO venues (name, phone, address, users_id) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, v.Name, v.Phone, v.Address, v.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	const qSelect = "SELECT name, phone, address, users_id, created_at, updated_at FROM venues WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(
		&v.Name, &v.Phone, &v.Address, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT id, name, phone, address, users_id, created_at, updated_at FROM venues WHERE id = ?"
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &v.Phone, &v.Address, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]*model.Venue, error) {
	const q = `SELECT id, name, phone, address, users_id, created_at, updated_at
	           FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.Address, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable venue columns.  It returns ErrVenueNotFound
// when the id does not resolve.
func (r *VenueRepo) Update(ctx context.Context, id uint64, name, phone, address string) error {
	const q = `UPDATE venues
	           SET name = ?, phone = ?, address = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, phone, address, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing row from an update that changed nothing.
		var exists uint64
		if err := r.db.QueryRowContext(ctx, "SELECT id FROM venues WHERE id = ?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a venue and all dependent records (fields, bookings on
// those fields and their rosters).  The deletion occurs within a
// transaction to maintain integrity.  ErrVenueNotFound is returned when
// the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
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
	var venueID uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, id).Scan(&venueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	// Roster rows for bookings on fields of this venue.
	if _, err = tx.ExecContext(ctx,
		`DELETE uhb FROM users_has_bookings uhb
		 JOIN bookings b ON b.id = uhb.bookings_id
		 JOIN fields f ON f.id = b.fields_id
		 WHERE f.venues_id = ?`, id); err != nil {
		return err
	}
	// Bookings on fields of this venue.
	if _, err = tx.ExecContext(ctx,
		`DELETE b FROM bookings b
		 JOIN fields f ON f.id = b.fields_id
		 WHERE f.venues_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM fields WHERE venues_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
