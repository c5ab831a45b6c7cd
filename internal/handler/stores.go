package handler

import (
	"context"
	"time"

	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// The handler layer talks to persistence through these interfaces.  The
// repository package provides the MySQL implementations; tests substitute
// in-memory fakes.

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role, otpCode string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	MarkVerified(ctx context.Context, id uint64) error
}

// VenueStore persists venues.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	List(ctx context.Context) ([]*model.Venue, error)
	Update(ctx context.Context, id uint64, name, phone, address string) error
	Delete(ctx context.Context, id uint64) error
}

// FieldStore persists fields, always scoped to a venue.
type FieldStore interface {
	Create(ctx context.Context, f *model.Field) error
	GetByIDAndVenue(ctx context.Context, id, venueID uint64) (*model.Field, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]*model.Field, error)
	Update(ctx context.Context, id, venueID uint64, name, fieldType string) error
	Delete(ctx context.Context, id, venueID uint64) error
}

// BookingStore persists bookings and their rosters.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	Join(ctx context.Context, userID, bookingID uint64) error
	Unjoin(ctx context.Context, userID, bookingID uint64) error
	Participants(ctx context.Context, bookingID uint64) ([]model.Participant, error)
	SchedulesByUser(ctx context.Context, userID uint64) ([]*model.Booking, error)
}

// TokenRevoker denylists a bearer token until its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
}
