package model

import "time"

// Booking records a time window reserved on a field.  The creating user
// (an owner) is tagged in CreatedBy and is also inserted into the
// participant roster in the same transaction.
//
// Fields:
//  ID            – primary key identifier.
//  PlayDateStart – start of the play window.
//  PlayDateEnd   – end of the play window.
//  FieldID       – field being booked (bookings.fields_id).
//  CreatedBy     – user who created the booking (bookings.users_id_booking).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
    ID            uint64    // bookings.id
    PlayDateStart time.Time // bookings.play_date_start
    PlayDateEnd   time.Time // bookings.play_date_end
    FieldID       uint64    // bookings.fields_id
    CreatedBy     uint64    // bookings.users_id_booking
    CreatedAt     time.Time // bookings.created_at
    UpdatedAt     time.Time // bookings.updated_at
}

// Participant is one row of a booking's roster resolved against the users
// table.  Only the columns safe to expose are carried.
type Participant struct {
    ID    uint64 `json:"id"`
    Name  string `json:"name"`
    Email string `json:"email"`
}
