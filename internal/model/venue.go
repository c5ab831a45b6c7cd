package model

import "time"

// Venue represents a sport venue owned by a user with the "owner" role.
// A venue can contain multiple fields.  This struct corresponds to a row
// in the `venues` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human-friendly venue name.
//  Phone     – contact phone number.
//  Address   – street address.
//  OwnerID   – user ID of the venue owner (venues.users_id).
//  CreatedAt – timestamp when the venue was created.
//  UpdatedAt – timestamp of last update.
type Venue struct {
    ID        uint64    // venues.id
    Name      string    // venues.name
    Phone     string    // venues.phone
    Address   string    // venues.address
    OwnerID   uint64    // venues.users_id
    CreatedAt time.Time // venues.created_at
    UpdatedAt time.Time // venues.updated_at
}
