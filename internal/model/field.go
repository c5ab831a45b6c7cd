package model

import "time"

// Field is a bookable playing field inside a venue.  Every field belongs
// to exactly one venue and is removed when the venue is deleted.
type Field struct {
    ID        uint64    // fields.id
    Name      string    // fields.name
    Type      string    // fields.type (sport type enum)
    VenueID   uint64    // fields.venues_id
    CreatedAt time.Time // fields.created_at
    UpdatedAt time.Time // fields.updated_at
}

// FieldTypes lists the sport types accepted for a field.  The database
// column is an enum with exactly these values.
var FieldTypes = map[string]bool{
    "soccer":     true,
    "minisoccer": true,
    "futsal":     true,
    "basketball": true,
    "volleyball": true,
}
