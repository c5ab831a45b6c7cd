// Package repository contains the data access layer, separated from HTTP
// handlers.  This file defines sentinel error values shared across the
// repositories so that handlers can map failure scenarios onto the API's
// response envelope without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email address that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrFieldNotFound is returned when a field cannot be found for the given
// id and venue id.  A field that exists under a different venue is reported
// with this same error, never as an authorization failure.
var ErrFieldNotFound = errors.New("field not found")

// ErrBookingNotFound is returned when a booking id does not resolve.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNotJoined is returned by Unjoin when the user has no participation
// row for the booking.
var ErrNotJoined = errors.New("participation not found")
