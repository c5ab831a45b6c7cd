package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/model"
	"github.com/iliyamo/sport-venue-booking/internal/repository"
)

// playDateLayout is the datetime format accepted for booking windows.
const playDateLayout = "2006-01-02 15:04:05"

// BookingHandler serves the booking ledger: owners create bookings on
// their venue's fields, users join and leave rosters and read their own
// schedules.
type BookingHandler struct {
	Fields   FieldStore
	Bookings BookingStore
}

func NewBookingHandler(fields FieldStore, bookings BookingStore) *BookingHandler {
	return &BookingHandler{Fields: fields, Bookings: bookings}
}

type bookingReq struct {
	PlayDateStart string `json:"play_date_start" form:"play_date_start"`
	PlayDateEnd   string `json:"play_date_end" form:"play_date_end"`
	FieldID       uint64 `json:"fields_id" form:"fields_id"`
}

type bookingJSON struct {
	ID            uint64    `json:"id"`
	PlayDateStart time.Time `json:"play_date_start"`
	PlayDateEnd   time.Time `json:"play_date_end"`
	FieldID       uint64    `json:"fields_id"`
	CreatedBy     uint64    `json:"users_id_booking"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type bookingDetailJSON struct {
	bookingJSON
	Players []model.Participant `json:"players"`
}

func bookingToJSON(b *model.Booking) bookingJSON {
	return bookingJSON{
		ID: b.ID, PlayDateStart: b.PlayDateStart, PlayDateEnd: b.PlayDateEnd,
		FieldID: b.FieldID, CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

// Index handles GET /api/v1/bookings and returns all bookings to any
// authenticated caller.
func (h *BookingHandler) Index(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	items, err := h.Bookings.List(ctx)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "could not fetch data")
	}
	out := make([]bookingJSON, 0, len(items))
	for _, b := range items {
		out = append(out, bookingToJSON(b))
	}
	return respondData(c, http.StatusOK, "success fetching data", out)
}

// Store handles POST /api/v1/venues/:venue_id/bookings.  The field named
// in the body must belong to the venue named in the path; the creator is
// put on the roster in the same transaction as the booking row.
func (h *BookingHandler) Store(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}

	fieldErrs := map[string]string{}
	start, err := time.Parse(playDateLayout, strings.TrimSpace(req.PlayDateStart))
	if err != nil {
		fieldErrs["play_date_start"] = "play_date_start must use the format yyyy-MM-dd HH:mm:ss"
	}
	end, err := time.Parse(playDateLayout, strings.TrimSpace(req.PlayDateEnd))
	if err != nil {
		fieldErrs["play_date_end"] = "play_date_end must use the format yyyy-MM-dd HH:mm:ss"
	}
	if req.FieldID == 0 {
		fieldErrs["fields_id"] = "fields_id must not be empty"
	}
	if len(fieldErrs) > 0 {
		return respondErr(c, http.StatusBadRequest, fieldErrs)
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if _, err := h.Fields.GetByIDAndVenue(ctx, req.FieldID, venueID); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return respondErr(c, http.StatusBadRequest, "field does not belong to the venue or does not exist")
		}
		return respondErr(c, http.StatusBadRequest, "could not save data")
	}
	b := &model.Booking{
		PlayDateStart: start,
		PlayDateEnd:   end,
		FieldID:       req.FieldID,
		CreatedBy:     ownerID,
	}
	if err := h.Bookings.Create(ctx, b); err != nil {
		return respondErr(c, http.StatusBadRequest, "could not save data")
	}
	return respondOK(c, http.StatusCreated, "success saving data")
}

// Show handles GET /api/v1/bookings/:id and returns the booking together
// with its resolved roster.
func (h *BookingHandler) Show(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "data with id "+c.Param("id")+" not found")
	}
	players, err := h.Bookings.Participants(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "could not fetch data")
	}
	detail := bookingDetailJSON{bookingJSON: bookingToJSON(b), Players: players}
	return respondData(c, http.StatusOK, "success fetching data", detail)
}

// Join handles PUT /api/v1/bookings/:id/join.  Joining twice is a no-op
// success.
func (h *BookingHandler) Join(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Bookings.Join(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return respondErr(c, http.StatusBadRequest, "data with id "+c.Param("id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not join booking")
	}
	return respondOK(c, http.StatusOK, "success joining booking")
}

// Unjoin handles PUT /api/v1/bookings/:id/unjoin.  Removing a
// participation that does not exist is an error, and no other row is ever
// touched.
func (h *BookingHandler) Unjoin(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Bookings.Unjoin(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotJoined) {
			return respondErr(c, http.StatusBadRequest, "you have not joined this booking")
		}
		return respondErr(c, http.StatusBadRequest, "could not unjoin booking")
	}
	return respondOK(c, http.StatusOK, "success unjoining booking")
}

// Schedules handles GET /api/v1/schedules and lists the bookings the
// caller participates in.
func (h *BookingHandler) Schedules(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	items, err := h.Bookings.SchedulesByUser(ctx, userID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "could not fetch schedules")
	}
	out := make([]bookingJSON, 0, len(items))
	for _, b := range items {
		out = append(out, bookingToJSON(b))
	}
	return respondData(c, http.StatusOK, "success fetching schedules", out)
}
