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

// FieldHandler serves the owner-gated field CRUD nested under a venue.
// Every operation that names a field id is double-keyed on the venue id
// from the path; a mismatch reads as not-found.
type FieldHandler struct {
	Venues VenueStore
	Fields FieldStore
}

func NewFieldHandler(venues VenueStore, fields FieldStore) *FieldHandler {
	return &FieldHandler{Venues: venues, Fields: fields}
}

type fieldReq struct {
	Name string `json:"name" form:"name"`
	Type string `json:"type" form:"type"`
}

type fieldJSON struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	VenueID   uint64    `json:"venues_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func fieldToJSON(f *model.Field) fieldJSON {
	return fieldJSON{
		ID: f.ID, Name: f.Name, Type: f.Type,
		VenueID: f.VenueID, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt,
	}
}

func (r *fieldReq) validate() map[string]string {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	errs := map[string]string{}
	if r.Name == "" {
		errs["name"] = "name must not be empty"
	}
	if r.Type == "" {
		errs["type"] = "type must not be empty"
	} else if !model.FieldTypes[r.Type] {
		errs["type"] = "type must be one of soccer, minisoccer, futsal, basketball, volleyball"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Index handles GET /api/v1/venues/:venue_id/fields.
func (h *FieldHandler) Index(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	items, err := h.Fields.ListByVenue(ctx, venueID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "could not fetch data")
	}
	out := make([]fieldJSON, 0, len(items))
	for _, f := range items {
		out = append(out, fieldToJSON(f))
	}
	return respondData(c, http.StatusOK, "success fetching data", out)
}

// Store handles POST /api/v1/venues/:venue_id/fields.  The venue named in
// the path must exist.
func (h *FieldHandler) Store(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); errs != nil {
		return respondErr(c, http.StatusBadRequest, errs)
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return respondErr(c, http.StatusBadRequest, "venue with id "+c.Param("venue_id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not save data")
	}
	f := &model.Field{Name: req.Name, Type: req.Type, VenueID: venueID}
	if err := h.Fields.Create(ctx, f); err != nil {
		return respondErr(c, http.StatusBadRequest, "could not save data")
	}
	return respondOK(c, http.StatusCreated, "success saving data")
}

// Show handles GET /api/v1/venues/:venue_id/fields/:id.
func (h *FieldHandler) Show(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	f, err := h.Fields.GetByIDAndVenue(ctx, id, venueID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest,
			"data with id "+c.Param("id")+" and venues_id "+c.Param("venue_id")+" not found")
	}
	return respondData(c, http.StatusOK, "success fetching data", fieldToJSON(f))
}

// Update handles PUT /api/v1/venues/:venue_id/fields/:id.
func (h *FieldHandler) Update(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); errs != nil {
		return respondErr(c, http.StatusBadRequest, errs)
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Fields.Update(ctx, id, venueID, req.Name, req.Type); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return respondErr(c, http.StatusBadRequest,
				"data with id "+c.Param("id")+" and venues_id "+c.Param("venue_id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not update data")
	}
	return respondOK(c, http.StatusOK, "success updating data")
}

// Destroy handles DELETE /api/v1/venues/:venue_id/fields/:id.
func (h *FieldHandler) Destroy(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid venue_id")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Fields.Delete(ctx, id, venueID); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return respondErr(c, http.StatusBadRequest,
				"data with id "+c.Param("id")+" and venues_id "+c.Param("venue_id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not delete data")
	}
	return respondOK(c, http.StatusOK, "success deleting data")
}
