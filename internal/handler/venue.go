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

// VenueHandler serves the owner-gated venue CRUD.
type VenueHandler struct {
	Venues VenueStore
}

func NewVenueHandler(venues VenueStore) *VenueHandler {
	return &VenueHandler{Venues: venues}
}

type venueReq struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

type venueJSON struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	OwnerID   uint64    `json:"users_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func venueToJSON(v *model.Venue) venueJSON {
	return venueJSON{
		ID: v.ID, Name: v.Name, Phone: v.Phone, Address: v.Address,
		OwnerID: v.OwnerID, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func (r *venueReq) validate() map[string]string {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	errs := map[string]string{}
	if r.Name == "" {
		errs["name"] = "name must not be empty"
	}
	if r.Phone == "" {
		errs["phone"] = "phone must not be empty"
	}
	if r.Address == "" {
		errs["address"] = "address must not be empty"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Index handles GET /api/v1/venues and returns all venues.
func (h *VenueHandler) Index(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	items, err := h.Venues.List(ctx)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "could not fetch data")
	}
	out := make([]venueJSON, 0, len(items))
	for _, v := range items {
		out = append(out, venueToJSON(v))
	}
	return respondData(c, http.StatusOK, "success fetching data", out)
}

// Store handles POST /api/v1/venues and creates a venue owned by the caller.
func (h *VenueHandler) Store(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); errs != nil {
		return respondErr(c, http.StatusBadRequest, errs)
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	v := &model.Venue{Name: req.Name, Phone: req.Phone, Address: req.Address, OwnerID: ownerID}
	if err := h.Venues.Create(ctx, v); err != nil {
		return respondErr(c, http.StatusBadRequest, "could not save data")
	}
	return respondOK(c, http.StatusCreated, "success saving data")
}

// Show handles GET /api/v1/venues/:id.
func (h *VenueHandler) Show(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "data with id "+c.Param("id")+" not found")
	}
	return respondData(c, http.StatusOK, "success fetching data", venueToJSON(v))
}

// Update handles PUT /api/v1/venues/:id.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); errs != nil {
		return respondErr(c, http.StatusBadRequest, errs)
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Venues.Update(ctx, id, req.Name, req.Phone, req.Address); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return respondErr(c, http.StatusBadRequest, "data with id "+c.Param("id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not update data")
	}
	return respondOK(c, http.StatusOK, "success updating data")
}

// Destroy handles DELETE /api/v1/venues/:id.  Fields, bookings and rosters
// under the venue go with it.
func (h *VenueHandler) Destroy(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return respondErr(c, http.StatusBadRequest, "data with id "+c.Param("id")+" not found")
		}
		return respondErr(c, http.StatusBadRequest, "could not delete data")
	}
	return respondOK(c, http.StatusOK, "success deleting data")
}
