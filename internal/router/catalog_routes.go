package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/handler"
	"github.com/iliyamo/sport-venue-booking/internal/middleware"
	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// RegisterCatalog registers the venue and field resources under /api/v1.
// All routes require a valid bearer token and the owner role; the role
// check lives in one middleware rather than inside each handler.
func RegisterCatalog(e *echo.Echo, v *handler.VenueHandler, f *handler.FieldHandler, jwtSecret string, revoked middleware.TokenRevocations) {
	g := e.Group(
		apiPrefix,
		middleware.JWTAuth(jwtSecret, revoked),
		middleware.RequireRole(model.RoleOwner),
	)

	// ---- Venues ----
	g.GET("/venues", v.Index)
	g.POST("/venues", v.Store)
	g.GET("/venues/:id", v.Show)
	g.PUT("/venues/:id", v.Update)
	g.DELETE("/venues/:id", v.Destroy)

	// ---- Fields (nested under their venue) ----
	g.GET("/venues/:venue_id/fields", f.Index)
	g.POST("/venues/:venue_id/fields", f.Store)
	g.GET("/venues/:venue_id/fields/:id", f.Show)
	g.PUT("/venues/:venue_id/fields/:id", f.Update)
	g.DELETE("/venues/:venue_id/fields/:id", f.Destroy)
}
