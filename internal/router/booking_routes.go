package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/handler"
	"github.com/iliyamo/sport-venue-booking/internal/middleware"
	"github.com/iliyamo/sport-venue-booking/internal/model"
)

// RegisterBookings registers the booking ledger endpoints under /api/v1.
// Reading bookings only needs authentication; creating one is for owners,
// while joining, unjoining and personal schedules are for the user role.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, revoked middleware.TokenRevocations) {
	auth := e.Group(apiPrefix, middleware.JWTAuth(jwtSecret, revoked))
	auth.GET("/bookings", b.Index)
	auth.GET("/bookings/:id", b.Show)

	owner := e.Group(
		apiPrefix,
		middleware.JWTAuth(jwtSecret, revoked),
		middleware.RequireRole(model.RoleOwner),
	)
	owner.POST("/venues/:venue_id/bookings", b.Store)

	user := e.Group(
		apiPrefix,
		middleware.JWTAuth(jwtSecret, revoked),
		middleware.RequireRole(model.RoleUser),
	)
	user.PUT("/bookings/:id/join", b.Join)
	user.PUT("/bookings/:id/unjoin", b.Unjoin)
	user.GET("/schedules", b.Schedules)
}
