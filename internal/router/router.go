package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/handler"
	"github.com/iliyamo/sport-venue-booking/internal/middleware"
)

// apiPrefix is the common prefix of every business route.
const apiPrefix = "/api/v1"

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication endpoints.  Register, login and
// OTP confirmation are open; logout needs a valid bearer token because the
// token itself is what gets revoked.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, revoked middleware.TokenRevocations) {
	g := e.Group(apiPrefix)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/otp-confirmation", a.ConfirmOTP)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret, revoked))
}
