package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/auth"
	"github.com/iliyamo/sport-venue-booking/internal/config"
	"github.com/iliyamo/sport-venue-booking/internal/database"
	"github.com/iliyamo/sport-venue-booking/internal/handler"
	"github.com/iliyamo/sport-venue-booking/internal/mailer"
	"github.com/iliyamo/sport-venue-booking/internal/middleware"
	"github.com/iliyamo/sport-venue-booking/internal/queue"
	"github.com/iliyamo/sport-venue-booking/internal/repository"
	"github.com/iliyamo/sport-venue-booking/internal/router"
	queue_publisher "github.com/iliyamo/sport-venue-booking/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the revoked-token denylist and the rate limiter.  A nil
	// client disables both rather than blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("warning: redis unavailable, logout revocation and rate limiting disabled")
	}
	revoked := auth.NewRevokedStore(rdb)

	users := repository.NewUserRepo(db)
	venues := repository.NewVenueRepo(db)
	fields := repository.NewFieldRepo(db)
	bookings := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, revoked, queue_publisher.PublishUserRegistered)
	venueHandler := handler.NewVenueHandler(venues)
	fieldHandler := handler.NewFieldHandler(venues, fields)
	bookingHandler := handler.NewBookingHandler(fields, bookings)

	// The OTP mail worker consumes user.registered events for the lifetime
	// of the process.
	go func() {
		if err := queue.StartOTPMailConsumer(mailer.New(config.LoadMailConfig())); err != nil {
			log.Printf("otp-mail-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, revoked)
	router.RegisterCatalog(e, venueHandler, fieldHandler, cfg.JWTSecret, revoked)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, revoked)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
