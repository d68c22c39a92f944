package main // Entry point package

import (
	"context" // Cancellation for background workers
	"log"     // Logging library
	"time"    // Janitor sweep interval

	"github.com/joho/godotenv" // Loads .env files in local development
	"github.com/labstack/echo/v4"

	"github.com/voyago/hotel-booking/internal/booking"    // Booking session state machine and workflow
	"github.com/voyago/hotel-booking/internal/config"     // Internal config loader
	"github.com/voyago/hotel-booking/internal/database"   // MySQL connection
	"github.com/voyago/hotel-booking/internal/handler"    // HTTP handlers
	"github.com/voyago/hotel-booking/internal/inventory"  // Availability and hold client
	"github.com/voyago/hotel-booking/internal/middleware" // Cache and rate-limit middleware
	"github.com/voyago/hotel-booking/internal/payment"    // Payment provider client
	"github.com/voyago/hotel-booking/internal/queue"      // RabbitMQ consumer
	"github.com/voyago/hotel-booking/internal/repository" // Data access layer
	"github.com/voyago/hotel-booking/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional. When unreachable the client is nil and both the
	// response cache and the rate limiter stay disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	bookings := repository.NewBookingRepo(db)

	// In-memory booking sessions with a background sweep for idle ones.
	sessions := booking.NewStore(cfg.SessionIdleTTL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Janitor(ctx, time.Minute)

	inv := inventory.New(cfg.BookingAPIBaseURL)
	pay := payment.New(cfg.PaymentAPIBaseURL)
	flow := booking.NewWorkflow(inv, pay, cfg.HoldTTLMin)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := &handler.CatalogHandler{HotelRepo: hotels, RoomTypeRepo: roomTypes}
	bookingH := handler.NewBookingHandler(sessions, flow, hotels, roomTypes, users, bookings)

	e := echo.New()

	var catalogMW, bookingMW []echo.MiddlewareFunc
	if rdb != nil {
		if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled {
			catalogMW = append(catalogMW, middleware.NewRedisCache(cacheCfg, rdb))
		}
		if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled {
			bookingMW = append(bookingMW, middleware.NewTokenBucket(rlCfg, rdb))
		}
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, catalogMW...)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret, bookingMW...)

	// The consumer keeps its own reconnect loop; a returned error means it
	// gave up for good.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
