package router

import (
    "github.com/labstack/echo/v4"

    "github.com/voyago/hotel-booking/internal/handler"
    "github.com/voyago/hotel-booking/internal/middleware"
)

// RegisterBooking registers the booking session endpoints under /v1.
// Sessions work for guests, so the routes use OptionalJWT: an anonymous
// request opens a guest session while a bearer token binds the session
// to the account. Extra middleware (typically the Redis token-bucket
// rate limiter) is applied to every session route, since these endpoints
// fan out to the external inventory and payment collaborators.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
    shared := append([]echo.MiddlewareFunc{middleware.OptionalJWT(jwtSecret)}, mws...)
    g := e.Group("/v1", shared...)

    // Open a session for a room type of a hotel.
    g.POST("/hotels/:hotel_id/room-types/:id/booking-sessions", h.CreateSession)

    // Session lifecycle. The unguessable session id is the capability
    // for guest sessions; user-bound sessions additionally require the
    // matching bearer token.
    g.GET("/booking-sessions/:id", h.GetSession)
    g.PUT("/booking-sessions/:id/intent", h.UpdateIntent)
    g.POST("/booking-sessions/:id/check-availability", h.CheckAvailability)
    g.POST("/booking-sessions/:id/submit", h.Submit)
    g.DELETE("/booking-sessions/:id", h.DeleteSession)

    // Booking history requires a full login.
    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/my-bookings", h.MyBookings)
}
