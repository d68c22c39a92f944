package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/voyago/hotel-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/voyago/hotel-booking/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems probe this endpoint to
    // verify that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that do not require an existing session: register,
    // login and the two refresh variants.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; refresh-access issues a new
    // access token while reusing the existing refresh token.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout does not require JWT middleware: the handler accepts either
    // a bearer token (revoke all sessions) or a refresh_token body
    // (revoke one session).
    g.POST("/logout", a.Logout)

    // Routes that require a valid access token.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)

    // Alias at the top level so clients can call either /v1/auth/logout
    // or /v1/logout with a refresh token in the body.
    e.POST("/v1/logout", a.Logout)
}
