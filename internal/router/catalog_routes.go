package router

import (
    "github.com/labstack/echo/v4"

    "github.com/voyago/hotel-booking/internal/handler"
)

// RegisterCatalog registers unauthenticated browse endpoints on the provided
// Echo instance. The CatalogHandler returns sanitized hotel and room type
// data for guests. Extra middleware (typically the Redis response cache)
// is applied to every catalog route.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mws ...echo.MiddlewareFunc) {
    // List all active hotels
    e.GET("/v1/hotels", h.GetHotels, mws...)
    // List active room types of a specific hotel
    e.GET("/v1/hotels/:id/room-types", h.GetHotelRoomTypes, mws...)
    // Room type details by id, with hotel summary attached
    e.GET("/v1/room-types/:id", h.GetRoomType, mws...)
    // Filtered hotel search with pagination
    e.GET("/v1/search/hotels", h.SearchHotels, mws...)
}
