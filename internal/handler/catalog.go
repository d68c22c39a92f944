// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public hotel catalog. These routes let
// unauthenticated visitors browse hotels and room types without logging in.
// Sensitive fields (timestamps, active flags) are filtered from responses.

package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/voyago/hotel-booking/internal/model"
    "github.com/voyago/hotel-booking/internal/repository"
)

// CatalogHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type CatalogHandler struct {
    HotelRepo    *repository.HotelRepo    // provides access to hotel data
    RoomTypeRepo *repository.RoomTypeRepo // provides access to room type data
}

// PublicHotel represents a hotel exposed via the public API. It contains
// only safe fields.
type PublicHotel struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    City        string  `json:"city"`
    Description *string `json:"description,omitempty"`
}

// PublicRoomType represents a room type in public responses. Price is
// reported both in cents and as a decimal amount.
type PublicRoomType struct {
    ID             uint64  `json:"id"`
    HotelID        uint64  `json:"hotel_id"`
    Name           string  `json:"name"`
    Description    *string `json:"description,omitempty"`
    Capacity       uint32  `json:"capacity"`
    BasePriceCents uint32  `json:"base_price_cents"`
    BasePrice      float64 `json:"base_price"`
}

func publicRoomType(rt *model.RoomType) PublicRoomType {
    return PublicRoomType{
        ID:             rt.ID,
        HotelID:        rt.HotelID,
        Name:           rt.Name,
        Description:    rt.Description,
        Capacity:       rt.Capacity,
        BasePriceCents: rt.BasePriceCents,
        BasePrice:      float64(rt.BasePriceCents) / 100.0,
    }
}

// GetHotels returns all active hotels. Response JSON contains an "items"
// array of PublicHotel.
func (h *CatalogHandler) GetHotels(c echo.Context) error {
    ctx := c.Request().Context()
    hotels, err := h.HotelRepo.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicHotel, 0, len(hotels))
    for _, ht := range hotels {
        out = append(out, PublicHotel{ID: ht.ID, Name: ht.Name, City: ht.City, Description: ht.Description})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetHotelRoomTypes lists the active room types of a hotel. It validates
// the hotel exists, then returns only non-sensitive fields.
func (h *CatalogHandler) GetHotelRoomTypes(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    // ensure hotel exists
    if _, err := h.HotelRepo.GetByID(ctx, id); err != nil {
        if err == repository.ErrHotelNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    roomTypes, err := h.RoomTypeRepo.ListByHotel(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicRoomType, 0, len(roomTypes))
    for _, rt := range roomTypes {
        out = append(out, publicRoomType(rt))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRoomType returns a single room type with its hotel summary attached.
func (h *CatalogHandler) GetRoomType(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    rt, err := h.RoomTypeRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrRoomTypeNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp := echo.Map{"room_type": publicRoomType(rt)}
    if ht, err := h.HotelRepo.GetByID(ctx, rt.HotelID); err == nil {
        resp["hotel"] = PublicHotel{ID: ht.ID, Name: ht.Name, City: ht.City, Description: ht.Description}
    }
    return c.JSON(http.StatusOK, resp)
}

// SearchHotels filters active hotels by name, city and price bounds with
// pagination. Prices are supplied in cents (min_price, max_price).
func (h *CatalogHandler) SearchHotels(c echo.Context) error {
    name := strings.TrimSpace(c.QueryParam("name"))
    city := strings.TrimSpace(c.QueryParam("city"))

    minPrice, _ := strconv.ParseUint(c.QueryParam("min_price"), 10, 64)
    maxPrice, _ := strconv.ParseUint(c.QueryParam("max_price"), 10, 64)

    page, _ := strconv.Atoi(c.QueryParam("page"))
    if page < 1 {
        page = 1
    }
    ps, _ := strconv.Atoi(c.QueryParam("page_size"))
    if ps < 1 {
        ps = 20
    }
    if ps > 100 {
        ps = 100
    }

    q := repository.HotelSearchQuery{
        Name:          name,
        City:          city,
        MinPriceCents: minPrice,
        MaxPriceCents: maxPrice,
        Page:          page,
        PageSize:      ps,
    }

    items, total, err := h.HotelRepo.Search(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error":   "database_error",
            "message": err.Error(),
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "data":      items,
        "total":     total,
        "page":      page,
        "page_size": ps,
    })
}
