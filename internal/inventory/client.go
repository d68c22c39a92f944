// Package inventory talks to the external inventory and hold service
// over HTTP JSON.  The service owns and arbitrates room inventory; this
// client only asks questions and carries hold references back.
package inventory

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/voyago/hotel-booking/internal/booking"
)

const (
    availabilityPath = "/api/bookings/check-availability"
    createHoldPath   = "/api/bookings/create-hold"

    // serviceType and holdType identify hotel-room inventory to a
    // service that also manages other rentable resources.
    serviceType = "hotel"
    holdType    = "hotel_room"

    dateFormat = "2006-01-02"
)

// Client implements booking.InventoryClient against the inventory
// service's REST surface.
type Client struct {
    baseURL string
    hc      *http.Client
}

// New returns a client for the inventory service at baseURL.
func New(baseURL string) *Client {
    return &Client{
        baseURL: baseURL,
        hc:      &http.Client{Timeout: 10 * time.Second},
    }
}

type availabilityRequest struct {
    Type          string `json:"type"`
    RoomTypeID    uint64 `json:"room_type_id"`
    ServiceID     uint64 `json:"service_id"`
    StartDate     string `json:"start_date"`
    EndDate       string `json:"end_date"`
    RequiredRooms int    `json:"required_rooms"`
}

type availabilityResponse struct {
    Available bool   `json:"available"`
    Message   string `json:"message"`
}

type holdRequest struct {
    SessionID        string  `json:"session_id"`
    UserID           *uint64 `json:"user_id"`
    HoldType         string  `json:"hold_type"`
    RoomTypeID       uint64  `json:"room_type_id"`
    ServiceID        uint64  `json:"service_id"`
    HoldDate         string  `json:"hold_date"`
    Quantity         int     `json:"quantity"`
    HoldPrice        uint64  `json:"hold_price"`
    ExpiresInMinutes int     `json:"expires_in_minutes"`
}

type holdResponse struct {
    Success   bool   `json:"success"`
    HoldID    *int64 `json:"hold_id"`
    ExpiresAt string `json:"expires_at"`
    Message   string `json:"message"`
}

// CheckAvailability asks whether the requested quantity of rooms is
// free for the date range.
func (c *Client) CheckAvailability(ctx context.Context, req booking.AvailabilityRequest) (booking.AvailabilityResult, error) {
    body := availabilityRequest{
        Type:          serviceType,
        RoomTypeID:    req.RoomTypeID,
        ServiceID:     req.HotelID,
        StartDate:     req.StartDate.Format(dateFormat),
        EndDate:       req.EndDate.Format(dateFormat),
        RequiredRooms: req.RequiredRooms,
    }
    var res availabilityResponse
    if err := c.post(ctx, availabilityPath, body, &res); err != nil {
        return booking.AvailabilityResult{}, err
    }
    return booking.AvailabilityResult{Available: res.Available, Message: res.Message}, nil
}

// CreateHold requests a time-boxed claim on inventory.  A denial is not
// an error: it comes back as Success=false with the service's message.
func (c *Client) CreateHold(ctx context.Context, req booking.HoldRequest) (booking.HoldResult, error) {
    body := holdRequest{
        SessionID:        req.SessionID,
        UserID:           req.UserID,
        HoldType:         holdType,
        RoomTypeID:       req.RoomTypeID,
        ServiceID:        req.HotelID,
        HoldDate:         req.HoldDate.Format(dateFormat),
        Quantity:         req.Quantity,
        HoldPrice:        req.HoldPriceCents,
        ExpiresInMinutes: req.ExpiresInMinutes,
    }
    var res holdResponse
    if err := c.post(ctx, createHoldPath, body, &res); err != nil {
        return booking.HoldResult{}, err
    }

    out := booking.HoldResult{Success: res.Success, Message: res.Message}
    if res.HoldID != nil {
        out.HoldID = *res.HoldID
    }
    if res.ExpiresAt != "" {
        // The service reports expiry as an RFC 3339 timestamp.  A
        // malformed one is ignored; the caller falls back to its own TTL.
        if ts, err := time.Parse(time.RFC3339, res.ExpiresAt); err == nil {
            out.ExpiresAt = ts.UTC()
        }
    }
    return out, nil
}

// post sends a JSON body and decodes the JSON answer into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
    jb, err := json.Marshal(body)
    if err != nil {
        return err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jb))
    if err != nil {
        return err
    }
    req.Header.Set("Content-Type", "application/json")

    res, err := c.hc.Do(req)
    if err != nil {
        return err
    }
    defer res.Body.Close()

    b, err := io.ReadAll(res.Body)
    if err != nil {
        return err
    }
    if res.StatusCode >= 400 {
        return fmt.Errorf("inventory: %s returned status %d", path, res.StatusCode)
    }
    return json.Unmarshal(b, out)
}
