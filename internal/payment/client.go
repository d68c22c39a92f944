// Package payment talks to the external payment-initiation service.
// A successful initiation yields a redirect URL for the guest to
// complete payment on the provider's pages; this service re-validates
// availability on its side, so a missing hold reference is acceptable.
package payment

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

const initiateHotelPath = "/api/bookings/initiate-payment/hotel"

// Client implements booking.PaymentClient against the payment service's
// REST surface.  The payment service speaks camelCase JSON, unlike the
// inventory service.
type Client struct {
    baseURL string
    hc      *http.Client
}

// New returns a client for the payment service at baseURL.
func New(baseURL string) *Client {
    return &Client{
        baseURL: baseURL,
        hc:      &http.Client{Timeout: 15 * time.Second},
    }
}

type guestDetails struct {
    Name         string `json:"name"`
    Email        string `json:"email"`
    MobileNumber string `json:"mobileNumber"`
}

type initiateRequest struct {
    HoldID          *int64       `json:"holdId"`
    SessionID       string       `json:"sessionId"`
    UserID          *uint64      `json:"userId"`
    GuestDetails    guestDetails `json:"guestDetails"`
    NumberOfRooms   int          `json:"numberOfRooms"`
    NumberOfGuests  int          `json:"numberOfGuests"`
    SpecialRequests string       `json:"specialRequests"`
    HotelID         uint64       `json:"hotelId"`
    RoomTypeID      uint64       `json:"roomTypeId"`
    CheckInDate     string       `json:"checkInDate"`
    CheckOutDate    string       `json:"checkOutDate"`
    TotalAmount     uint64       `json:"totalAmount"`
}

type initiateResponse struct {
    Success     bool   `json:"success"`
    RedirectURL string `json:"redirectUrl"`
    Message     string `json:"message"`
}

// InitiateHotelPayment submits a finalized booking and returns the
// provider's redirect URL.  A declined initiation comes back as
// Success=false with the provider's message; transport and server
// failures are errors.
func (c *Client) InitiateHotelPayment(ctx context.Context, sub booking.Submission) (booking.PaymentResult, error) {
    body := initiateRequest{
        HoldID:    sub.HoldID,
        SessionID: sub.SessionID,
        UserID:    sub.UserID,
        GuestDetails: guestDetails{
            Name:         sub.GuestName,
            Email:        sub.GuestEmail,
            MobileNumber: sub.GuestPhone,
        },
        NumberOfRooms:   sub.Rooms,
        NumberOfGuests:  sub.Guests,
        SpecialRequests: sub.SpecialRequests,
        HotelID:         sub.HotelID,
        RoomTypeID:      sub.RoomTypeID,
        CheckInDate:     sub.CheckIn.Format("2006-01-02"),
        CheckOutDate:    sub.CheckOut.Format("2006-01-02"),
        TotalAmount:     sub.TotalCents,
    }

    jb, err := json.Marshal(body)
    if err != nil {
        return booking.PaymentResult{}, err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+initiateHotelPath, bytes.NewReader(jb))
    if err != nil {
        return booking.PaymentResult{}, err
    }
    req.Header.Set("Content-Type", "application/json")

    res, err := c.hc.Do(req)
    if err != nil {
        return booking.PaymentResult{}, err
    }
    defer res.Body.Close()

    b, err := io.ReadAll(res.Body)
    if err != nil {
        return booking.PaymentResult{}, err
    }
    if res.StatusCode >= 400 {
        // Some providers return a JSON message with the error status.
        var r initiateResponse
        if json.Unmarshal(b, &r) == nil && r.Message != "" {
            return booking.PaymentResult{}, fmt.Errorf("payment: initiation failed: %s (status %d)", r.Message, res.StatusCode)
        }
        return booking.PaymentResult{}, fmt.Errorf("payment: initiation failed (status %d)", res.StatusCode)
    }

    var r initiateResponse
    if err := json.Unmarshal(b, &r); err != nil {
        return booking.PaymentResult{}, err
    }
    return booking.PaymentResult{Success: r.Success, RedirectURL: r.RedirectURL, Message: r.Message}, nil
}
