// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingInitiatedEvent is published when a booking is handed off to the
// payment provider. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database. UserID is 0 for guest bookings.
type BookingInitiatedEvent struct {
    BookingID        uint64 `json:"booking_id"`
    SessionID        string `json:"session_id"`
    UserID           uint64 `json:"user_id"`
    HotelID          uint64 `json:"hotel_id"`
    HotelName        string `json:"hotel_name"`
    RoomTypeID       uint64 `json:"room_type_id"`
    RoomTypeName     string `json:"room_type_name"`
    CheckIn          string `json:"check_in"`
    CheckOut         string `json:"check_out"`
    Rooms            int    `json:"rooms"`
    Guests           int    `json:"guests"`
    HoldID           *int64 `json:"hold_id"`
    TotalAmountCents uint64 `json:"total_amount_cents"`
    InitiatedAt      string `json:"initiated_at"`
}
