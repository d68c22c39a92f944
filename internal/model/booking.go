package model

import "time"

// Booking is the audit record written for every payment-initiation
// attempt of a booking session.  The session itself lives in memory
// for the duration of the form; this row is what survives it.  A
// booking that reached the payment collaborator successfully has
// status INITIATED and carries the redirect URL handed back; a
// declined or failed attempt is stored with status FAILED and the
// collaborator's message.
//
// Fields:
//  ID               – primary key identifier.
//  SessionID        – client-correlation token of the booking session.
//  UserID           – authenticated user, nil for guest bookings.
//  HotelID          – hotel being booked.
//  RoomTypeID       – room type being booked.
//  CheckIn          – check-in date (date only).
//  CheckOut         – check-out date (date only).
//  Rooms            – number of rooms requested.
//  Guests           – number of guests.
//  GuestName        – contact name supplied on the form.
//  GuestEmail       – contact email.
//  GuestPhone       – contact phone number.
//  SpecialRequests  – optional free-text requests.
//  TotalAmountCents – computed total for the stay in cents.
//  HoldRef          – hold id granted by the inventory service, nil
//                     when the booking proceeded without a hold.
//  Status           – INITIATED or FAILED.
//  RedirectURL      – payment page URL on success (nullable).
//  FailureReason    – collaborator message on failure (nullable).
//  CreatedAt        – creation timestamp.
type Booking struct {
    ID               uint64    // bookings.id
    SessionID        string    // bookings.session_id
    UserID           *uint64   // bookings.user_id (nullable)
    HotelID          uint64    // bookings.hotel_id
    RoomTypeID       uint64    // bookings.room_type_id
    CheckIn          time.Time // bookings.check_in
    CheckOut         time.Time // bookings.check_out
    Rooms            int       // bookings.rooms
    Guests           int       // bookings.guests
    GuestName        string    // bookings.guest_name
    GuestEmail       string    // bookings.guest_email
    GuestPhone       string    // bookings.guest_phone
    SpecialRequests  *string   // bookings.special_requests (nullable)
    TotalAmountCents uint64    // bookings.total_amount_cents
    HoldRef          *int64    // bookings.hold_ref (nullable)
    Status           string    // bookings.status
    RedirectURL      *string   // bookings.redirect_url (nullable)
    FailureReason    *string   // bookings.failure_reason (nullable)
    CreatedAt        time.Time // bookings.created_at
}

// Booking status values.
const (
    BookingStatusInitiated = "INITIATED"
    BookingStatusFailed    = "FAILED"
)
