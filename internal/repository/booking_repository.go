package repository

import (
    "context"
    "database/sql"

    "github.com/voyago/hotel-booking/internal/model"
)

// BookingRepo records every payment-initiation attempt.  The in-memory
// booking session is the working state; a row here is the durable audit
// trail of what was handed to the payment collaborator, or why the
// handoff failed.  All timestamp fields are stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking record.  On success the booking's ID and
// CreatedAt fields are populated from the stored row.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (session_id, user_id, hotel_id, room_type_id, check_in, check_out, rooms, guests,
                guest_name, guest_email, guest_phone, special_requests, total_amount_cents,
                hold_ref, status, redirect_url, failure_reason)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.SessionID, b.UserID, b.HotelID, b.RoomTypeID,
        b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
        b.Rooms, b.Guests,
        b.GuestName, b.GuestEmail, b.GuestPhone, b.SpecialRequests,
        b.TotalAmountCents, b.HoldRef, b.Status, b.RedirectURL, b.FailureReason,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// BookingDetail is a booking row joined with hotel and room type names
// for display to customers.
type BookingDetail struct {
    ID               uint64  `json:"id"`
    SessionID        string  `json:"session_id"`
    HotelID          uint64  `json:"hotel_id"`
    HotelName        string  `json:"hotel_name"`
    RoomTypeID       uint64  `json:"room_type_id"`
    RoomTypeName     string  `json:"room_type_name"`
    CheckIn          string  `json:"check_in"`
    CheckOut         string  `json:"check_out"`
    Rooms            int     `json:"rooms"`
    Guests           int     `json:"guests"`
    TotalAmountCents uint64  `json:"total_amount_cents"`
    TotalAmount      float64 `json:"total_amount"`
    Status           string  `json:"status"`
    CreatedAt        string  `json:"created_at"`
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT
            b.id,
            b.session_id,
            b.hotel_id,
            h.name AS hotel_name,
            b.room_type_id,
            rt.name AS room_type_name,
            DATE_FORMAT(b.check_in, '%Y-%m-%d')  AS check_in,
            DATE_FORMAT(b.check_out, '%Y-%m-%d') AS check_out,
            b.rooms,
            b.guests,
            b.total_amount_cents,
            b.status,
            DATE_FORMAT(b.created_at, '%Y-%m-%d %T') AS created_at
        FROM bookings b
        JOIN hotels h      ON h.id = b.hotel_id
        JOIN room_types rt ON rt.id = b.room_type_id
        WHERE b.user_id = ?
        ORDER BY b.created_at DESC, b.id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []BookingDetail
    for rows.Next() {
        var d BookingDetail
        if err := rows.Scan(
            &d.ID,
            &d.SessionID,
            &d.HotelID,
            &d.HotelName,
            &d.RoomTypeID,
            &d.RoomTypeName,
            &d.CheckIn,
            &d.CheckOut,
            &d.Rooms,
            &d.Guests,
            &d.TotalAmountCents,
            &d.Status,
            &d.CreatedAt,
        ); err != nil {
            return nil, err
        }
        d.TotalAmount = float64(d.TotalAmountCents) / 100.0
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
