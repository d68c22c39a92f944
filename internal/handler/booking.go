// This file defines handlers for booking sessions: the server-held form
// state that walks a guest from stay parameters through availability,
// hold and payment handoff. Sessions live in memory and work for
// anonymous guests; the session id doubles as the access capability.

package handler

import (
    "context"
    "database/sql"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/voyago/hotel-booking/internal/booking"
    "github.com/voyago/hotel-booking/internal/model"
    "github.com/voyago/hotel-booking/internal/queue"
    "github.com/voyago/hotel-booking/internal/repository"
    queue_publisher "github.com/voyago/hotel-booking/internal/service"
)

// BookingHandler bundles everything a booking session touches: the
// session store, the workflow over the external collaborators, the
// catalog for room facts and the audit repository.
type BookingHandler struct {
    Sessions  *booking.Store
    Flow      *booking.Workflow
    Hotels    *repository.HotelRepo
    RoomTypes *repository.RoomTypeRepo
    Users     *repository.UserRepo
    Bookings  *repository.BookingRepo
}

func NewBookingHandler(st *booking.Store, flow *booking.Workflow, hotels *repository.HotelRepo, roomTypes *repository.RoomTypeRepo, users *repository.UserRepo, bookings *repository.BookingRepo) *BookingHandler {
    return &BookingHandler{Sessions: st, Flow: flow, Hotels: hotels, RoomTypes: roomTypes, Users: users, Bookings: bookings}
}

// ----- DTOs -----

// intentReq is a partial form update. Absent fields stay unchanged.
type intentReq struct {
    CheckIn         *string `json:"check_in"`  // YYYY-MM-DD
    CheckOut        *string `json:"check_out"` // YYYY-MM-DD
    Rooms           *int    `json:"rooms"`
    Guests          *int    `json:"guests"`
    GuestName       *string `json:"guest_name"`
    GuestEmail      *string `json:"guest_email"`
    GuestPhone      *string `json:"guest_phone"`
    SpecialRequests *string `json:"special_requests"`
}

type intentResp struct {
    CheckIn         string `json:"check_in"`
    CheckOut        string `json:"check_out"`
    Rooms           int    `json:"rooms"`
    Guests          int    `json:"guests"`
    GuestName       string `json:"guest_name"`
    GuestEmail      string `json:"guest_email"`
    GuestPhone      string `json:"guest_phone"`
    SpecialRequests string `json:"special_requests"`
}

type sessionResp struct {
    SessionID        string     `json:"session_id"`
    HotelID          uint64     `json:"hotel_id"`
    RoomTypeID       uint64     `json:"room_type_id"`
    Status           string     `json:"status"`
    HoldID           *int64     `json:"hold_id"`
    ExpiresAt        *time.Time `json:"expires_at,omitempty"`
    TimeRemaining    string     `json:"time_remaining,omitempty"`
    Error            string     `json:"error,omitempty"`
    Intent           intentResp `json:"intent"`
    Nights           int        `json:"nights"`
    TotalAmountCents uint64     `json:"total_amount_cents"`
    TotalAmount      float64    `json:"total_amount"`
    Completed        bool       `json:"completed"`
}

func dateString(t time.Time) string {
    if t.IsZero() {
        return ""
    }
    return t.Format("2006-01-02")
}

func sessionResponse(snap booking.Snapshot) sessionResp {
    resp := sessionResp{
        SessionID:  snap.ID,
        HotelID:    snap.Room.HotelID,
        RoomTypeID: snap.Room.ID,
        Status:     string(snap.Status),
        HoldID:     snap.HoldID,
        ExpiresAt:  snap.ExpiresAt,
        Error:      snap.LastError,
        Intent: intentResp{
            CheckIn:         dateString(snap.Intent.CheckIn),
            CheckOut:        dateString(snap.Intent.CheckOut),
            Rooms:           snap.Intent.Rooms,
            Guests:          snap.Intent.Guests,
            GuestName:       snap.Intent.GuestName,
            GuestEmail:      snap.Intent.GuestEmail,
            GuestPhone:      snap.Intent.GuestPhone,
            SpecialRequests: snap.Intent.SpecialRequests,
        },
        Nights:           snap.Quote.Nights,
        TotalAmountCents: snap.Quote.TotalCents,
        TotalAmount:      float64(snap.Quote.TotalCents) / 100.0,
        Completed:        snap.Completed,
    }
    if snap.HoldID != nil && snap.ExpiresAt != nil {
        resp.TimeRemaining = booking.FormatRemaining(snap.TimeRemaining)
    }
    return resp
}

// CreateSession opens a booking session for a room type. Anonymous
// guests are welcome; an authenticated user is attached to the session
// and their email pre-filled into the form.
func (h *BookingHandler) CreateSession(c echo.Context) error {
    ctx := c.Request().Context()
    hotelID, err := parseID(c, "hotel_id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
    }
    roomTypeID, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
    }

    rt, err := h.RoomTypes.GetByID(ctx, roomTypeID)
    if err != nil {
        if err == repository.ErrRoomTypeNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rt.HotelID != hotelID || !rt.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
    }

    s := booking.NewSession(booking.RoomTypeRef{
        ID:             rt.ID,
        HotelID:        rt.HotelID,
        Capacity:       rt.Capacity,
        BasePriceCents: rt.BasePriceCents,
    }, optionalUserID(c))

    if s.UserID != nil {
        // Pre-fill contact email from the account profile.
        if u, err := h.Users.GetByID(ctx, *s.UserID); err == nil {
            email := u.Email
            s.ApplyIntent(booking.IntentPatch{GuestEmail: &email})
        } else if err != sql.ErrNoRows {
            log.Printf("booking: prefill lookup failed for user %d: %v", *s.UserID, err)
        }
    }

    h.Sessions.Add(s)
    return c.JSON(http.StatusCreated, sessionResponse(s.Snapshot()))
}

// GetSession returns the current session state including the countdown.
func (h *BookingHandler) GetSession(c echo.Context) error {
    s, err := h.loadSession(c)
    if err != nil {
        return h.sessionError(c, err)
    }
    s.Touch()
    return c.JSON(http.StatusOK, sessionResponse(s.Snapshot()))
}

// UpdateIntent merges a partial form edit into the session. Field edits
// never destroy a live hold.
func (h *BookingHandler) UpdateIntent(c echo.Context) error {
    s, err := h.loadSession(c)
    if err != nil {
        return h.sessionError(c, err)
    }

    var req intentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    patch := booking.IntentPatch{
        Rooms:           req.Rooms,
        Guests:          req.Guests,
        GuestName:       req.GuestName,
        GuestEmail:      req.GuestEmail,
        GuestPhone:      req.GuestPhone,
        SpecialRequests: req.SpecialRequests,
    }
    if req.CheckIn != nil {
        t, err := parseDate(*req.CheckIn)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
        }
        patch.CheckIn = &t
    }
    if req.CheckOut != nil {
        t, err := parseDate(*req.CheckOut)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
        }
        patch.CheckOut = &t
    }

    s.ApplyIntent(patch)
    return c.JSON(http.StatusOK, sessionResponse(s.Snapshot()))
}

// CheckAvailability runs the combined availability check and hold
// acquisition. The outcome, positive or negative, lands in the session
// state returned to the client.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
    s, err := h.loadSession(c)
    if err != nil {
        return h.sessionError(c, err)
    }

    err = h.Flow.CheckAndHold(c.Request().Context(), s)
    switch {
    case err == nil:
        return c.JSON(http.StatusOK, sessionResponse(s.Snapshot()))
    case err == booking.ErrCheckInFlight || err == booking.ErrSessionClosed:
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    default:
        if ie, ok := booking.AsInvalidIntent(err); ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": ie.Reason})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
    }
}

// Submit validates the form, makes one best-effort hold pass and hands
// the booking to the payment provider. Every attempt that reached the
// provider is recorded in the bookings table, success or failure, and a
// booking.initiated event is published on success.
func (h *BookingHandler) Submit(c echo.Context) error {
    s, err := h.loadSession(c)
    if err != nil {
        return h.sessionError(c, err)
    }

    out, err := h.Flow.Submit(c.Request().Context(), s)
    if err != nil {
        switch {
        case err == booking.ErrSubmitInFlight || err == booking.ErrSessionClosed:
            return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": err.Error()})
        default:
            if ie, ok := booking.AsInvalidIntent(err); ok {
                return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": ie.Reason})
            }
            // The attempt reached the payment provider and failed;
            // keep an audit row with the reason.
            h.recordBooking(c, out, model.BookingStatusFailed, "", err.Error())
            return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": err.Error()})
        }
    }

    row := h.recordBooking(c, out, model.BookingStatusInitiated, out.RedirectURL, "")
    h.publishInitiated(row, out)
    h.Sessions.Remove(s.ID)

    return c.JSON(http.StatusOK, echo.Map{
        "success":      true,
        "redirect_url": out.RedirectURL,
    })
}

// DeleteSession discards a session. The remote hold, if any, is left to
// self-expire on the inventory side.
func (h *BookingHandler) DeleteSession(c echo.Context) error {
    s, err := h.loadSession(c)
    if err != nil {
        return h.sessionError(c, err)
    }
    h.Sessions.Remove(s.ID)
    return c.NoContent(http.StatusNoContent)
}

// MyBookings lists the authenticated user's recorded bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Bookings.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ----- internals -----

// loadSession resolves the :id path parameter to a live session and
// enforces ownership: a session bound to a user may only be acted on by
// that user. Guest sessions are protected by the unguessable id alone.
func (h *BookingHandler) loadSession(c echo.Context) (*booking.Session, error) {
    s, ok := h.Sessions.Get(c.Param("id"))
    if !ok {
        return nil, echo.ErrNotFound
    }
    if s.UserID != nil {
        uid := optionalUserID(c)
        if uid == nil || *uid != *s.UserID {
            return nil, repository.ErrForbidden
        }
    }
    return s, nil
}

func (h *BookingHandler) sessionError(c echo.Context, err error) error {
    switch err {
    case echo.ErrNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking session not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

// recordBooking writes the audit row for a submit attempt that reached
// the payment provider. Failures to persist are logged, not surfaced:
// the guest's redirect must not depend on the audit trail.
func (h *BookingHandler) recordBooking(c echo.Context, out booking.SubmitOutcome, status, redirectURL, failureReason string) *model.Booking {
    sub := out.Submission
    b := &model.Booking{
        SessionID:        sub.SessionID,
        UserID:           sub.UserID,
        HotelID:          sub.HotelID,
        RoomTypeID:       sub.RoomTypeID,
        CheckIn:          sub.CheckIn,
        CheckOut:         sub.CheckOut,
        Rooms:            sub.Rooms,
        Guests:           sub.Guests,
        GuestName:        sub.GuestName,
        GuestEmail:       sub.GuestEmail,
        GuestPhone:       sub.GuestPhone,
        TotalAmountCents: sub.TotalCents,
        HoldRef:          sub.HoldID,
        Status:           status,
    }
    if sub.SpecialRequests != "" {
        sr := sub.SpecialRequests
        b.SpecialRequests = &sr
    }
    if redirectURL != "" {
        ru := redirectURL
        b.RedirectURL = &ru
    }
    if failureReason != "" {
        fr := failureReason
        b.FailureReason = &fr
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Bookings.Create(ctx, b); err != nil {
        log.Printf("booking: audit insert failed for %s: %v", sub.SessionID, err)
    }
    return b
}

// publishInitiated emits the booking.initiated event. Best effort: a
// broker outage never blocks the redirect.
func (h *BookingHandler) publishInitiated(b *model.Booking, out booking.SubmitOutcome) {
    var uid uint64
    if b.UserID != nil {
        uid = *b.UserID
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var hotelName, roomTypeName string
    if ht, err := h.Hotels.GetByID(ctx, b.HotelID); err == nil {
        hotelName = ht.Name
    }
    if rt, err := h.RoomTypes.GetByID(ctx, b.RoomTypeID); err == nil {
        roomTypeName = rt.Name
    }

    ev := queue.BookingInitiatedEvent{
        BookingID:        b.ID,
        SessionID:        b.SessionID,
        UserID:           uid,
        HotelID:          b.HotelID,
        HotelName:        hotelName,
        RoomTypeID:       b.RoomTypeID,
        RoomTypeName:     roomTypeName,
        CheckIn:          dateString(b.CheckIn),
        CheckOut:         dateString(b.CheckOut),
        Rooms:            b.Rooms,
        Guests:           b.Guests,
        HoldID:           b.HoldRef,
        TotalAmountCents: b.TotalAmountCents,
        InitiatedAt:      time.Now().UTC().Format("2006-01-02 15:04:05"),
    }
    if err := queue_publisher.PublishBookingInitiated(ctx, ev); err != nil {
        log.Printf("booking: publish booking.initiated failed for %s: %v", b.SessionID, err)
    }
}

func parseDate(s string) (time.Time, error) {
    return time.Parse("2006-01-02", s)
}

func parseID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}
