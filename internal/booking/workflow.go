package booking

import (
    "context"
    "log"
    "time"
)

// AvailabilityRequest asks the inventory collaborator whether a quantity
// of rooms of one type is free for a date range.
type AvailabilityRequest struct {
    RoomTypeID    uint64
    HotelID       uint64
    StartDate     time.Time
    EndDate       time.Time
    RequiredRooms int
}

// AvailabilityResult is the collaborator's answer, with an optional
// human-readable message.
type AvailabilityResult struct {
    Available bool
    Message   string
}

// HoldRequest asks the hold service for a time-boxed exclusive claim on
// inventory.
type HoldRequest struct {
    SessionID        string
    UserID           *uint64
    RoomTypeID       uint64
    HotelID          uint64
    HoldDate         time.Time
    Quantity         int
    HoldPriceCents   uint64
    ExpiresInMinutes int
}

// HoldResult reports a granted or denied hold.
type HoldResult struct {
    Success   bool
    HoldID    int64
    ExpiresAt time.Time
    Message   string
}

// Submission is the payload assembled at submit time for the payment
// collaborator.  HoldID is nil when the booking proceeds without a
// hold; the raw hotel/room/date/amount fields let the server rebuild
// the booking in that case.
type Submission struct {
    HoldID          *int64
    SessionID       string
    UserID          *uint64
    GuestName       string
    GuestEmail      string
    GuestPhone      string
    Rooms           int
    Guests          int
    SpecialRequests string
    HotelID         uint64
    RoomTypeID      uint64
    CheckIn         time.Time
    CheckOut        time.Time
    TotalCents      uint64
}

// PaymentResult is the payment collaborator's answer to an initiation
// request.
type PaymentResult struct {
    Success     bool
    RedirectURL string
    Message     string
}

// InventoryClient is the external inventory and hold collaborator.
type InventoryClient interface {
    CheckAvailability(ctx context.Context, req AvailabilityRequest) (AvailabilityResult, error)
    CreateHold(ctx context.Context, req HoldRequest) (HoldResult, error)
}

// PaymentClient initiates payments with the external provider.
type PaymentClient interface {
    InitiateHotelPayment(ctx context.Context, sub Submission) (PaymentResult, error)
}

// PaymentError is a payment initiation that did not produce a redirect
// URL.  Terminal for the attempt; the guest must resubmit.
type PaymentError struct {
    Reason string
}

func (e *PaymentError) Error() string { return e.Reason }

// Workflow drives booking sessions through check-and-hold and
// submission against the external collaborators.
type Workflow struct {
    Inventory InventoryClient
    Payments  PaymentClient

    // HoldTTLMinutes is the requested hold lifetime, 15 by default.
    HoldTTLMinutes int

    // Now supplies the reference time for date validation.  Tests
    // override it; nil means time.Now.
    Now func() time.Time
}

// NewWorkflow wires a workflow over the two collaborators.
func NewWorkflow(inv InventoryClient, pay PaymentClient, holdTTLMinutes int) *Workflow {
    if holdTTLMinutes <= 0 {
        holdTTLMinutes = 15
    }
    return &Workflow{Inventory: inv, Payments: pay, HoldTTLMinutes: holdTTLMinutes}
}

func (w *Workflow) now() time.Time {
    if w.Now != nil {
        return w.Now()
    }
    return time.Now().UTC()
}

// CheckAndHold runs the combined availability check and hold
// acquisition for a session.  Collaborator outcomes, positive or
// negative, are recorded on the session; the returned error is non-nil
// only when the check could not start (another check in flight, or the
// date range is not selectable yet).
func (w *Workflow) CheckAndHold(ctx context.Context, s *Session) error {
    if err := s.beginCheck(); err != nil {
        return err
    }
    intent := s.Intent()
    if err := intent.datesSelectable(); err != nil {
        s.endCheckFailed(err.Error())
        return err
    }

    avail, err := w.Inventory.CheckAvailability(ctx, AvailabilityRequest{
        RoomTypeID:    s.Room.ID,
        HotelID:       s.Room.HotelID,
        StartDate:     DateOnly(intent.CheckIn),
        EndDate:       DateOnly(intent.CheckOut),
        RequiredRooms: intent.Rooms,
    })
    if err != nil {
        log.Printf("booking: availability check failed for %s: %v", s.ID, err)
        s.endCheckUnavailable(msgCheckFailed)
        return nil
    }
    if !avail.Available {
        msg := avail.Message
        if msg == "" {
            msg = msgUnavailable
        }
        s.endCheckUnavailable(msg + " " + msgUnavailableHint)
        return nil
    }
    s.markAvailable()

    hold, err := w.Inventory.CreateHold(ctx, w.holdRequest(s, intent))
    if err != nil {
        log.Printf("booking: hold creation failed for %s: %v", s.ID, err)
        s.endCheckUnavailable(msgHoldFailed)
        return nil
    }
    if !hold.Success {
        msg := hold.Message
        if msg == "" {
            msg = msgHoldFailed
        }
        s.endCheckUnavailable(msg)
        return nil
    }
    s.adoptHold(hold.HoldID, w.holdExpiry(hold))
    return nil
}

// SubmitOutcome reports one submit attempt that reached the payment
// collaborator.
type SubmitOutcome struct {
    RedirectURL string
    Submission  Submission
    Quote       Quote
}

// Submit validates the intent, makes one best-effort hold-acquisition
// pass when no live hold exists, and hands the booking off to the
// payment collaborator.  A failed hold attempt is logged and swallowed:
// the hold is a should-have, not a must-have, and the payment side
// re-validates availability independently.
//
// On success the session is completed and the redirect URL returned.
// Failures come back as *InvalidIntentError (nothing was sent),
// ErrSubmitInFlight, or *PaymentError / a wrapped transport error after
// the payment call; in every failure case the form stays populated for
// a retry.
func (w *Workflow) Submit(ctx context.Context, s *Session) (SubmitOutcome, error) {
    if err := s.beginSubmit(); err != nil {
        return SubmitOutcome{}, err
    }
    intent := s.Intent()
    if err := intent.Validate(w.now(), s.Room.Capacity); err != nil {
        s.endSubmit(err.Error())
        return SubmitOutcome{}, err
    }
    quote := QuoteFor(intent, s.Room.BasePriceCents)

    holdID := s.holdRef()
    if holdID == nil {
        hold, err := w.Inventory.CreateHold(ctx, w.holdRequest(s, intent))
        switch {
        case err != nil:
            log.Printf("booking: best-effort hold failed for %s: %v", s.ID, err)
        case !hold.Success:
            log.Printf("booking: best-effort hold denied for %s: %s", s.ID, hold.Message)
        default:
            s.adoptHold(hold.HoldID, w.holdExpiry(hold))
            holdID = s.holdRef()
        }
    }

    sub := Submission{
        HoldID:          holdID,
        SessionID:       s.ID,
        UserID:          s.UserID,
        GuestName:       intent.GuestName,
        GuestEmail:      intent.GuestEmail,
        GuestPhone:      intent.GuestPhone,
        Rooms:           intent.Rooms,
        Guests:          intent.Guests,
        SpecialRequests: intent.SpecialRequests,
        HotelID:         s.Room.HotelID,
        RoomTypeID:      s.Room.ID,
        CheckIn:         DateOnly(intent.CheckIn),
        CheckOut:        DateOnly(intent.CheckOut),
        TotalCents:      quote.TotalCents,
    }
    outcome := SubmitOutcome{Submission: sub, Quote: quote}

    res, err := w.Payments.InitiateHotelPayment(ctx, sub)
    if err != nil {
        log.Printf("booking: payment initiation failed for %s: %v", s.ID, err)
        s.endSubmit(msgPaymentFailed)
        return outcome, &PaymentError{Reason: msgPaymentFailed}
    }
    if !res.Success || res.RedirectURL == "" {
        msg := res.Message
        if msg == "" {
            msg = msgPaymentFailed
        }
        s.endSubmit(msg)
        return outcome, &PaymentError{Reason: msg}
    }

    s.complete()
    outcome.RedirectURL = res.RedirectURL
    return outcome, nil
}

// holdRequest builds the hold-service payload for the session's current
// intent.  The hold is priced at the full stay total and keyed by the
// check-in date.
func (w *Workflow) holdRequest(s *Session, intent Intent) HoldRequest {
    quote := QuoteFor(intent, s.Room.BasePriceCents)
    return HoldRequest{
        SessionID:        s.ID,
        UserID:           s.UserID,
        RoomTypeID:       s.Room.ID,
        HotelID:          s.Room.HotelID,
        HoldDate:         DateOnly(intent.CheckIn),
        Quantity:         intent.Rooms,
        HoldPriceCents:   quote.TotalCents,
        ExpiresInMinutes: w.HoldTTLMinutes,
    }
}

// holdExpiry picks the hold's expiry timestamp, falling back to the
// requested TTL when the collaborator omits one.
func (w *Workflow) holdExpiry(hold HoldResult) time.Time {
    if !hold.ExpiresAt.IsZero() {
        return hold.ExpiresAt
    }
    return time.Now().UTC().Add(time.Duration(w.HoldTTLMinutes) * time.Minute)
}
