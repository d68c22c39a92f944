package booking

import (
    "crypto/rand"
    "encoding/hex"
    "errors"
    "fmt"
    "strconv"
    "sync"
    "time"
)

// User-facing messages produced by the workflow itself.  Collaborator
// messages take precedence where the remote service supplies one.
const (
    msgUnavailable     = "Selected rooms are not available for these dates."
    msgUnavailableHint = "Please try different dates or reduce the number of rooms."
    msgCheckFailed     = "Could not check availability. Please try again."
    msgHoldFailed      = "Failed to secure room hold. Please try again."
    msgHoldExpired     = "Your room hold has expired. Please check availability again."
    msgPaymentFailed   = "Failed to initiate payment. Please try again."
)

// In-flight guards: a session accepts one availability check and one
// submission at a time.
var (
    ErrCheckInFlight  = errors.New("availability check already in progress")
    ErrSubmitInFlight = errors.New("submission already in progress")
    ErrSessionClosed  = errors.New("booking session already completed")
)

// RoomTypeRef carries the read-only pricing and capacity facts about the
// room type a session books.  It is supplied by the catalog and never
// mutated by the workflow.
type RoomTypeRef struct {
    ID             uint64
    HotelID        uint64
    Capacity       uint32
    BasePriceCents uint32
}

// Session is one booking attempt: the form state, the derived
// availability status and the reference to at most one live hold.  The
// session id is generated once at construction and stays constant for
// the session's lifetime; it correlates holds and payments even when no
// authenticated user exists.
//
// All state behind mu is mutated only through methods so that the
// countdown goroutine and HTTP handlers can touch a session
// concurrently.
type Session struct {
    ID     string
    UserID *uint64
    Room   RoomTypeRef

    mu          sync.Mutex
    intent      Intent
    status      Status
    holdID      *int64
    expiresAt   *time.Time
    timer       *holdTimer
    lastError   string
    checking    bool
    submitting  bool
    completed   bool
    lastTouched time.Time

    // tickInterval is the countdown granularity.  It defaults to one
    // second; tests shorten it to simulate time passage.
    tickInterval time.Duration
}

// NewSession creates a session for the given room type, optionally bound
// to an authenticated user.
func NewSession(room RoomTypeRef, userID *uint64) *Session {
    return &Session{
        ID:           NewSessionID(),
        UserID:       userID,
        Room:         room,
        tickInterval: time.Second,
        lastTouched:  time.Now().UTC(),
    }
}

// NewSessionID builds the correlation token for one booking attempt:
// hotel_session_<unix ms>_<random>.
func NewSessionID() string {
    suffix, err := randomHex(6)
    if err != nil {
        // crypto/rand failing is effectively fatal elsewhere; a
        // timestamp-derived suffix keeps the id usable.
        suffix = strconv.FormatInt(time.Now().UnixNano(), 36)
    }
    return fmt.Sprintf("hotel_session_%d_%s", time.Now().UnixMilli(), suffix)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

// IntentPatch is a partial update to the form state.  Nil fields are
// left unchanged.
type IntentPatch struct {
    CheckIn         *time.Time
    CheckOut        *time.Time
    Rooms           *int
    Guests          *int
    GuestName       *string
    GuestEmail      *string
    GuestPhone      *string
    SpecialRequests *string
}

// ApplyIntent merges a patch into the form state and returns the
// resulting intent.  Changing the room count re-clamps the guest count
// downward when it exceeds the new ceiling; any live hold is left
// untouched, since holds persist across unrelated field edits.
func (s *Session) ApplyIntent(p IntentPatch) Intent {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.lastTouched = time.Now().UTC()

    if p.CheckIn != nil {
        s.intent.CheckIn = DateOnly(*p.CheckIn)
    }
    if p.CheckOut != nil {
        s.intent.CheckOut = DateOnly(*p.CheckOut)
    }
    if p.Guests != nil {
        s.intent.Guests = *p.Guests
    }
    if p.Rooms != nil {
        s.intent.Rooms = *p.Rooms
        s.intent.Guests = ClampGuests(s.intent.Rooms, s.Room.Capacity, s.intent.Guests)
    }
    if p.GuestName != nil {
        s.intent.GuestName = *p.GuestName
    }
    if p.GuestEmail != nil {
        s.intent.GuestEmail = *p.GuestEmail
    }
    if p.GuestPhone != nil {
        s.intent.GuestPhone = *p.GuestPhone
    }
    if p.SpecialRequests != nil {
        s.intent.SpecialRequests = *p.SpecialRequests
    }
    return s.intent
}

// Intent returns a copy of the current form state.
func (s *Session) Intent() Intent {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.intent
}

// Snapshot is a consistent read of the whole session for rendering.
type Snapshot struct {
    ID            string
    UserID        *uint64
    Room          RoomTypeRef
    Intent        Intent
    Status        Status
    HoldID        *int64
    ExpiresAt     *time.Time
    TimeRemaining time.Duration
    LastError     string
    Completed     bool
    Quote         Quote
}

// Snapshot captures the current session state, including the live
// countdown value and a freshly computed price quote.
func (s *Session) Snapshot() Snapshot {
    s.mu.Lock()
    defer s.mu.Unlock()
    snap := Snapshot{
        ID:        s.ID,
        UserID:    s.UserID,
        Room:      s.Room,
        Intent:    s.intent,
        Status:    s.status,
        HoldID:    s.holdID,
        ExpiresAt: s.expiresAt,
        LastError: s.lastError,
        Completed: s.completed,
        Quote:     QuoteFor(s.intent, s.Room.BasePriceCents),
    }
    if s.expiresAt != nil {
        if rem := time.Until(*s.expiresAt); rem > 0 {
            snap.TimeRemaining = rem
        }
    }
    return snap
}

// FormatRemaining renders a countdown as minutes and zero-padded
// seconds, e.g. "14:59".  Negative durations render as "0:00".
func FormatRemaining(d time.Duration) string {
    if d < 0 {
        d = 0
    }
    total := int(d.Seconds())
    return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Touch refreshes the idle timestamp so the store janitor keeps the
// session alive.
func (s *Session) Touch() {
    s.mu.Lock()
    s.lastTouched = time.Now().UTC()
    s.mu.Unlock()
}

// Close stops the countdown goroutine, if any.  Used when a session is
// discarded; the remote hold is left to self-expire server-side.
func (s *Session) Close() {
    s.mu.Lock()
    t := s.timer
    s.timer = nil
    s.mu.Unlock()
    if t != nil {
        t.Stop()
    }
}

// --- workflow-internal transitions ---

// beginCheck marks an availability check as in flight.  Only one check
// may run at a time per session.
func (s *Session) beginCheck() error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.completed {
        return ErrSessionClosed
    }
    if s.checking {
        return ErrCheckInFlight
    }
    s.checking = true
    s.status = StatusChecking
    s.lastError = ""
    s.lastTouched = time.Now().UTC()
    return nil
}

// markAvailable records a positive availability answer before the hold
// half of check-and-hold runs.
func (s *Session) markAvailable() {
    s.mu.Lock()
    s.status = StatusAvailable
    s.mu.Unlock()
}

// endCheckUnavailable finishes a check with no usable inventory or a
// denied hold.
func (s *Session) endCheckUnavailable(msg string) {
    s.mu.Lock()
    s.checking = false
    s.status = StatusUnavailable
    s.lastError = msg
    s.mu.Unlock()
}

// endCheckFailed aborts a check before any collaborator was asked, e.g.
// when the date range is not selectable yet.
func (s *Session) endCheckFailed(msg string) {
    s.mu.Lock()
    s.checking = false
    s.status = StatusNone
    s.lastError = msg
    s.mu.Unlock()
}

// adoptHold stores a newly granted hold and arms its countdown.  A new
// hold supersedes any prior one: only the latest id and expiry pair is
// retained and the old timer is cancelled before the new one starts.
func (s *Session) adoptHold(holdID int64, expiresAt time.Time) {
    s.mu.Lock()
    old := s.timer
    id := holdID
    exp := expiresAt.UTC()
    s.holdID = &id
    s.expiresAt = &exp
    s.status = StatusHeld
    s.checking = false
    s.lastError = ""
    s.timer = startHoldTimer(exp, s.tickInterval, func() { s.expireHold(exp) })
    s.mu.Unlock()
    if old != nil {
        old.Stop()
    }
}

// expireHold is invoked by the countdown when the hold's lifetime runs
// out.  It clears the local hold reference and asks the guest to check
// availability again.  An in-flight payment is not cancelled; the server
// side is the authority on hold validity.
//
// The caller passes the expiry it was armed for: Stop cannot retract a
// tick a superseded timer has already received, so a stale callback can
// arrive after a new hold was adopted.  When the session's expiry no
// longer matches, the hold it was armed for is gone and the callback is
// a no-op.
func (s *Session) expireHold(armedFor time.Time) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.completed {
        return
    }
    if s.expiresAt == nil || !s.expiresAt.Equal(armedFor) {
        return
    }
    s.holdID = nil
    s.expiresAt = nil
    s.timer = nil
    s.status = StatusNone
    s.lastError = msgHoldExpired
}

// holdRef returns the live hold id, or nil when no unexpired hold is
// attached.
func (s *Session) holdRef() *int64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.status != StatusHeld || s.holdID == nil {
        return nil
    }
    id := *s.holdID
    return &id
}

// beginSubmit marks a submission as in flight.
func (s *Session) beginSubmit() error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.completed {
        return ErrSessionClosed
    }
    if s.submitting {
        return ErrSubmitInFlight
    }
    s.submitting = true
    s.lastError = ""
    s.lastTouched = time.Now().UTC()
    return nil
}

// endSubmit finishes a failed submission; the form stays populated for a
// retry.
func (s *Session) endSubmit(msg string) {
    s.mu.Lock()
    s.submitting = false
    s.lastError = msg
    s.mu.Unlock()
}

// complete marks the session as successfully handed off to the payment
// provider.  The hold is considered consumed, so the countdown stops
// without clearing the hold reference.
func (s *Session) complete() {
    s.mu.Lock()
    t := s.timer
    s.timer = nil
    s.submitting = false
    s.completed = true
    s.mu.Unlock()
    if t != nil {
        t.Stop()
    }
}

// idleSince reports the last time the session was touched.
func (s *Session) idleSince() time.Time {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.lastTouched
}
