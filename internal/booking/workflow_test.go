package booking

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// fakeInventory scripts the inventory collaborator's answers and records
// what it was asked.
type fakeInventory struct {
    avail    AvailabilityResult
    availErr error
    hold     HoldResult
    holdErr  error

    availCalls int
    holdCalls  int
    lastAvail  AvailabilityRequest
    lastHold   HoldRequest
}

func (f *fakeInventory) CheckAvailability(_ context.Context, req AvailabilityRequest) (AvailabilityResult, error) {
    f.availCalls++
    f.lastAvail = req
    return f.avail, f.availErr
}

func (f *fakeInventory) CreateHold(_ context.Context, req HoldRequest) (HoldResult, error) {
    f.holdCalls++
    f.lastHold = req
    return f.hold, f.holdErr
}

// fakePayments scripts the payment collaborator.
type fakePayments struct {
    result PaymentResult
    err    error

    calls int
    last  Submission
}

func (f *fakePayments) InitiateHotelPayment(_ context.Context, sub Submission) (PaymentResult, error) {
    f.calls++
    f.last = sub
    return f.result, f.err
}

func newTestWorkflow(inv *fakeInventory, pay *fakePayments) *Workflow {
    w := NewWorkflow(inv, pay, 15)
    w.Now = func() time.Time { return testToday }
    return w
}

func newHeldFakes() (*fakeInventory, *fakePayments) {
    inv := &fakeInventory{
        avail: AvailabilityResult{Available: true},
        hold:  HoldResult{Success: true, HoldID: 101, ExpiresAt: time.Now().UTC().Add(15 * time.Minute)},
    }
    pay := &fakePayments{result: PaymentResult{Success: true, RedirectURL: "https://pay.example.com/session/abc"}}
    return inv, pay
}

func newTestSession() *Session {
    s := NewSession(testRoom, nil)
    s.tickInterval = 10 * time.Millisecond
    s.ApplyIntent(intentPatchFrom(validIntent()))
    return s
}

func intentPatchFrom(i Intent) IntentPatch {
    return IntentPatch{
        CheckIn:         &i.CheckIn,
        CheckOut:        &i.CheckOut,
        Rooms:           &i.Rooms,
        Guests:          &i.Guests,
        GuestName:       &i.GuestName,
        GuestEmail:      &i.GuestEmail,
        GuestPhone:      &i.GuestPhone,
        SpecialRequests: &i.SpecialRequests,
    }
}

func TestCheckAndHold_Held(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := newTestSession()
    defer s.Close()

    require.NoError(t, w.CheckAndHold(context.Background(), s))

    snap := s.Snapshot()
    assert.Equal(t, StatusHeld, snap.Status)
    require.NotNil(t, snap.HoldID)
    assert.Equal(t, int64(101), *snap.HoldID)
    require.NotNil(t, snap.ExpiresAt)
    assert.InDelta(t, 15*time.Minute, snap.TimeRemaining, float64(30*time.Second))

    // Availability and hold were asked for the intent's range.
    assert.Equal(t, 1, inv.availCalls)
    assert.Equal(t, date(2025, 6, 1), inv.lastAvail.StartDate)
    assert.Equal(t, date(2025, 6, 4), inv.lastAvail.EndDate)
    assert.Equal(t, 2, inv.lastAvail.RequiredRooms)

    assert.Equal(t, 1, inv.holdCalls)
    assert.Equal(t, s.ID, inv.lastHold.SessionID)
    assert.Equal(t, date(2025, 6, 1), inv.lastHold.HoldDate)
    assert.Equal(t, uint64(18000), inv.lastHold.HoldPriceCents)
    assert.Equal(t, 15, inv.lastHold.ExpiresInMinutes)
}

func TestCheckAndHold_Unavailable(t *testing.T) {
    inv, pay := newHeldFakes()
    inv.avail = AvailabilityResult{Available: false, Message: "Only 1 room left for these dates."}
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, w.CheckAndHold(context.Background(), s))

    snap := s.Snapshot()
    assert.Equal(t, StatusUnavailable, snap.Status)
    assert.Contains(t, snap.LastError, "Only 1 room left")
    assert.Contains(t, snap.LastError, "different dates or reduce")
    assert.Zero(t, inv.holdCalls) // no hold attempt without inventory
}

func TestCheckAndHold_HoldDenied(t *testing.T) {
    inv, pay := newHeldFakes()
    inv.hold = HoldResult{Success: false, Message: "Rooms were claimed by another guest."}
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, w.CheckAndHold(context.Background(), s))

    snap := s.Snapshot()
    assert.Equal(t, StatusUnavailable, snap.Status)
    assert.Equal(t, "Rooms were claimed by another guest.", snap.LastError)
}

func TestCheckAndHold_HoldErrorUsesFallbackMessage(t *testing.T) {
    inv, pay := newHeldFakes()
    inv.holdErr = errors.New("dial tcp: connection refused")
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, w.CheckAndHold(context.Background(), s))

    snap := s.Snapshot()
    assert.Equal(t, StatusUnavailable, snap.Status)
    assert.Equal(t, "Failed to secure room hold. Please try again.", snap.LastError)
}

func TestCheckAndHold_AvailabilityErrorUsesCheckMessage(t *testing.T) {
    inv, pay := newHeldFakes()
    inv.availErr = errors.New("dial tcp: connection refused")
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, w.CheckAndHold(context.Background(), s))

    snap := s.Snapshot()
    assert.Equal(t, StatusUnavailable, snap.Status)
    assert.Equal(t, "Could not check availability. Please try again.", snap.LastError)
    assert.Zero(t, inv.holdCalls) // the failure happened before the hold stage
}

func TestCheckAndHold_RequiresDates(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := NewSession(testRoom, nil) // empty intent

    err := w.CheckAndHold(context.Background(), s)
    require.Error(t, err)
    _, ok := AsInvalidIntent(err)
    assert.True(t, ok)
    assert.Zero(t, inv.availCalls)
}

func TestCheckAndHold_OnlyOneInFlight(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, s.beginCheck()) // simulate an in-flight check
    err := w.CheckAndHold(context.Background(), s)
    assert.ErrorIs(t, err, ErrCheckInFlight)
}

func TestSubmit_Success(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    require.NoError(t, w.CheckAndHold(context.Background(), s))
    out, err := w.Submit(context.Background(), s)

    require.NoError(t, err)
    assert.Equal(t, "https://pay.example.com/session/abc", out.RedirectURL)
    assert.Equal(t, 1, pay.calls)

    // The live hold rode along with the submission.
    require.NotNil(t, pay.last.HoldID)
    assert.Equal(t, int64(101), *pay.last.HoldID)
    assert.Equal(t, s.ID, pay.last.SessionID)
    assert.Equal(t, uint64(18000), pay.last.TotalCents)
    assert.Equal(t, 1, inv.holdCalls) // no second hold attempt

    assert.True(t, s.Snapshot().Completed)
}

func TestSubmit_HoldFailureStillReachesPayment(t *testing.T) {
    inv, pay := newHeldFakes()
    inv.holdErr = errors.New("hold service down")
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    out, err := w.Submit(context.Background(), s)

    require.NoError(t, err)
    assert.Equal(t, "https://pay.example.com/session/abc", out.RedirectURL)
    assert.Equal(t, 1, inv.holdCalls) // exactly one best-effort pass
    assert.Equal(t, 1, pay.calls)
    assert.Nil(t, pay.last.HoldID) // proceeded without a hold
}

func TestSubmit_BestEffortHoldAdopted(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    // No prior check: submit makes its own hold pass and uses the result.
    out, err := w.Submit(context.Background(), s)

    require.NoError(t, err)
    assert.NotEmpty(t, out.RedirectURL)
    require.NotNil(t, pay.last.HoldID)
    assert.Equal(t, int64(101), *pay.last.HoldID)
}

func TestSubmit_ValidationStopsBeforeNetwork(t *testing.T) {
    inv, pay := newHeldFakes()
    w := newTestWorkflow(inv, pay)
    s := NewSession(testRoom, nil)
    i := validIntent()
    i.CheckIn = testToday // same-day check-in
    s.ApplyIntent(intentPatchFrom(i))

    _, err := w.Submit(context.Background(), s)

    require.Error(t, err)
    _, ok := AsInvalidIntent(err)
    assert.True(t, ok)
    assert.Contains(t, err.Error(), "past")
    assert.Zero(t, inv.holdCalls)
    assert.Zero(t, pay.calls)
}

func TestSubmit_PaymentDeclined(t *testing.T) {
    inv, pay := newHeldFakes()
    pay.result = PaymentResult{Success: false, Message: "Card gateway unavailable."}
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    _, err := w.Submit(context.Background(), s)

    require.Error(t, err)
    var pe *PaymentError
    require.ErrorAs(t, err, &pe)
    assert.Equal(t, "Card gateway unavailable.", pe.Reason)

    snap := s.Snapshot()
    assert.False(t, snap.Completed)
    assert.Equal(t, "Card gateway unavailable.", snap.LastError)
    s.Close()
}

func TestSubmit_MissingRedirectURLIsFailure(t *testing.T) {
    inv, pay := newHeldFakes()
    pay.result = PaymentResult{Success: true} // no redirect URL
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    _, err := w.Submit(context.Background(), s)

    var pe *PaymentError
    require.ErrorAs(t, err, &pe)
    s.Close()
}

func TestSubmit_SessionIDStableAcrossRetries(t *testing.T) {
    inv, pay := newHeldFakes()
    pay.err = errors.New("gateway timeout")
    w := newTestWorkflow(inv, pay)
    s := newTestSession()

    _, err := w.Submit(context.Background(), s)
    require.Error(t, err)
    first := pay.last.SessionID

    pay.err = nil
    out, err := w.Submit(context.Background(), s)
    require.NoError(t, err)

    assert.Equal(t, first, pay.last.SessionID)
    assert.Equal(t, s.ID, pay.last.SessionID)
    assert.NotEmpty(t, out.RedirectURL)
}
