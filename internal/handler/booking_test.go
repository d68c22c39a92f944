package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/voyago/hotel-booking/internal/booking"
)

// stubInventory returns canned collaborator answers.
type stubInventory struct {
    avail    booking.AvailabilityResult
    availErr error
    hold     booking.HoldResult
    holdErr  error
}

func (s *stubInventory) CheckAvailability(_ context.Context, _ booking.AvailabilityRequest) (booking.AvailabilityResult, error) {
    return s.avail, s.availErr
}

func (s *stubInventory) CreateHold(_ context.Context, _ booking.HoldRequest) (booking.HoldResult, error) {
    return s.hold, s.holdErr
}

type stubPayments struct {
    res booking.PaymentResult
    err error
}

func (s *stubPayments) InitiateHotelPayment(_ context.Context, _ booking.Submission) (booking.PaymentResult, error) {
    return s.res, s.err
}

var handlerTestRoom = booking.RoomTypeRef{ID: 7, HotelID: 3, Capacity: 2, BasePriceCents: 3000}

// newSessionHandler builds a BookingHandler over an in-memory store and
// stubbed collaborators. The repositories stay nil: these tests cover the
// endpoints that never touch the database.
func newSessionHandler(inv booking.InventoryClient, pay booking.PaymentClient) *BookingHandler {
    flow := booking.NewWorkflow(inv, pay, 15)
    flow.Now = func() time.Time { return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC) }
    return &BookingHandler{
        Sessions: booking.NewStore(2 * time.Hour),
        Flow:     flow,
    }
}

func grantedHold() *stubInventory {
    return &stubInventory{
        avail: booking.AvailabilityResult{Available: true},
        hold: booking.HoldResult{
            Success:   true,
            HoldID:    101,
            ExpiresAt: time.Now().UTC().Add(15 * time.Minute),
        },
    }
}

// addSession registers a session with sensible stay dates already filled in.
func addSession(h *BookingHandler, userID *uint64) *booking.Session {
    s := booking.NewSession(handlerTestRoom, userID)
    checkIn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
    checkOut := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
    rooms, guests := 2, 3
    s.ApplyIntent(booking.IntentPatch{
        CheckIn:  &checkIn,
        CheckOut: &checkOut,
        Rooms:    &rooms,
        Guests:   &guests,
    })
    h.Sessions.Add(s)
    return s
}

// invoke runs a handler method against a synthetic request for the given
// session id. uid simulates what OptionalJWT would have set.
func invoke(t *testing.T, fn echo.HandlerFunc, method, sid, body string, uid *uint64) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(method, "/", strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := echo.New().NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues(sid)
    if uid != nil {
        c.Set("user_id", *uid)
    }
    require.NoError(t, fn(c))
    return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var m map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
    return m
}

func TestGetSession_NotFound(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    rec := invoke(t, h.GetSession, http.MethodGet, "hotel_session_missing", "", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSession_ReturnsState(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := addSession(h, nil)

    rec := invoke(t, h.GetSession, http.MethodGet, s.ID, "", nil)
    require.Equal(t, http.StatusOK, rec.Code)

    body := decodeBody(t, rec)
    assert.Equal(t, s.ID, body["session_id"])
    assert.Equal(t, float64(3), body["hotel_id"])
    assert.Equal(t, float64(7), body["room_type_id"])
    assert.Equal(t, "", body["status"])
    assert.Nil(t, body["hold_id"])
    // 2 rooms x 3 nights x 30.00
    assert.Equal(t, float64(18000), body["total_amount_cents"])
    assert.Equal(t, float64(3), body["nights"])
}

func TestUpdateIntent_MergesFields(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := addSession(h, nil)

    payload := `{"guest_name":"Ada Lovelace","guest_email":"ada@example.com","rooms":1}`
    rec := invoke(t, h.UpdateIntent, http.MethodPut, s.ID, payload, nil)
    require.Equal(t, http.StatusOK, rec.Code)

    body := decodeBody(t, rec)
    intent := body["intent"].(map[string]any)
    assert.Equal(t, "Ada Lovelace", intent["guest_name"])
    assert.Equal(t, "ada@example.com", intent["guest_email"])
    assert.Equal(t, float64(1), intent["rooms"])
    // untouched fields survive the partial update
    assert.Equal(t, "2025-06-01", intent["check_in"])
    // quote follows the room count down
    assert.Equal(t, float64(9000), body["total_amount_cents"])
}

func TestUpdateIntent_RejectsBadDate(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := addSession(h, nil)

    rec := invoke(t, h.UpdateIntent, http.MethodPut, s.ID, `{"check_in":"June 1st"}`, nil)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckAvailability_AcquiresHold(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := addSession(h, nil)

    rec := invoke(t, h.CheckAvailability, http.MethodPost, s.ID, "", nil)
    require.Equal(t, http.StatusOK, rec.Code)

    body := decodeBody(t, rec)
    assert.Equal(t, "held", body["status"])
    assert.Equal(t, float64(101), body["hold_id"])
    assert.NotEmpty(t, body["time_remaining"])
    assert.NotEmpty(t, body["expires_at"])
}

func TestCheckAvailability_Unavailable(t *testing.T) {
    inv := &stubInventory{avail: booking.AvailabilityResult{Available: false, Message: "sold out"}}
    h := newSessionHandler(inv, &stubPayments{})
    s := addSession(h, nil)

    rec := invoke(t, h.CheckAvailability, http.MethodPost, s.ID, "", nil)
    require.Equal(t, http.StatusOK, rec.Code)

    body := decodeBody(t, rec)
    assert.Equal(t, "unavailable", body["status"])
    assert.Contains(t, body["error"], "sold out")
    assert.Nil(t, body["hold_id"])
}

func TestCheckAvailability_RequiresDates(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := booking.NewSession(handlerTestRoom, nil)
    h.Sessions.Add(s)

    rec := invoke(t, h.CheckAvailability, http.MethodPost, s.ID, "", nil)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession_RemovesIt(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    s := addSession(h, nil)

    rec := invoke(t, h.DeleteSession, http.MethodDelete, s.ID, "", nil)
    assert.Equal(t, http.StatusNoContent, rec.Code)

    rec = invoke(t, h.GetSession, http.MethodGet, s.ID, "", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserBoundSession_RejectsAnonymous(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    owner := uint64(42)
    s := addSession(h, &owner)

    rec := invoke(t, h.GetSession, http.MethodGet, s.ID, "", nil)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserBoundSession_RejectsOtherUser(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    owner, intruder := uint64(42), uint64(99)
    s := addSession(h, &owner)

    rec := invoke(t, h.GetSession, http.MethodGet, s.ID, "", &intruder)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserBoundSession_AllowsOwner(t *testing.T) {
    h := newSessionHandler(grantedHold(), &stubPayments{})
    owner := uint64(42)
    s := addSession(h, &owner)

    rec := invoke(t, h.GetSession, http.MethodGet, s.ID, "", &owner)
    assert.Equal(t, http.StatusOK, rec.Code)
}
