package booking

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

var testRoom = RoomTypeRef{ID: 7, HotelID: 3, Capacity: 2, BasePriceCents: 3000}

func TestNewSessionID_Format(t *testing.T) {
    id := NewSessionID()
    assert.True(t, strings.HasPrefix(id, "hotel_session_"))

    parts := strings.Split(id, "_")
    require.Len(t, parts, 4)
    assert.NotEmpty(t, parts[2]) // timestamp
    assert.NotEmpty(t, parts[3]) // random suffix

    assert.NotEqual(t, id, NewSessionID())
}

func TestSession_IDConstantForLifetime(t *testing.T) {
    s := NewSession(testRoom, nil)
    id := s.ID
    s.ApplyIntent(IntentPatch{GuestName: strPtr("A")})
    s.Touch()
    assert.Equal(t, id, s.ID)
}

func TestApplyIntent_RoomChangeClampsGuests(t *testing.T) {
    s := NewSession(testRoom, nil)
    two := 2
    four := 4
    s.ApplyIntent(IntentPatch{Rooms: &two, Guests: &four})
    assert.Equal(t, 4, s.Intent().Guests) // within max for 2 rooms x cap 2

    one := 1
    got := s.ApplyIntent(IntentPatch{Rooms: &one})
    assert.Equal(t, 2, got.Guests) // clamped down for the smaller room count
}

func TestApplyIntent_EditKeepsHold(t *testing.T) {
    s := NewSession(testRoom, nil)
    s.tickInterval = 10 * time.Millisecond
    s.adoptHold(42, time.Now().UTC().Add(time.Minute))

    s.ApplyIntent(IntentPatch{GuestName: strPtr("B")})

    snap := s.Snapshot()
    assert.Equal(t, StatusHeld, snap.Status)
    require.NotNil(t, snap.HoldID)
    assert.Equal(t, int64(42), *snap.HoldID)
    s.Close()
}

func TestHoldExpiry_ClearsStateAndReportsError(t *testing.T) {
    s := NewSession(testRoom, nil)
    s.tickInterval = 10 * time.Millisecond
    s.adoptHold(42, time.Now().UTC().Add(40*time.Millisecond))

    require.Eventually(t, func() bool {
        return s.Snapshot().Status == StatusNone
    }, time.Second, 10*time.Millisecond)

    snap := s.Snapshot()
    assert.Nil(t, snap.HoldID)
    assert.Nil(t, snap.ExpiresAt)
    assert.Contains(t, snap.LastError, "hold has expired")
}

func TestAdoptHold_SupersedesPrevious(t *testing.T) {
    s := NewSession(testRoom, nil)
    s.tickInterval = 10 * time.Millisecond
    s.adoptHold(1, time.Now().UTC().Add(30*time.Millisecond))
    // The replacement's expiry is far out; if the first timer survived
    // it would wrongly clear this hold.
    s.adoptHold(2, time.Now().UTC().Add(time.Minute))

    time.Sleep(100 * time.Millisecond)

    snap := s.Snapshot()
    assert.Equal(t, StatusHeld, snap.Status)
    require.NotNil(t, snap.HoldID)
    assert.Equal(t, int64(2), *snap.HoldID)
    s.Close()
}

func TestAdoptHold_StaleExpiryCallbackIsIgnored(t *testing.T) {
    s := NewSession(testRoom, nil)
    s.tickInterval = time.Hour // keep the timers from firing on their own
    first := time.Now().UTC().Add(time.Minute)
    s.adoptHold(1, first)
    s.adoptHold(2, time.Now().UTC().Add(15*time.Minute))

    // Stop cannot retract a tick the superseded timer already received,
    // so its callback can land after the replacement hold is installed.
    // It must leave the new hold untouched.
    s.expireHold(first)

    snap := s.Snapshot()
    assert.Equal(t, StatusHeld, snap.Status)
    require.NotNil(t, snap.HoldID)
    assert.Equal(t, int64(2), *snap.HoldID)
    assert.Empty(t, snap.LastError)
    s.Close()
}

func TestFormatRemaining(t *testing.T) {
    assert.Equal(t, "14:59", FormatRemaining(14*time.Minute+59*time.Second))
    assert.Equal(t, "0:05", FormatRemaining(5*time.Second))
    assert.Equal(t, "0:00", FormatRemaining(0))
    assert.Equal(t, "0:00", FormatRemaining(-time.Second))
}

func strPtr(s string) *string { return &s }
