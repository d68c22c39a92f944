package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validIntent returns an intent that passes every rule against the
// fixed "today" used throughout these tests.
func validIntent() Intent {
    return Intent{
        CheckIn:    date(2025, 6, 1),
        CheckOut:   date(2025, 6, 4),
        Rooms:      2,
        Guests:     3,
        GuestName:  "Asha Verma",
        GuestEmail: "asha@example.com",
        GuestPhone: "+91-98765-43210",
    }
}

var testToday = date(2025, 5, 20)

func TestValidate_OK(t *testing.T) {
    require.NoError(t, validIntent().Validate(testToday, 2))
}

func TestValidate_SameDayCheckInRejected(t *testing.T) {
    i := validIntent()
    i.CheckIn = testToday
    i.CheckOut = testToday.AddDate(0, 0, 2)

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "past")
}

func TestValidate_TomorrowCheckInAccepted(t *testing.T) {
    i := validIntent()
    i.CheckIn = testToday.AddDate(0, 0, 1)
    i.CheckOut = testToday.AddDate(0, 0, 3)

    require.NoError(t, i.Validate(testToday, 2))
}

func TestValidate_CheckOutNotAfterCheckIn(t *testing.T) {
    i := validIntent()
    i.CheckOut = i.CheckIn

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "after check-in")
}

func TestValidate_MissingDates(t *testing.T) {
    i := validIntent()
    i.CheckIn = time.Time{}
    i.CheckOut = time.Time{}

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "check-in and check-out")
}

func TestValidate_BadEmail(t *testing.T) {
    i := validIntent()
    i.GuestEmail = "not-an-email"

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "valid email")
}

func TestValidate_TooManyGuests(t *testing.T) {
    i := validIntent()
    i.Rooms = 1
    i.Guests = 3 // capacity 2 -> max 2 for one room

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "Maximum 2 guests")
}

func TestValidate_JoinsAllFailures(t *testing.T) {
    i := Intent{} // everything missing

    err := i.Validate(testToday, 2)
    require.Error(t, err)
    msg := err.Error()
    assert.Contains(t, msg, "check-in and check-out")
    assert.Contains(t, msg, "at least one room")
    assert.Contains(t, msg, "Guest name")
    assert.Contains(t, msg, "Email address")
    assert.Contains(t, msg, "Phone number")

    _, ok := AsInvalidIntent(err)
    assert.True(t, ok)
}

func TestMaxGuests_CapacityClamped(t *testing.T) {
    assert.Equal(t, 2, MaxGuests(2, 0))   // floor: zero capacity counts as 1
    assert.Equal(t, 4, MaxGuests(2, 2))
    assert.Equal(t, 20, MaxGuests(2, 50)) // cap: 10 per room
}

func TestClampGuests(t *testing.T) {
    // 1 -> 2 rooms with capacity 2 and 2 guests: still within max 4.
    assert.Equal(t, 2, ClampGuests(2, 2, 2))
    // 2 -> 1 room with 4 guests: clamped down to 2.
    assert.Equal(t, 2, ClampGuests(1, 2, 4))
    // Never corrected upward.
    assert.Equal(t, 1, ClampGuests(3, 2, 1))
}
