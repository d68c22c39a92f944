package booking

import (
    "errors"
    "fmt"
    "regexp"
    "strings"
    "time"
)

// Limits applied to every booking intent regardless of room type.
const (
    MaxRoomsPerBooking = 5  // rooms per booking
    MaxGuestsPerRoom   = 10 // safety cap on per-room capacity
)

// emailPattern is the permissive "something@something.tld" check applied
// to the guest email field.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Intent holds the guest-supplied stay parameters of an in-progress
// booking.  Dates are date-only values at UTC midnight; callers should
// normalize with DateOnly before storing them here.
type Intent struct {
    CheckIn         time.Time // zero when not yet selected
    CheckOut        time.Time // zero when not yet selected
    Rooms           int
    Guests          int
    GuestName       string
    GuestEmail      string
    GuestPhone      string
    SpecialRequests string
}

// DateOnly strips the time-of-day component, keeping the calendar date
// at UTC midnight.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaxGuests returns the guest ceiling for a room count and per-room
// capacity.  Capacity is floored at 1 and capped at MaxGuestsPerRoom.
func MaxGuests(rooms int, capacity uint32) int {
    perRoom := int(capacity)
    if perRoom < 1 {
        perRoom = 1
    }
    if perRoom > MaxGuestsPerRoom {
        perRoom = MaxGuestsPerRoom
    }
    return rooms * perRoom
}

// ClampGuests recomputes the guest count after a room-count change.  The
// count is only ever corrected downward; a guest count within the new
// ceiling is left untouched.  This is an automatic correction applied by
// the room-count setter, not a validation error.
func ClampGuests(rooms int, capacity uint32, current int) int {
    if max := MaxGuests(rooms, capacity); current > max {
        return max
    }
    return current
}

// Validate checks every form rule against the supplied reference date
// and per-room capacity.  All rules are evaluated; failures are joined
// into a single comma-separated error.  A nil return means the intent
// is ready for submission.
func (i Intent) Validate(today time.Time, capacity uint32) error {
    var problems []string

    checkIn := DateOnly(i.CheckIn)
    checkOut := DateOnly(i.CheckOut)
    tomorrow := DateOnly(today).AddDate(0, 0, 1)

    if i.CheckIn.IsZero() || i.CheckOut.IsZero() {
        problems = append(problems, "Please select check-in and check-out dates")
    } else {
        // Same-day check-in is disallowed; the earliest selectable
        // check-in is the day after the current date.
        if checkIn.Before(tomorrow) {
            problems = append(problems, "Check-in date cannot be in the past")
        }
        if !checkOut.After(checkIn) {
            problems = append(problems, "Check-out date must be after check-in date")
        }
    }

    if i.Rooms < 1 {
        problems = append(problems, "Please select at least one room")
    } else if i.Rooms > MaxRoomsPerBooking {
        problems = append(problems, fmt.Sprintf("A maximum of %d rooms can be booked at once", MaxRoomsPerBooking))
    }

    if i.Guests < 1 {
        problems = append(problems, "Please select at least one guest")
    } else if i.Rooms >= 1 {
        if max := MaxGuests(i.Rooms, capacity); i.Guests > max {
            problems = append(problems, fmt.Sprintf("Maximum %d guests allowed for %d room(s)", max, i.Rooms))
        }
    }

    if strings.TrimSpace(i.GuestName) == "" {
        problems = append(problems, "Guest name is required")
    }
    if strings.TrimSpace(i.GuestEmail) == "" {
        problems = append(problems, "Email address is required")
    } else if !emailPattern.MatchString(i.GuestEmail) {
        problems = append(problems, "Please enter a valid email address")
    }
    if strings.TrimSpace(i.GuestPhone) == "" {
        problems = append(problems, "Phone number is required")
    }

    if len(problems) > 0 {
        return &InvalidIntentError{Reason: strings.Join(problems, ", ")}
    }
    return nil
}

// datesSelectable reports whether the intent carries enough of a date
// range to ask the inventory collaborator about it.  Guest contact rules
// are deliberately not checked here: availability can be probed before
// the form is complete.
func (i Intent) datesSelectable() error {
    if i.CheckIn.IsZero() || i.CheckOut.IsZero() {
        return &InvalidIntentError{Reason: "Please select check-in and check-out dates"}
    }
    if !DateOnly(i.CheckOut).After(DateOnly(i.CheckIn)) {
        return &InvalidIntentError{Reason: "Check-out date must be after check-in date"}
    }
    if i.Rooms < 1 {
        return &InvalidIntentError{Reason: "Please select at least one room"}
    }
    return nil
}

// InvalidIntentError carries the joined validation message for a booking
// intent that failed its client-side rules.  It is never sent to the
// network; the form stays editable.
type InvalidIntentError struct {
    Reason string
}

func (e *InvalidIntentError) Error() string { return e.Reason }

// AsInvalidIntent unwraps err into an *InvalidIntentError when possible.
func AsInvalidIntent(err error) (*InvalidIntentError, bool) {
    var ie *InvalidIntentError
    if errors.As(err, &ie) {
        return ie, true
    }
    return nil, false
}
