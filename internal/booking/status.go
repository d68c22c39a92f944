// Package booking implements the room booking-hold workflow: intent
// validation, price calculation, time-boxed holds with a local countdown,
// and the handoff to the external payment collaborator.  The package owns
// no inventory itself; it only tracks references to holds granted by the
// remote inventory service.
package booking

// Status is the derived availability state of a booking session.
type Status string

// Status transitions: StatusNone -> StatusChecking on check initiated,
// then StatusAvailable (inventory confirmed, hold not yet acquired),
// StatusHeld (check-and-hold succeeded) or StatusUnavailable (no
// inventory, or hold denied).  StatusHeld falls back to StatusNone when
// the hold countdown reaches zero.
const (
    StatusNone        Status = ""
    StatusChecking    Status = "checking"
    StatusAvailable   Status = "available"
    StatusUnavailable Status = "unavailable"
    StatusHeld        Status = "held"
)
