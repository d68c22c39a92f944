package booking

import (
    "math"
    "time"
)

// Nights returns the number of nights between check-in and check-out,
// rounding partial days up.  Zero or negative spans yield 0, which the
// workflow treats as "not yet computable" rather than an error.
func Nights(checkIn, checkOut time.Time) int {
    if checkIn.IsZero() || checkOut.IsZero() {
        return 0
    }
    n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
    if n < 0 {
        return 0
    }
    return n
}

// TotalCents computes base price x rooms x nights.  Any non-positive
// factor makes the stay not yet priceable and yields 0.
func TotalCents(basePriceCents uint32, rooms, nights int) uint64 {
    if rooms < 1 || nights < 1 {
        return 0
    }
    return uint64(basePriceCents) * uint64(rooms) * uint64(nights)
}

// Quote is the derived price of a stay.  It is recomputed from the
// current intent on every read and never cached across date changes.
type Quote struct {
    Nights     int
    TotalCents uint64
}

// QuoteFor prices an intent against a nightly rate.
func QuoteFor(i Intent, basePriceCents uint32) Quote {
    nights := Nights(DateOnly(i.CheckIn), DateOnly(i.CheckOut))
    return Quote{
        Nights:     nights,
        TotalCents: TotalCents(basePriceCents, i.Rooms, nights),
    }
}
