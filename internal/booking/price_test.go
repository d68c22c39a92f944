package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
    assert.Equal(t, 3, Nights(date(2025, 6, 1), date(2025, 6, 4)))
    assert.Equal(t, 1, Nights(date(2025, 6, 1), date(2025, 6, 2)))
    assert.Equal(t, 0, Nights(date(2025, 6, 4), date(2025, 6, 4)))
    assert.Equal(t, 0, Nights(date(2025, 6, 4), date(2025, 6, 1)))
    assert.Equal(t, 0, Nights(time.Time{}, date(2025, 6, 1)))
}

func TestTotalCents(t *testing.T) {
    assert.Equal(t, uint64(18000), TotalCents(3000, 2, 3))
    assert.Equal(t, uint64(0), TotalCents(3000, 2, 0))
    assert.Equal(t, uint64(0), TotalCents(3000, 0, 3))
}

func TestQuoteFor(t *testing.T) {
    i := Intent{
        CheckIn:  date(2025, 6, 1),
        CheckOut: date(2025, 6, 4),
        Rooms:    2,
    }
    q := QuoteFor(i, 3000)
    assert.Equal(t, 3, q.Nights)
    assert.Equal(t, uint64(18000), q.TotalCents)

    // Not yet computable: zero nights and zero amount, no error.
    i.CheckOut = i.CheckIn
    q = QuoteFor(i, 3000)
    assert.Equal(t, 0, q.Nights)
    assert.Equal(t, uint64(0), q.TotalCents)
}
