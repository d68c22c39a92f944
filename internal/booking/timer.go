package booking

import (
    "sync"
    "time"
)

// holdTimer drives the expiry countdown of a single hold.  One timer
// runs per live hold; when a session acquires a new hold the previous
// timer is stopped before the replacement starts, so duplicate tickers
// can never coexist.
type holdTimer struct {
    stop chan struct{}
    once sync.Once
}

// startHoldTimer ticks at the given interval until expiresAt passes and
// then invokes onExpire exactly once.  Stop cancels the countdown
// without firing.  The remaining time is not pushed through the timer;
// readers compute it on demand from the session's expiry timestamp.
func startHoldTimer(expiresAt time.Time, interval time.Duration, onExpire func()) *holdTimer {
    if interval <= 0 {
        interval = time.Second
    }
    t := &holdTimer{stop: make(chan struct{})}
    go func() {
        ticker := time.NewTicker(interval)
        defer ticker.Stop()
        for {
            select {
            case <-t.stop:
                return
            case now := <-ticker.C:
                if !now.Before(expiresAt) {
                    onExpire()
                    return
                }
            }
        }
    }()
    return t
}

// Stop cancels the countdown.  Safe to call more than once and safe to
// call concurrently with the timer firing.
func (t *holdTimer) Stop() {
    t.once.Do(func() { close(t.stop) })
}
