package booking

import (
    "context"
    "log"
    "sync"
    "time"
)

// Store keeps live booking sessions in memory, keyed by session id.
// One entry exists per open form; entries are dropped explicitly after
// a successful handoff or by the janitor once they sit idle past the
// configured TTL.
type Store struct {
    mu       sync.RWMutex
    sessions map[string]*Session
    idleTTL  time.Duration
}

// NewStore creates a session store.  idleTTL bounds how long an
// untouched session survives; non-positive values fall back to two
// hours.
func NewStore(idleTTL time.Duration) *Store {
    if idleTTL <= 0 {
        idleTTL = 2 * time.Hour
    }
    return &Store{
        sessions: make(map[string]*Session),
        idleTTL:  idleTTL,
    }
}

// Add registers a session under its id.
func (st *Store) Add(s *Session) {
    st.mu.Lock()
    st.sessions[s.ID] = s
    st.mu.Unlock()
}

// Get returns the session with the given id, when present.
func (st *Store) Get(id string) (*Session, bool) {
    st.mu.RLock()
    s, ok := st.sessions[id]
    st.mu.RUnlock()
    return s, ok
}

// Remove drops a session and stops its countdown.  Removing an unknown
// id is a no-op.
func (st *Store) Remove(id string) {
    st.mu.Lock()
    s, ok := st.sessions[id]
    delete(st.sessions, id)
    st.mu.Unlock()
    if ok {
        s.Close()
    }
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
    st.mu.RLock()
    defer st.mu.RUnlock()
    return len(st.sessions)
}

// Janitor sweeps idle sessions on the given interval until the context
// is cancelled.  Abandoned remote holds are not released here; the
// inventory service expires them on its own schedule.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
    if interval <= 0 {
        interval = time.Minute
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if n := st.sweep(time.Now().UTC()); n > 0 {
                log.Printf("booking: janitor dropped %d idle session(s)", n)
            }
        }
    }
}

// sweep removes every session idle since before now-idleTTL and returns
// how many were dropped.
func (st *Store) sweep(now time.Time) int {
    cutoff := now.Add(-st.idleTTL)
    var stale []*Session
    st.mu.Lock()
    for id, s := range st.sessions {
        if s.idleSince().Before(cutoff) {
            delete(st.sessions, id)
            stale = append(stale, s)
        }
    }
    st.mu.Unlock()
    for _, s := range stale {
        s.Close()
    }
    return len(stale)
}
