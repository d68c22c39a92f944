package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestStore_AddGetRemove(t *testing.T) {
    st := NewStore(time.Hour)
    s := NewSession(testRoom, nil)
    st.Add(s)

    got, ok := st.Get(s.ID)
    require.True(t, ok)
    assert.Same(t, s, got)

    st.Remove(s.ID)
    _, ok = st.Get(s.ID)
    assert.False(t, ok)
    assert.Zero(t, st.Len())

    st.Remove("unknown") // no-op
}

func TestStore_SweepDropsIdleSessions(t *testing.T) {
    st := NewStore(time.Minute)
    fresh := NewSession(testRoom, nil)
    stale := NewSession(testRoom, nil)
    st.Add(fresh)
    st.Add(stale)

    stale.mu.Lock()
    stale.lastTouched = time.Now().UTC().Add(-2 * time.Minute)
    stale.mu.Unlock()

    dropped := st.sweep(time.Now().UTC())

    assert.Equal(t, 1, dropped)
    _, ok := st.Get(stale.ID)
    assert.False(t, ok)
    _, ok = st.Get(fresh.ID)
    assert.True(t, ok)
}
