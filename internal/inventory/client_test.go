package inventory

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/voyago/hotel-booking/internal/booking"
)

func day(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckAvailability_WireFormat(t *testing.T) {
    var got map[string]any
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, http.MethodPost, r.Method)
        assert.Equal(t, "/api/bookings/check-availability", r.URL.Path)
        assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        json.NewEncoder(w).Encode(map[string]any{"available": true})
    }))
    defer srv.Close()

    c := New(srv.URL)
    res, err := c.CheckAvailability(context.Background(), booking.AvailabilityRequest{
        RoomTypeID:    7,
        HotelID:       3,
        StartDate:     day(2025, 6, 1),
        EndDate:       day(2025, 6, 4),
        RequiredRooms: 2,
    })

    require.NoError(t, err)
    assert.True(t, res.Available)
    assert.Equal(t, "hotel", got["type"])
    assert.Equal(t, float64(7), got["room_type_id"])
    assert.Equal(t, float64(3), got["service_id"])
    assert.Equal(t, "2025-06-01", got["start_date"])
    assert.Equal(t, "2025-06-04", got["end_date"])
    assert.Equal(t, float64(2), got["required_rooms"])
}

func TestCheckAvailability_UnavailableWithMessage(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        json.NewEncoder(w).Encode(map[string]any{
            "available": false,
            "message":   "No rooms left for these dates",
        })
    }))
    defer srv.Close()

    res, err := New(srv.URL).CheckAvailability(context.Background(), booking.AvailabilityRequest{})
    require.NoError(t, err)
    assert.False(t, res.Available)
    assert.Equal(t, "No rooms left for these dates", res.Message)
}

func TestCheckAvailability_ServerErrorIsError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "boom", http.StatusInternalServerError)
    }))
    defer srv.Close()

    _, err := New(srv.URL).CheckAvailability(context.Background(), booking.AvailabilityRequest{})
    require.Error(t, err)
    assert.Contains(t, err.Error(), "status 500")
}

func TestCreateHold_WireFormat(t *testing.T) {
    var got map[string]any
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/api/bookings/create-hold", r.URL.Path)
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        json.NewEncoder(w).Encode(map[string]any{
            "success":    true,
            "hold_id":    101,
            "expires_at": "2025-06-01T10:15:00Z",
        })
    }))
    defer srv.Close()

    uid := uint64(42)
    res, err := New(srv.URL).CreateHold(context.Background(), booking.HoldRequest{
        SessionID:        "hotel_session_1_ab",
        UserID:           &uid,
        RoomTypeID:       7,
        HotelID:          3,
        HoldDate:         day(2025, 6, 1),
        Quantity:         2,
        HoldPriceCents:   18000,
        ExpiresInMinutes: 15,
    })

    require.NoError(t, err)
    assert.True(t, res.Success)
    assert.Equal(t, int64(101), res.HoldID)
    assert.Equal(t, time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC), res.ExpiresAt)

    assert.Equal(t, "hotel_session_1_ab", got["session_id"])
    assert.Equal(t, float64(42), got["user_id"])
    assert.Equal(t, "hotel_room", got["hold_type"])
    assert.Equal(t, "2025-06-01", got["hold_date"])
    assert.Equal(t, float64(2), got["quantity"])
    assert.Equal(t, float64(18000), got["hold_price"])
    assert.Equal(t, float64(15), got["expires_in_minutes"])
}

func TestCreateHold_AnonymousSendsNullUser(t *testing.T) {
    var got map[string]any
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        json.NewEncoder(w).Encode(map[string]any{"success": true, "hold_id": 5})
    }))
    defer srv.Close()

    res, err := New(srv.URL).CreateHold(context.Background(), booking.HoldRequest{SessionID: "s"})
    require.NoError(t, err)
    assert.True(t, res.Success)

    v, present := got["user_id"]
    assert.True(t, present)
    assert.Nil(t, v)
}

func TestCreateHold_DeniedIsNotAnError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        json.NewEncoder(w).Encode(map[string]any{
            "success": false,
            "message": "Rooms were claimed by another guest",
        })
    }))
    defer srv.Close()

    res, err := New(srv.URL).CreateHold(context.Background(), booking.HoldRequest{})
    require.NoError(t, err)
    assert.False(t, res.Success)
    assert.Equal(t, "Rooms were claimed by another guest", res.Message)
}

func TestCreateHold_MissingExpiryLeavesZero(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        json.NewEncoder(w).Encode(map[string]any{"success": true, "hold_id": 9})
    }))
    defer srv.Close()

    res, err := New(srv.URL).CreateHold(context.Background(), booking.HoldRequest{})
    require.NoError(t, err)
    assert.True(t, res.ExpiresAt.IsZero())
}
