package repository // repository holds data access logic for domain entities

import (
    "context"      // context is used to manage deadlines and cancellation
    "database/sql" // sql provides DB primitives
    "errors"       // errors package allows sentinel error definitions

    "github.com/voyago/hotel-booking/internal/model"
)

// ErrRoomTypeNotFound is returned when a room type lookup fails.
var ErrRoomTypeNotFound = errors.New("room type not found")

// RoomTypeRepo provides methods to retrieve room types.  It embeds a
// database handle to perform queries.
type RoomTypeRepo struct {
    db *sql.DB // db is the underlying database connection
}

// NewRoomTypeRepo constructs a RoomTypeRepo with the given DB handle.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo {
    return &RoomTypeRepo{db: db}
}

// GetByID retrieves a room type by its ID.  It returns
// ErrRoomTypeNotFound when no row is found.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
    const q = `SELECT id, hotel_id, name, description, capacity, base_price_cents, is_active, created_at, updated_at
               FROM room_types WHERE id = ?`
    var rt model.RoomType
    err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Description, &rt.Capacity, &rt.BasePriceCents, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomTypeNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// ListByHotel returns the active room types of a hotel ordered by id.
// Used for GET /v1/hotels/:hotel_id/room-types.
func (r *RoomTypeRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.RoomType, error) {
    const q = `SELECT id, hotel_id, name, description, capacity, base_price_cents, is_active, created_at, updated_at
               FROM room_types
               WHERE hotel_id = ? AND is_active = 1
               ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, hotelID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []*model.RoomType
    for rows.Next() {
        rt := new(model.RoomType)
        if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Description, &rt.Capacity, &rt.BasePriceCents, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, rt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
