// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for the hotel catalog. A hotel is a
// bookable property offering one or more room types; physical room inventory
// is owned by the external inventory service, so the catalog only carries
// display and pricing facts.
package repository

import (
    "context"      // context allows passing deadlines and cancellation signals to DB operations
    "database/sql" // sql provides generic database operations and drivers
    "errors"       // errors is used to define custom error values

    "github.com/voyago/hotel-booking/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo encapsulates all database queries related to hotels.  It
// depends on a sql.DB connection which should be configured elsewhere.
type HotelRepo struct {
    db *sql.DB // db is the underlying database connection pool
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewHotelRepo(db *sql.DB) *HotelRepo {
    return &HotelRepo{db: db}
}

// GetByID fetches a hotel by its ID.  It returns ErrHotelNotFound if no
// row is found.  Inactive hotels are still returned here; callers that
// care about bookability should check IsActive.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
    const q = `SELECT id, name, city, description, is_active, created_at, updated_at FROM hotels WHERE id = ?`
    var h model.Hotel
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.City, &h.Description, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrHotelNotFound
        }
        return nil, err
    }
    return &h, nil
}

// ListActive returns all active hotels ordered by id.  It backs the
// public catalog listing shown to unauthenticated visitors.
func (r *HotelRepo) ListActive(ctx context.Context) ([]*model.Hotel, error) {
    const q = `SELECT id, name, city, description, is_active, created_at, updated_at
               FROM hotels WHERE is_active = 1 ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []*model.Hotel
    for rows.Next() {
        h := new(model.Hotel)
        if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Description, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, h)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
