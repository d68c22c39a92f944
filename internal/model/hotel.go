package model

import "time"

// Hotel represents a bookable property in the catalog.  A hotel
// offers one or more room types and is the unit the external
// inventory and hold collaborator identifies through the
// service_id field of its API.  This struct corresponds to a row
// in the `hotels` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hotel.
//  City        – city the hotel is located in, used by search.
//  Description – optional marketing description.
//  IsActive    – whether the hotel is open for bookings.
//  CreatedAt   – timestamp when the hotel was created.
//  UpdatedAt   – timestamp of last update.
type Hotel struct {
    ID          uint64    // hotels.id
    Name        string    // hotels.name
    City        string    // hotels.city
    Description *string   // hotels.description (nullable)
    IsActive    bool      // hotels.is_active
    CreatedAt   time.Time // hotels.created_at
    UpdatedAt   time.Time // hotels.updated_at
}
