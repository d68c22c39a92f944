package model

import "time"

// RoomType describes a class of rooms inside a hotel (capacity and
// nightly rate), distinct from individual physical room units.
// Physical inventory for a room type is owned and arbitrated by the
// external inventory service; this catalog row only supplies the
// read-only pricing and capacity facts the booking workflow needs.
//
// Fields:
//  ID             – primary key identifier.
//  HotelID        – hotel this room type belongs to.
//  Name           – display name (e.g. "Deluxe Double").
//  Description    – optional description of the room type.
//  Capacity       – maximum guests per room of this type.
//  BasePriceCents – nightly rate in cents.
//  IsActive       – whether the room type is offered for booking.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type RoomType struct {
    ID             uint64    // room_types.id
    HotelID        uint64    // room_types.hotel_id
    Name           string    // room_types.name
    Description    *string   // room_types.description (nullable)
    Capacity       uint32    // room_types.capacity
    BasePriceCents uint32    // room_types.base_price_cents
    IsActive       bool      // room_types.is_active
    CreatedAt      time.Time // room_types.created_at
    UpdatedAt      time.Time // room_types.updated_at
}
