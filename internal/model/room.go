package model

import "time"

// Room is a bookable resource as stored in the `rooms` table.  Rooms are
// never hard-deleted as part of normal operation; deactivating them via
// IsActive removes them from the default listing while keeping
// reservation history intact.
type Room struct {
	ID          uint64    // rooms.id
	Name        string    // rooms.name
	MaxCapacity uint32    // rooms.max_capacity (always >= 1)
	Description string    // rooms.description
	IsActive    bool      // rooms.is_active
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
