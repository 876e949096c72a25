package model

import "time"

// Reservation records a user's booking of one room for the half-open
// interval [StartAt, EndAt).  Status is true while the reservation is
// active and flips to false permanently when it is cancelled; there is
// no re-activation path.  All timestamps are stored in UTC.
type Reservation struct {
	ID        uint64    // reservations.id
	UserID    uint64    // reservations.user_id (owner, immutable)
	RoomID    uint64    // reservations.room_id
	StartAt   time.Time // reservations.start_at
	EndAt     time.Time // reservations.end_at
	Status    bool      // reservations.status (true = active, false = cancelled)
	CreatedAt time.Time // reservations.created_at
}

// Overlaps reports whether the reservation's interval intersects
// [startAt, endAt).  Interval ends are exclusive, so back-to-back
// bookings sharing a boundary instant do not overlap.
func (r *Reservation) Overlaps(startAt, endAt time.Time) bool {
	return r.StartAt.Before(endAt) && r.EndAt.After(startAt)
}
