package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// cancellationLead is the minimum time before a reservation's start at
// which cancellation is still permitted.
const cancellationLead = 24 * time.Hour

// ReservationStore is the persistence contract the reservation engine
// needs.  *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	ExistsExact(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (bool, error)
	HasActiveOverlap(ctx context.Context, roomID uint64, startAt, endAt time.Time) (bool, error)
	GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error)
	ListAll(ctx context.Context) ([]*model.Reservation, error)
	SetStatus(ctx context.Context, id uint64, status bool) error
	Delete(ctx context.Context, id uint64) error
}

// UserFinder resolves user ids; *repository.UserRepo satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// RoomFinder resolves room ids; *repository.RoomRepo satisfies it.
type RoomFinder interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// ReservationService enforces the booking rules: exact-duplicate
// rejection, overlap conflicts over active reservations and the 24h
// cancellation window.  Ownership is re-validated on every read and
// mutation regardless of what the HTTP layer already checked.
type ReservationService struct {
	store ReservationStore
	users UserFinder
	rooms RoomFinder

	// roomLocks serializes the duplicate-check, conflict-check and
	// insert sequence per room.  Without it two concurrent creates for
	// overlapping slots could both pass the conflict scan before either
	// inserts.
	mu        sync.Mutex
	roomLocks map[uint64]*sync.Mutex

	now func() time.Time // injectable clock for the cancellation window
}

// NewReservationService wires the reservation engine to its stores.
func NewReservationService(store ReservationStore, users UserFinder, rooms RoomFinder) *ReservationService {
	if store == nil || users == nil || rooms == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{
		store:     store,
		users:     users,
		rooms:     rooms,
		roomLocks: make(map[uint64]*sync.Mutex),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// lockRoom returns the mutex guarding bookings of one room, creating it
// on first use.  Locks are never removed; the map grows with the number
// of distinct rooms, which is bounded by the inventory.
func (s *ReservationService) lockRoom(roomID uint64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	return l
}

// Create books a room for the half-open interval [startAt, endAt) on
// behalf of userID.  The user and room must exist.  The new reservation
// is rejected with ErrDuplicateReservation when the user already holds
// one with the identical room and interval (in any status), and with
// ErrSlotConflict when any active reservation for the room overlaps.
// Cancelled reservations do not block.  Conflicts are terminal business
// errors, never retried.
func (s *ReservationService) Create(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (*model.Reservation, error) {
	if !startAt.Before(endAt) {
		return nil, ErrInvalidInterval
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Hold the room lock across check-then-insert so concurrent creates
	// for the same room cannot interleave between the conflict scan and
	// the insert.
	lock := s.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	dup, err := s.store.ExistsExact(ctx, userID, roomID, startAt, endAt)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateReservation
	}
	conflict, err := s.store.HasActiveOverlap(ctx, roomID, startAt, endAt)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	res := &model.Reservation{
		UserID:  userID,
		RoomID:  roomID,
		StartAt: startAt.UTC(),
		EndAt:   endAt.UTC(),
		Status:  true,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListByUser returns the user's reservations, newest first.  The user
// must exist; having no reservations is not an error, the list is
// simply empty.
func (s *ReservationService) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.store.ListByUser(ctx, userID)
}

// Get returns one reservation when it is owned by userID, and
// ErrNotFound otherwise.  A reservation belonging to someone else looks
// exactly like a nonexistent one.
func (s *ReservationService) Get(ctx context.Context, userID, reservationID uint64) (*model.Reservation, error) {
	res, err := s.store.GetByIDForUser(ctx, reservationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// Delete removes the reservation permanently after verifying ownership.
// Deletion never creates overlap, so no conflict re-check is needed.
func (s *ReservationService) Delete(ctx context.Context, userID, reservationID uint64) error {
	if _, err := s.Get(ctx, userID, reservationID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Cancel flips the reservation's status to false after verifying
// ownership.  Cancellation is allowed only while the start is at least
// 24 hours away; inside that window ErrCancellationWindow is returned
// and the reservation is left untouched.  The transition is one-way:
// there is no re-activation path.
func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID uint64) (*model.Reservation, error) {
	res, err := s.Get(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}
	if res.StartAt.Before(s.now().Add(cancellationLead)) {
		return nil, ErrCancellationWindow
	}
	if err := s.store.SetStatus(ctx, reservationID, false); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res.Status = false
	return res, nil
}
