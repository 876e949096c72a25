package service

import (
	"context"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// RoomStore is the persistence contract of the room registry.
// *repository.RoomRepo satisfies it.
type RoomStore interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	ListActive(ctx context.Context) ([]*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	UpdateStatus(ctx context.Context, id uint64, isActive bool) error
	Delete(ctx context.Context, id uint64) error
}

// RoomUpdate carries the mutable fields of a room for Update.
type RoomUpdate struct {
	Name        string
	MaxCapacity uint32
	Description string
	IsActive    bool
}

// RoomService manages the bookable room inventory.  Rooms are mutated by
// admins only (enforced by the HTTP layer's role gate); the service
// itself guarantees the capacity invariant and the soft-disable listing
// policy.
type RoomService struct {
	store RoomStore
}

func NewRoomService(store RoomStore) *RoomService {
	if store == nil {
		panic("nil store passed to NewRoomService")
	}
	return &RoomService{store: store}
}

// ErrInvalidCapacity rejects rooms that cannot hold anyone.
var ErrInvalidCapacity = errors.New("room capacity must be at least 1")

// Create registers a new room.  Capacity must be positive.
func (s *RoomService) Create(ctx context.Context, name string, maxCapacity uint32, description string, isActive bool) (*model.Room, error) {
	if maxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	room := &model.Room{
		Name:        name,
		MaxCapacity: maxCapacity,
		Description: description,
		IsActive:    isActive,
	}
	if err := s.store.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// List returns only active rooms, newest first.  Deactivated rooms are
// hidden from the default listing rather than deleted.
func (s *RoomService) List(ctx context.Context) ([]*model.Room, error) {
	return s.store.ListActive(ctx)
}

// Get returns a room by id regardless of its active flag.
func (s *RoomService) Get(ctx context.Context, id uint64) (*model.Room, error) {
	room, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// Update replaces the room's mutable fields.  Existence is checked with
// a lookup first so the caller receives a domain-typed ErrNotFound
// instead of the store's native signal.
func (s *RoomService) Update(ctx context.Context, id uint64, upd RoomUpdate) (*model.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.MaxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	room.Name = upd.Name
	room.MaxCapacity = upd.MaxCapacity
	room.Description = upd.Description
	room.IsActive = upd.IsActive
	if err := s.store.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// UpdateStatus soft-enables or soft-disables bookability by touching
// only the is_active flag, keeping reservation history intact.
func (s *RoomService) UpdateStatus(ctx context.Context, id uint64, isActive bool) (*model.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, id, isActive); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	room.IsActive = isActive
	return room, nil
}

// Delete removes a room permanently.
func (s *RoomService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
