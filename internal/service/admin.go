package service

import (
	"context"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// AdminService exposes the moderation operations reserved for the ADMIN
// role: inspecting every reservation and purging reservations or
// accounts.  The HTTP layer gates these behind the role check; the
// service performs the actual mutations.
type AdminService struct {
	reservations ReservationStore
	users        UserDirectoryStore
}

func NewAdminService(reservations ReservationStore, users UserDirectoryStore) *AdminService {
	if reservations == nil || users == nil {
		panic("nil store passed to NewAdminService")
	}
	return &AdminService{reservations: reservations, users: users}
}

// ListAllReservations returns every reservation across all users,
// newest first.
func (s *AdminService) ListAllReservations(ctx context.Context) ([]*model.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// DeleteReservation purges a reservation regardless of its owner.
func (s *AdminService) DeleteReservation(ctx context.Context, id uint64) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteUser removes an account; their refresh tokens cascade with it.
func (s *AdminService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
