package service

import (
	"context"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// UserDirectoryStore is what the account directory needs from
// persistence.  *repository.UserRepo satisfies it.
type UserDirectoryStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

// UserService is the account directory: profile reads and updates.
// Password changes go through AuthService's reset flow instead.
type UserService struct {
	store UserDirectoryStore
}

func NewUserService(store UserDirectoryStore) *UserService {
	if store == nil {
		panic("nil store passed to NewUserService")
	}
	return &UserService{store: store}
}

// Get returns the user's profile.  The password hash travels inside the
// model but handlers expose it through hash-free response types only.
func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateName changes the display name and returns the updated profile.
func (s *UserService) UpdateName(ctx context.Context, id uint64, name string) (*model.User, error) {
	if err := s.store.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the account permanently.  Refresh tokens are
// cascade-deleted with the user.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
