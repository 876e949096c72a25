package handler

import (
	"context"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// Func-field stubs for the service-layer store interfaces.  Tests set
// only the calls they expect; everything else answers "not found" or an
// empty result.

type reservationStoreStub struct {
	createFn           func(ctx context.Context, res *model.Reservation) error
	existsExactFn      func(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (bool, error)
	hasActiveOverlapFn func(ctx context.Context, roomID uint64, startAt, endAt time.Time) (bool, error)
	getByIDForUserFn   func(ctx context.Context, id, userID uint64) (*model.Reservation, error)
	listByUserFn       func(ctx context.Context, userID uint64) ([]*model.Reservation, error)
	listAllFn          func(ctx context.Context) ([]*model.Reservation, error)
	setStatusFn        func(ctx context.Context, id uint64, status bool) error
	deleteFn           func(ctx context.Context, id uint64) error
}

func (s *reservationStoreStub) Create(ctx context.Context, res *model.Reservation) error {
	if s.createFn != nil {
		return s.createFn(ctx, res)
	}
	res.ID = 1
	return nil
}

func (s *reservationStoreStub) ExistsExact(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (bool, error) {
	if s.existsExactFn != nil {
		return s.existsExactFn(ctx, userID, roomID, startAt, endAt)
	}
	return false, nil
}

func (s *reservationStoreStub) HasActiveOverlap(ctx context.Context, roomID uint64, startAt, endAt time.Time) (bool, error) {
	if s.hasActiveOverlapFn != nil {
		return s.hasActiveOverlapFn(ctx, roomID, startAt, endAt)
	}
	return false, nil
}

func (s *reservationStoreStub) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
	if s.getByIDForUserFn != nil {
		return s.getByIDForUserFn(ctx, id, userID)
	}
	return nil, repository.ErrReservationNotFound
}

func (s *reservationStoreStub) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *reservationStoreStub) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx)
	}
	return nil, nil
}

func (s *reservationStoreStub) SetStatus(ctx context.Context, id uint64, status bool) error {
	if s.setStatusFn != nil {
		return s.setStatusFn(ctx, id, status)
	}
	return nil
}

func (s *reservationStoreStub) Delete(ctx context.Context, id uint64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type userStoreStub struct {
	createFn         func(ctx context.Context, u *model.User) error
	getByUsernameFn  func(ctx context.Context, username string) (model.User, error)
	getByIDFn        func(ctx context.Context, id uint64) (model.User, error)
	updateNameFn     func(ctx context.Context, id uint64, name string) error
	updatePasswordFn func(ctx context.Context, username, passwordHash string) error
	deleteFn         func(ctx context.Context, id uint64) error
}

func (s *userStoreStub) Create(ctx context.Context, u *model.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, u)
	}
	u.ID = 1
	return nil
}

func (s *userStoreStub) GetByUsername(ctx context.Context, username string) (model.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *userStoreStub) GetByID(ctx context.Context, id uint64) (model.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *userStoreStub) UpdateName(ctx context.Context, id uint64, name string) error {
	if s.updateNameFn != nil {
		return s.updateNameFn(ctx, id, name)
	}
	return repository.ErrUserNotFound
}

func (s *userStoreStub) UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) error {
	if s.updatePasswordFn != nil {
		return s.updatePasswordFn(ctx, username, passwordHash)
	}
	return repository.ErrUserNotFound
}

func (s *userStoreStub) Delete(ctx context.Context, id uint64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return repository.ErrUserNotFound
}

type roomStoreStub struct {
	getByIDFn func(ctx context.Context, id uint64) (*model.Room, error)
}

func (s *roomStoreStub) Create(ctx context.Context, room *model.Room) error { return nil }

func (s *roomStoreStub) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, repository.ErrRoomNotFound
}

func (s *roomStoreStub) ListActive(ctx context.Context) ([]*model.Room, error) { return nil, nil }
func (s *roomStoreStub) Update(ctx context.Context, room *model.Room) error    { return nil }
func (s *roomStoreStub) UpdateStatus(ctx context.Context, id uint64, isActive bool) error {
	return nil
}
func (s *roomStoreStub) Delete(ctx context.Context, id uint64) error { return nil }

type tokenStoreStub struct {
	storeFn            func(ctx context.Context, t *model.RefreshToken) error
	getFn              func(ctx context.Context, userID uint64, id string) (model.RefreshToken, error)
	rotateFn           func(ctx context.Context, userID uint64, oldID string, newTok *model.RefreshToken) error
	deleteFn           func(ctx context.Context, userID uint64, id string) error
	deleteAllForUserFn func(ctx context.Context, userID uint64) error
}

func (s *tokenStoreStub) Store(ctx context.Context, t *model.RefreshToken) error {
	if s.storeFn != nil {
		return s.storeFn(ctx, t)
	}
	return nil
}

func (s *tokenStoreStub) Get(ctx context.Context, userID uint64, id string) (model.RefreshToken, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID, id)
	}
	return model.RefreshToken{}, repository.ErrTokenNotFound
}

func (s *tokenStoreStub) Rotate(ctx context.Context, userID uint64, oldID string, newTok *model.RefreshToken) error {
	if s.rotateFn != nil {
		return s.rotateFn(ctx, userID, oldID, newTok)
	}
	return repository.ErrTokenNotFound
}

func (s *tokenStoreStub) Delete(ctx context.Context, userID uint64, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, id)
	}
	return repository.ErrTokenNotFound
}

func (s *tokenStoreStub) DeleteAllForUser(ctx context.Context, userID uint64) error {
	if s.deleteAllForUserFn != nil {
		return s.deleteAllForUserFn(ctx, userID)
	}
	return nil
}

type mailerStub struct {
	sendFn func(ctx context.Context, recipient, token string) error
}

func (m *mailerStub) SendPasswordResetEmail(ctx context.Context, recipient, token string) error {
	if m.sendFn != nil {
		return m.sendFn(ctx, recipient, token)
	}
	return nil
}
