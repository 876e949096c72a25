package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// In-memory stores backing the service tests.  They mirror the SQL
// repositories' observable behavior, including their sentinel errors.

type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint64]model.User)}
}

func (s *memUserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) UpdateName(ctx context.Context, id uint64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Name = name
	s.users[id] = u
	return nil
}

func (s *memUserStore) UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	username = strings.ToLower(strings.TrimSpace(username))
	for id, u := range s.users {
		if u.Username == username {
			u.PasswordHash = passwordHash
			s.users[id] = u
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (s *memUserStore) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type memRoomStore struct {
	mu     sync.Mutex
	nextID uint64
	rooms  map[uint64]model.Room
	order  []uint64
}

func newMemRoomStore() *memRoomStore {
	return &memRoomStore{rooms: make(map[uint64]model.Room)}
}

func (s *memRoomStore) Create(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	room.ID = s.nextID
	room.CreatedAt = time.Now().UTC()
	room.UpdatedAt = room.CreatedAt
	s.rooms[room.ID] = *room
	s.order = append(s.order, room.ID)
	return nil
}

func (s *memRoomStore) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

// ListActive returns active rooms newest first, like the SQL repo's
// ORDER BY created_at DESC.
func (s *memRoomStore) ListActive(ctx context.Context) ([]*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Room, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		r, ok := s.rooms[s.order[i]]
		if ok && r.IsActive {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *memRoomStore) Update(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *memRoomStore) UpdateStatus(ctx context.Context, id uint64, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return repository.ErrRoomNotFound
	}
	r.IsActive = isActive
	s.rooms[id] = r
	return nil
}

func (s *memRoomStore) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

type memReservationStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Reservation
	order  []uint64
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{items: make(map[uint64]model.Reservation)}
}

func (s *memReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	res.ID = s.nextID
	res.CreatedAt = time.Now().UTC()
	s.items[res.ID] = *res
	s.order = append(s.order, res.ID)
	return nil
}

func (s *memReservationStore) ExistsExact(ctx context.Context, userID, roomID uint64, startAt, endAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.UserID == userID && r.RoomID == roomID && r.StartAt.Equal(startAt) && r.EndAt.Equal(endAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memReservationStore) HasActiveOverlap(ctx context.Context, roomID uint64, startAt, endAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.RoomID == roomID && r.Status && r.Overlaps(startAt, endAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memReservationStore) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (s *memReservationStore) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Reservation, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		r, ok := s.items[s.order[i]]
		if ok && r.UserID == userID {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *memReservationStore) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Reservation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		r, ok := s.items[s.order[i]]
		if ok {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *memReservationStore) SetStatus(ctx context.Context, id uint64, status bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = status
	s.items[id] = r
	return nil
}

func (s *memReservationStore) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(s.items, id)
	return nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken // keyed by jti
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]model.RefreshToken)}
}

func (s *memTokenStore) Store(ctx context.Context, t *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.ID] = *t
	return nil
}

func (s *memTokenStore) Get(ctx context.Context, userID uint64, id string) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok || t.UserID != userID || !t.ExpiresAt.After(time.Now().UTC()) {
		return model.RefreshToken{}, repository.ErrTokenNotFound
	}
	return t, nil
}

// Rotate deletes the old record and inserts the replacement atomically
// under the store lock, matching the SQL repo's transaction.
func (s *memTokenStore) Rotate(ctx context.Context, userID uint64, oldID string, newTok *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[oldID]
	if !ok || t.UserID != userID {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, oldID)
	s.tokens[newTok.ID] = *newTok
	return nil
}

func (s *memTokenStore) Delete(ctx context.Context, userID uint64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok || t.UserID != userID {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, id)
	return nil
}

func (s *memTokenStore) DeleteAllForUser(ctx context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *memTokenStore) count(userID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// recordingMailer captures outgoing password-reset mail.
type recordingMailer struct {
	mu        sync.Mutex
	recipient string
	token     string
	calls     int
}

func (m *recordingMailer) SendPasswordResetEmail(ctx context.Context, recipient, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipient = recipient
	m.token = token
	m.calls++
	return nil
}
