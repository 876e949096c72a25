package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/utils"
)

// resetTokenTTL is the validity of password-reset tokens.
const resetTokenTTL = 5 * time.Minute

// UserStore is the persistence contract of the identity engine.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) error
}

// TokenStore persists refresh-token records.  *repository.TokenRepo
// satisfies it.
type TokenStore interface {
	Store(ctx context.Context, t *model.RefreshToken) error
	Get(ctx context.Context, userID uint64, id string) (model.RefreshToken, error)
	Rotate(ctx context.Context, userID uint64, oldID string, newTok *model.RefreshToken) error
	Delete(ctx context.Context, userID uint64, id string) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
}

// Mailer delivers password-reset tokens to users.  The queue package
// provides the production implementation.
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, recipient, token string) error
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

// AuthConfig carries the token parameters of the identity engine.
type AuthConfig struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// AuthService implements registration, credential verification, token
// issuance with refresh rotation and the password-reset flow.
// Authentication failures deliberately collapse to generic errors so the
// caller cannot learn which specific check failed.
type AuthService struct {
	cfg    AuthConfig
	users  UserStore
	tokens TokenStore
	mailer Mailer
}

// NewAuthService wires the identity engine.  The mailer may be nil when
// the password-reset flow is not exposed.
func NewAuthService(cfg AuthConfig, users UserStore, tokens TokenStore, mailer Mailer) *AuthService {
	if users == nil || tokens == nil {
		panic("nil store passed to NewAuthService")
	}
	return &AuthService{cfg: cfg, users: users, tokens: tokens, mailer: mailer}
}

// Register creates a new account with the USER role.  The password is
// bcrypt-hashed before it ever reaches the store.  A taken username maps
// to ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, name, username, password string) (*model.User, error) {
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a fresh token pair.  An
// unknown username and a wrong password are indistinguishable: both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.generateTokens(ctx, u.ID, u.Role)
	if err != nil {
		return nil, nil, err
	}
	return &u, pair, nil
}

// generateTokens mints an access/refresh pair and persists the refresh
// record (jti, hash, expiry).  The store write must succeed before the
// tokens are returned: a token that cannot be tracked for revocation is
// never handed out.
func (s *AuthService) generateTokens(ctx context.Context, userID uint64, role string) (*TokenPair, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, userID, role, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(s.cfg.JWTSecret, userID, s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	rec := &model.RefreshToken{
		ID:        refresh.ID,
		UserID:    userID,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
	}
	if err := s.tokens.Store(ctx, rec); err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new pair and consumes
// the presented one.  The stored record is deleted and its replacement
// inserted in a single store transaction, so of two concurrent calls
// presenting the same token exactly one succeeds; the pair is only
// returned after that transaction commits.  Every verification failure
// collapses to ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*model.User, *TokenPair, error) {
	userID, jti, err := utils.ParseRefreshToken(s.cfg.JWTSecret, presented)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	stored, err := s.tokens.Get(ctx, userID, jti)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}
	if !hashEqual(stored.TokenHash, utils.HashRefreshRaw(presented)) {
		return nil, nil, ErrInvalidRefreshToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}

	access, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, u.Role, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := utils.NewRefreshToken(s.cfg.JWTSecret, u.ID, s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, nil, err
	}
	rec := &model.RefreshToken{
		ID:        refresh.ID,
		UserID:    u.ID,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
	}
	if err := s.tokens.Rotate(ctx, u.ID, jti, rec); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			// Lost the race against a concurrent refresh of the same token.
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}
	return &u, &TokenPair{Access: access, Refresh: refresh}, nil
}

// Logout ends the single session identified by the presented refresh
// token.  The token must verify and match its stored hash; failures
// collapse to ErrInvalidRefreshToken.
func (s *AuthService) Logout(ctx context.Context, presented string) error {
	userID, jti, err := utils.ParseRefreshToken(s.cfg.JWTSecret, presented)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	stored, err := s.tokens.Get(ctx, userID, jti)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	if !hashEqual(stored.TokenHash, utils.HashRefreshRaw(presented)) {
		return ErrInvalidRefreshToken
	}
	if err := s.tokens.Delete(ctx, userID, jti); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// LogoutAll revokes every refresh token of the user, invalidating all
// their sessions across devices.
func (s *AuthService) LogoutAll(ctx context.Context, userID uint64) error {
	return s.tokens.DeleteAllForUser(ctx, userID)
}

// SendForgotPasswordEmail issues a short-lived reset token scoped by its
// issuer claim and mails it to the account's address.
func (s *AuthService) SendForgotPasswordEmail(ctx context.Context, username string) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}
	token, err := utils.NewResetToken(s.cfg.JWTSecret, u.Username, resetTokenTTL)
	if err != nil {
		return err
	}
	if s.mailer == nil {
		return errors.New("password reset mailer not configured")
	}
	return s.mailer.SendPasswordResetEmail(ctx, u.Username, token)
}

// ResetPassword verifies a reset token's signature, expiry and issuer
// claim, then hashes and persists the new password.  Any verification
// failure, including a token for an account that no longer exists,
// yields ErrInvalidResetToken.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	username, err := utils.ParseResetToken(s.cfg.JWTSecret, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordByUsername(ctx, username, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// hashEqual compares two hash strings in constant time.
func hashEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
