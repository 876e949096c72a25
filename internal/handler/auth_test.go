package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/service"
	"github.com/iliyamo/room-reservation/internal/utils"
)

func newAuthHandler(users *userStoreStub, tokens *tokenStoreStub) *AuthHandler {
	return NewAuthHandler(service.NewAuthService(service.AuthConfig{
		JWTSecret:      "handler-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}, users, tokens, &mailerStub{}))
}

func TestAuthHandlerRegister(t *testing.T) {
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{})
	body := `{"name":"Alice","username":"alice@example.com","password":"s3cretpass"}`
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/register", body, 0)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice@example.com"`)
	// The password hash never leaves the service.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{})

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"username":"alice@example.com"}`},
		{"not an email", `{"name":"Alice","username":"alice","password":"s3cretpass"}`},
		{"short password", `{"name":"Alice","username":"alice@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonCtx(http.MethodPost, "/v1/auth/register", tc.body, 0)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	h := newAuthHandler(&userStoreStub{
		createFn: func(ctx context.Context, u *model.User) error {
			return repository.ErrUsernameTaken
		},
	}, &tokenStoreStub{})
	body := `{"name":"Alice","username":"alice@example.com","password":"s3cretpass"}`
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/register", body, 0)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	hash, err := utils.HashPassword("s3cretpass", 4)
	require.NoError(t, err)
	users := &userStoreStub{
		getByUsernameFn: func(ctx context.Context, username string) (model.User, error) {
			if username == "alice@example.com" {
				return model.User{ID: 7, Username: username, Name: "Alice", Role: model.RoleUser, PasswordHash: hash}, nil
			}
			return model.User{}, repository.ErrUserNotFound
		},
	}
	h := newAuthHandler(users, &tokenStoreStub{})

	t.Run("success", func(t *testing.T) {
		body := `{"username":"alice@example.com","password":"s3cretpass"}`
		c, rec := jsonCtx(http.MethodPost, "/v1/auth/login", body, 0)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"access"`)
		assert.Contains(t, rec.Body.String(), `"refresh"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"username":"alice@example.com","password":"wrongpass1"}`
		c, rec := jsonCtx(http.MethodPost, "/v1/auth/login", body, 0)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		body := `{"username":"nobody@example.com","password":"s3cretpass"}`
		c, rec := jsonCtx(http.MethodPost, "/v1/auth/login", body, 0)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandlerRefreshInvalid(t *testing.T) {
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{})
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"garbage"}`, 0)

	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerForgotPasswordHidesAccounts(t *testing.T) {
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{})
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/forgot-password", `{"username":"nobody@example.com"}`, 0)

	// Unknown accounts get the same generic success.
	require.NoError(t, h.ForgotPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "if the account exists")
}

func TestAuthHandlerResetPasswordInvalidToken(t *testing.T) {
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{})
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/reset-password", `{"token":"garbage","password":"newpass123"}`, 0)

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthHandlerLogoutAll(t *testing.T) {
	called := uint64(0)
	h := newAuthHandler(&userStoreStub{}, &tokenStoreStub{
		deleteAllForUserFn: func(ctx context.Context, userID uint64) error {
			called = userID
			return nil
		},
	})
	c, rec := jsonCtx(http.MethodPost, "/v1/auth/logout-all", "", 7)

	require.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint64(7), called)
}
