package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
)

func newTestAuthService(t *testing.T, store *mockStore) *AuthService {
	t.Helper()

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars")
	require.NoError(t, err)

	// Minimum bcrypt cost keeps the suite fast.
	passwords := auth.NewPasswordServiceForTest(4)

	return NewAuthService(store, passwords, sessions, newTestLogger())
}

func TestAuthService_Register(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(t, store)

	result, err := svc.Register(context.Background(), "colt", "colt@example.com", "chicken-nugget")
	require.NoError(t, err)

	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "colt", result.User.Username)
	assert.NotEmpty(t, result.Token, "register should log the new user in")
	assert.NotEqual(t, "chicken-nugget", result.User.PasswordHash)
}

func TestAuthService_Register_Validation(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register(context.Background(), " ", "", "")
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
	assert.Empty(t, store.users)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register(context.Background(), "colt", "colt@example.com", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "colt", "other@example.com", "pw-two")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAuthService_Login(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(t, store)

	registered, err := svc.Register(context.Background(), "colt", "colt@example.com", "chicken-nugget")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "colt", "chicken-nugget")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

// Unknown usernames and wrong passwords fail identically, so login can't be
// used to probe which accounts exist.
func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register(context.Background(), "colt", "colt@example.com", "chicken-nugget")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "nobody", "whatever")
	_, errWrongPw := svc.Login(context.Background(), "colt", "wrong")

	require.ErrorIs(t, errUnknown, apperror.ErrUnauthorized)
	require.ErrorIs(t, errWrongPw, apperror.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}
