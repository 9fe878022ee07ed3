package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
	"scireda/backend/internal/repository/mock"
	"scireda/backend/internal/repository/testutil"
	"scireda/backend/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Sup3r$ecret"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newAuthService(t *testing.T, clock *fakeClock) (service.AuthService, sqliteStore) {
	t.Helper()
	store := newSQLiteStore(t)
	svc := service.NewAuthService(
		repository.NewUserRepository(store.db),
		repository.NewTokenRepository(store.db),
		[]byte("test-secret"),
		time.Hour,
		service.WithPasswordCost(bcrypt.MinCost),
		service.WithClock(clock.Now),
	)
	return svc, store
}

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, store := newAuthService(t, clock)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice@Example.com", "alice", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "alice@example.com", registered.User.Email)

	userID, err := svc.ValidateToken(ctx, registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, userID)

	loggedIn, err := svc.Login(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)

	me, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)

	require.NoError(t, svc.Logout(ctx, userID))
	require.Equal(t, 0, testutil.Count(t, store.db, "access_tokens", "user_id = ?", userID))
	_, err = svc.ValidateToken(ctx, loggedIn.Token)
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_Register_Rejects(t *testing.T) {
	svc, _ := newAuthService(t, &fakeClock{now: time.Now()})
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		username string
		password string
		field    string
	}{
		{"bad email", "not-an-email", "alice", testPassword, "email"},
		{"short username", "a@example.com", "al", testPassword, "username"},
		{"short password", "a@example.com", "alice", "Aa1$", "password"},
		{"no special", "a@example.com", "alice", "Password123", "password"},
		{"no upper", "a@example.com", "alice", "passw0rd$", "password"},
		{"password over 72 bytes", "a@example.com", "alice", "Aa1@" + strings.Repeat("x", 76), "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.username, tc.password)
			var validation *service.ValidationError
			require.ErrorIs(t, err, service.ErrInvalid)
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tc.field, validation.Field)
		})
	}

	_, err := svc.Register(ctx, "a@example.com", "alice", testPassword)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b@example.com", "alice", testPassword)
	require.ErrorIs(t, err, service.ErrConflict)
	_, err = svc.Register(ctx, "A@example.com", "bob", testPassword)
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	svc, _ := newAuthService(t, &fakeClock{now: time.Now()})
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "alice", testPassword)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@example.com", "Wr0ng$pass")
	require.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", testPassword)
	require.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = svc.Login(ctx, "", testPassword)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestAuthService_TokenExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, store := newAuthService(t, clock)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@example.com", "alice", testPassword)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = svc.ValidateToken(ctx, resp.Token)
	require.ErrorIs(t, err, service.ErrUnauthorized)

	purged, err := svc.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)
	require.Equal(t, 0, testutil.Count(t, store.db, "access_tokens", ""))
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewAuthService(mock.NewMockUserRepository(ctrl), mock.NewMockTokenRepository(ctrl), []byte("k"), time.Hour)

	_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
	require.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = svc.ValidateToken(context.Background(), "")
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	tokens := mock.NewMockTokenRepository(ctrl)
	other := service.NewAuthService(users, tokens, []byte("k"), time.Hour)

	svc, _ := newAuthService(t, &fakeClock{now: time.Now()})
	resp, err := svc.Register(context.Background(), "a@example.com", "alice", testPassword)
	require.NoError(t, err)

	// Signed with a different secret.
	_, err = other.ValidateToken(context.Background(), resp.Token)
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_Register_ConcurrentDuplicateIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	tokens := mock.NewMockTokenRepository(ctrl)
	svc := service.NewAuthService(users, tokens, []byte("k"), time.Hour, service.WithPasswordCost(bcrypt.MinCost))

	// The other registration commits between the existence check and the insert.
	users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), "a@example.com", "alice").Return(false, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.User{}, fmt.Errorf("create user: %w", repository.ErrDuplicate))

	_, err := svc.Register(context.Background(), "a@example.com", "alice", testPassword)
	require.ErrorIs(t, err, service.ErrConflict)
}
