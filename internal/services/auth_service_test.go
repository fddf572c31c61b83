package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	svc := NewAuthService(&memUsers{}, "test-secret", time.Hour)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin@Example.com", "s3cret"))
	return svc
}

func TestAuthService_SignInAndAuthenticate(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	token, u, err := svc.SignIn(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, u.Role)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc := newTestAuth(t)

	_, _, err := svc.SignIn(context.Background(), "admin@example.com", "nope")
	assert.True(t, domain.IsUnauthorized(err))
	_, _, err = svc.SignIn(context.Background(), "ghost@example.com", "s3cret")
	assert.True(t, domain.IsUnauthorized(err))
	_, _, err = svc.SignIn(context.Background(), "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	users := &memUsers{}
	svc := NewAuthService(users, "k", time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "a"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "b"))
	assert.Len(t, users.rows, 1)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc := newTestAuth(t)
	now := time.Now()
	svc.Now = func() time.Time { return now }

	token, _, err := svc.SignIn(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	svc.Now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = svc.Authenticate(context.Background(), token)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestAuthService_RejectsForeignSignature(t *testing.T) {
	svc := newTestAuth(t)
	token, _, err := svc.SignIn(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	other := NewAuthService(svc.Users, "another-secret", time.Hour)
	_, err = other.Authenticate(context.Background(), token)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestAuthService_SignOutRevokesAndNotifies(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	var events []SessionEventKind
	unsubscribe := svc.Subscribe(func(ev SessionEvent) { events = append(events, ev.Kind) })

	token, _, err := svc.SignIn(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.True(t, domain.IsUnauthorized(err))
	assert.Equal(t, []SessionEventKind{SessionSignedIn, SessionSignedOut}, events)

	unsubscribe()
	_, _, err = svc.SignIn(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAuthService_SignOutTwiceIsUnauthorized(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	var signedOut int
	svc.Subscribe(func(ev SessionEvent) {
		if ev.Kind == SessionSignedOut {
			signedOut++
		}
	})

	token, _, err := svc.SignIn(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, token))

	err = svc.SignOut(ctx, token)
	assert.True(t, domain.IsUnauthorized(err))
	assert.True(t, domain.IsUnauthorized(svc.SignOut(ctx, "not-a-token")))
	assert.Equal(t, 1, signedOut)
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestAuth(t)

	_, ok := svc.CurrentUser(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), models.User{ID: 7, Role: models.RoleHost})
	u, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), u.ID)
}

func TestAuthService_CreateAccount(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	u, err := svc.CreateAccount(ctx, AccountInput{Name: "Host", Email: "Host@Example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, u.Role)
	assert.Equal(t, "host@example.com", u.Email)

	_, _, err = svc.SignIn(ctx, "host@example.com", "longenough")
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, AccountInput{Name: "X", Email: "x@example.com", Password: "short"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.CreateAccount(ctx, AccountInput{Name: "X", Email: "x@example.com", Password: "longenough", Role: "owner"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.CreateAccount(ctx, AccountInput{Name: "Again", Email: "host@example.com", Password: "longenough"})
	assert.True(t, domain.IsConflict(err))

	list, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
