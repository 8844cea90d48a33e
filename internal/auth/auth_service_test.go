package auth_test

import (
	"context"
	"testing"

	"hr-portal/internal/auth"
	autherrors "hr-portal/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*auth.User{}}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *auth.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &auth.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "admin", "admin123", auth.RoleAdmin)
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "admin", "admin123")

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "admin", resp.Username)
		assert.Equal(t, auth.RoleAdmin, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "admin", "admin123", auth.RoleAdmin)
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "admin", "nope")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error as a bad password", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepo())

		_, _, _, err := svc.Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_EnsureAdminUser(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("seeds the account once", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := auth.NewService(repo)

		require.NoError(t, svc.EnsureAdminUser(ctx, "admin", "admin123"))
		require.NoError(t, svc.EnsureAdminUser(ctx, "admin", "admin123"))

		count, err := repo.CountByRole(ctx, auth.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		_, _, _, err = svc.Login(ctx, "admin", "admin123")
		assert.NoError(t, err)
	})

	t.Run("existing user keeps its password", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "admin", "original", auth.RoleAdmin)
		svc := auth.NewService(repo)

		require.NoError(t, svc.EnsureAdminUser(ctx, "admin", "replacement"))

		_, _, _, err := svc.Login(ctx, "admin", "original")
		assert.NoError(t, err)
	})

	t.Run("any existing admin blocks seeding", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "root", "rootpass", auth.RoleAdmin)
		svc := auth.NewService(repo)

		require.NoError(t, svc.EnsureAdminUser(ctx, "admin", "admin123"))

		_, _, _, err := svc.Login(ctx, "admin", "admin123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
