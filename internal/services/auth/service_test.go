package auth

import (
	"context"
	"testing"

	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	repositories.UserRepository
	byID       map[uint]*models.User
	byUsername map[string]*models.User
	bumped     []uint
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) IncrementTokenVersion(_ context.Context, id uint) error {
	f.bumped = append(f.bumped, id)
	if u, ok := f.byID[id]; ok {
		u.TokenVersion++
	}
	return nil
}

func seedUser(t *testing.T) (*fakeUserRepo, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Username: "alice", Password: string(hash), TokenVersion: 1}
	u.ID = 1
	return &fakeUserRepo{
		byID:       map[uint]*models.User{1: u},
		byUsername: map[string]*models.User{"alice": u},
	}, u
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo, _ := seedUser(t)
	svc := NewService(repo)

	t.Run("valid credentials issue tokens", func(t *testing.T) {
		user, access, refresh, err := svc.Login(context.Background(), "alice", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := utils.ParseToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "mallory", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo, user := seedUser(t)
	svc := NewService(repo)

	_, _, refresh, err := svc.Login(context.Background(), "alice", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		access, newRefresh, err := svc.Refresh(context.Background(), refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("stale token version rejected", func(t *testing.T) {
		user.TokenVersion++
		_, _, err := svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, _, err := svc.Refresh(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	repo, user := seedUser(t)
	svc := NewService(repo)

	before := user.TokenVersion
	require.NoError(t, svc.Logout(context.Background(), 1))
	assert.Equal(t, []uint{1}, repo.bumped)
	assert.Equal(t, before+1, user.TokenVersion)
}
