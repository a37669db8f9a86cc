package user

import (
	"context"
	"testing"

	"tally/internal/models"
	"tally/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	repositories.UserRepository
	users     map[string]*models.User
	createErr error
}

func (f *fakeUserRepo) CreateWithAccount(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Username]; ok {
		return repositories.ErrDuplicateUser
	}
	user.ID = uint(len(f.users) + 1)
	user.Account = &models.Account{ID: user.ID, UserID: user.ID}
	if f.users == nil {
		f.users = make(map[string]*models.User)
	}
	f.users[user.Username] = user
	return nil
}

func TestRegister(t *testing.T) {
	input := func() *models.CreateUserInput {
		return &models.CreateUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct-horse-battery",
		}
	}

	t.Run("creates user and account together", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})

		created, err := svc.Register(context.Background(), input())
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)
		require.NotNil(t, created.Account, "registration must include the account")

		// Stored password is a bcrypt hash of the input, never plaintext.
		assert.NotEqual(t, "correct-horse-battery", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correct-horse-battery")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := &fakeUserRepo{}
		svc := NewService(repo)

		_, err := svc.Register(context.Background(), input())
		require.NoError(t, err)

		second := input()
		second.Email = "other@example.com"
		_, err = svc.Register(context.Background(), second)
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("validation failures never reach the store", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*models.CreateUserInput)
		}{
			{"blank username", func(in *models.CreateUserInput) { in.Username = " " }},
			{"bad username characters", func(in *models.CreateUserInput) { in.Username = "al ice!" }},
			{"bad email", func(in *models.CreateUserInput) { in.Email = "not-an-email" }},
			{"short password", func(in *models.CreateUserInput) { in.Password = "short" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &fakeUserRepo{}
				svc := NewService(repo)

				in := input()
				tt.mutate(in)
				_, err := svc.Register(context.Background(), in)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Empty(t, repo.users)
			})
		}
	})
}
