package account

import (
	"context"
	"testing"

	"tally/internal/models"
	"tally/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo covers the subset of AccountRepository this service touches;
// the embedded interface panics on anything else.
type fakeRepo struct {
	repositories.AccountRepository
	byUserID   map[uint]*models.Account
	byUsername map[string]*models.Account
	createErr  error
	created    []*models.Account
}

func (f *fakeRepo) Create(_ context.Context, acct *models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	acct.ID = uint(len(f.created) + 1)
	f.created = append(f.created, acct)
	return nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID uint) (*models.Account, error) {
	if acct, ok := f.byUserID[userID]; ok {
		return acct, nil
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	if acct, ok := f.byUsername[username]; ok {
		return acct, nil
	}
	return nil, repositories.ErrAccountNotFound
}

type memCache struct {
	accounts map[uint]*models.Account
	sets     int
	hits     int
}

func newMemCache() *memCache {
	return &memCache{accounts: make(map[uint]*models.Account)}
}

func (c *memCache) GetAccount(_ context.Context, userID uint) (*models.Account, error) {
	if acct, ok := c.accounts[userID]; ok {
		c.hits++
		return acct, nil
	}
	return nil, repositories.ErrAccountNotFound
}

func (c *memCache) SetAccount(_ context.Context, acct *models.Account) error {
	c.sets++
	c.accounts[acct.UserID] = acct
	return nil
}

func (c *memCache) InvalidateAccount(_ context.Context, userID uint) error {
	delete(c.accounts, userID)
	return nil
}

func TestCreate(t *testing.T) {
	t.Run("new account starts at zero", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, newMemCache())

		acct, err := svc.Create(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), acct.UserID)
		assert.True(t, acct.Balance.IsZero())
	})

	t.Run("duplicate owner", func(t *testing.T) {
		repo := &fakeRepo{createErr: repositories.ErrDuplicateAccount}
		svc := NewService(repo, nil)

		_, err := svc.Create(context.Background(), 7)
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})
}

func TestGet(t *testing.T) {
	acct := &models.Account{ID: 1, UserID: 7, Balance: decimal.RequireFromString("42.00")}

	t.Run("miss falls through and fills cache", func(t *testing.T) {
		repo := &fakeRepo{byUserID: map[uint]*models.Account{7: acct}}
		cache := newMemCache()
		svc := NewService(repo, cache)

		got, err := svc.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(acct.Balance))
		assert.Equal(t, 1, cache.sets)

		_, err = svc.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nil)

		_, err := svc.Get(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestResolveRecipient(t *testing.T) {
	acct := &models.Account{ID: 2, UserID: 8}
	repo := &fakeRepo{byUsername: map[string]*models.Account{"bob": acct}}
	svc := NewService(repo, nil)

	got, err := svc.ResolveRecipient(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)

	_, err = svc.ResolveRecipient(context.Background(), "mallory")
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}
