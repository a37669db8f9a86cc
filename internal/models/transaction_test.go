package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionKind(t *testing.T) {
	valid := []string{"DEPOSIT", "WITHDRAWAL", "TRANSFER_OUT", "TRANSFER_IN"}
	for _, s := range valid {
		k, err := ParseTransactionKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, TransactionKind(s), k)
		assert.True(t, k.Valid())
	}

	invalid := []string{"", "deposit", "REFUND", "TRANSFER", "DEPOSIT "}
	for _, s := range invalid {
		_, err := ParseTransactionKind(s)
		assert.ErrorIs(t, err, ErrInvalidKind, "%q must be rejected", s)
	}
}

func TestTransactionBeforeCreate(t *testing.T) {
	tests := []struct {
		name    string
		txn     Transaction
		wantErr bool
	}{
		{
			name: "valid entry",
			txn: Transaction{
				AccountID: 1,
				Kind:      KindDeposit,
				Amount:    decimal.RequireFromString("10.00"),
			},
		},
		{
			name: "unknown kind",
			txn: Transaction{
				AccountID: 1,
				Kind:      TransactionKind("FEE"),
				Amount:    decimal.RequireFromString("10.00"),
			},
			wantErr: true,
		},
		{
			name: "zero amount",
			txn: Transaction{
				AccountID: 1,
				Kind:      KindWithdrawal,
				Amount:    decimal.Zero,
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			txn: Transaction{
				AccountID: 1,
				Kind:      KindTransferOut,
				Amount:    decimal.RequireFromString("-1.00"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.BeforeCreate(nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountBeforeCreateZeroesBalance(t *testing.T) {
	acct := Account{UserID: 1, Balance: decimal.RequireFromString("999.99")}
	require.NoError(t, acct.BeforeCreate(nil))
	assert.True(t, acct.Balance.IsZero())
}
