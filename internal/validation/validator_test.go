package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("amount must be strictly positive", func(t *testing.T) {
		for _, s := range []string{"0", "0.00", "-1", "-0.01"} {
			v := New()
			v.Amount("amount", decimal.RequireFromString(s))
			assert.False(t, v.Valid(), "%s must fail", s)
		}

		v := New()
		v.Amount("amount", decimal.RequireFromString("0.01"))
		assert.True(t, v.Valid())
	})

	t.Run("username shape", func(t *testing.T) {
		ok := []string{"alice", "bob_2", "a.b-c"}
		for _, s := range ok {
			v := New()
			v.Username("username", s)
			assert.True(t, v.Valid(), s)
		}

		bad := []string{"", "  ", "al ice", "bob!"}
		for _, s := range bad {
			v := New()
			v.Username("username", s)
			assert.False(t, v.Valid(), "%q must fail", s)
		}
	})

	t.Run("email format", func(t *testing.T) {
		v := New()
		v.Email("email", "alice@example.com")
		assert.True(t, v.Valid())

		v = New()
		v.Email("email", "alice@")
		assert.False(t, v.Valid())
	})

	t.Run("first error only per field", func(t *testing.T) {
		v := New()
		v.AddError("field", "first")
		v.AddError("field", "second")
		assert.Equal(t, "first", v.Errors["field"])
		assert.Equal(t, "field: first", v.First())
	})
}
