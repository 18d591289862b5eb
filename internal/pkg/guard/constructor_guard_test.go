package guard_test

import (
	"errors"
	"testing"

	"schoolstore/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a guarded value object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Money struct {
		amount int64
		guard  guard.ConstructorGuard
	}

	errMoneyNotConstructed := errors.New("Money must be created via NewMoney")

	newMoney := func(amount int64) (Money, error) {
		if amount < 0 {
			return Money{}, errors.New("amount cannot be negative")
		}
		return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		money, err := newMoney(100)
		require.NoError(t, err)
		require.NoError(t, money.guard.Validate(errMoneyNotConstructed))
		assert.Equal(t, int64(100), money.amount)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var money Money // zero value
		err := money.guard.Validate(errMoneyNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errMoneyNotConstructed, err)
	})
}

func TestConstructorGuard_DefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
