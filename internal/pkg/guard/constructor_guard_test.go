package guard_test

import (
	"errors"
	"testing"

	"intimacoes/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("batch must be created via NewBatch")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type fee struct {
		cents int
		guard guard.ConstructorGuard
	}
	errFeeNotConstructed := errors.New("fee must be created via newFee")

	newFee := func(cents int) (fee, error) {
		if cents < 0 {
			return fee{}, errors.New("fee cannot be negative")
		}
		return fee{cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("value_from_constructor_validates", func(t *testing.T) {
		f, err := newFee(300)

		require.NoError(t, err)
		require.NoError(t, f.guard.Validate(errFeeNotConstructed))
		assert.Equal(t, 300, f.cents)
	})

	t.Run("struct_literal_fails_validation", func(t *testing.T) {
		f := fee{cents: 300}

		require.ErrorIs(t, f.guard.Validate(errFeeNotConstructed), errFeeNotConstructed)
	})

	t.Run("copy_keeps_constructed_state", func(t *testing.T) {
		f, err := newFee(1)
		require.NoError(t, err)

		copied := f

		require.NoError(t, copied.guard.Validate(errFeeNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
