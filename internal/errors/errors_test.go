package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestWrap(t *testing.T) {
	t.Run("Success_KeepsChain", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "user not found")
		require.Error(t, wrapped)
		assert.Equal(t, "user not found: not found", wrapped.Error())
		assert.True(t, Is(wrapped, ErrNotFound))
	})

	t.Run("Success_NilStaysNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrConflict, "username %q taken", "alice")
	require.Error(t, wrapped)
	assert.Equal(t, `username "alice" taken: conflict`, wrapped.Error())
	assert.True(t, Is(wrapped, ErrConflict))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
}

func TestAs(t *testing.T) {
	wrapped := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.Msg)
}

func TestJoin(t *testing.T) {
	first := errors.New("first")
	joined := Join(first, nil, ErrForbidden)

	assert.True(t, Is(joined, first))
	assert.True(t, Is(joined, ErrForbidden))
	assert.NoError(t, Join(nil, nil))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, Is(a, b), "%v vs %v", a, b)
		}
	}
}
