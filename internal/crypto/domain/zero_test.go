package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("clears every byte", func(t *testing.T) {
		b := []byte("secret123")
		Zero(b)
		assert.Equal(t, make([]byte, len("secret123")), b)
	})

	t.Run("clears a sub slice only", func(t *testing.T) {
		b := []byte("abcdef")
		Zero(b[:3])
		assert.True(t, bytes.Equal([]byte{0, 0, 0, 'd', 'e', 'f'}, b))
	})

	t.Run("nil slice", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
