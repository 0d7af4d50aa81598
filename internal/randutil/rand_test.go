package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestResolveSeed(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(7), ResolveSeed(7))
	assert.NotZero(t, ResolveSeed(0))
}
