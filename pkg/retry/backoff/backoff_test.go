package backoff

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(100 * time.Millisecond)

	for i := uint(1); i < 10; i++ {
		assert.Equal(t, 100*time.Millisecond, s(i))
	}
}

func TestExponential(t *testing.T) {
	s := Exponential(2*time.Second, 3.0)

	assert.Equal(t, 2*time.Second, s(1))
	assert.Equal(t, 6*time.Second, s(2))
	assert.Equal(t, 18*time.Second, s(3))
	assert.Equal(t, 54*time.Second, s(4))

	// Saturates rather than overflowing
	assert.EqualValues(t, math.MaxInt64, s(100))
	assert.EqualValues(t, math.MaxInt64, s(10_000))

	// Largest delay below the limit is still exact
	s = BinaryExponential(time.Nanosecond)
	assert.Equal(t, time.Duration(1<<62), s(63))
	assert.EqualValues(t, math.MaxInt64, s(64))
}

func TestBinaryExponential(t *testing.T) {
	s := BinaryExponential(10 * time.Millisecond)

	assert.Equal(t, 10*time.Millisecond, s(1))
	assert.Equal(t, 20*time.Millisecond, s(2))
	assert.Equal(t, 40*time.Millisecond, s(3))
	assert.Equal(t, 80*time.Millisecond, s(4))
}
