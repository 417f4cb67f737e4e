package sync

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountKey(i int) ed25519.PublicKey {
	h := sha256.Sum256([]byte(fmt.Sprintf("account%d", i)))
	return h[:]
}

func TestStripeRing_Deterministic(t *testing.T) {
	a := newStripeRing(64, 200)
	b := newStripeRing(64, 200)

	for i := 0; i < 1024; i++ {
		key := accountKey(i)
		stripe := a.stripe(key)
		require.True(t, stripe >= 0 && stripe < 64)
		assert.Equal(t, stripe, a.stripe(key))
		assert.Equal(t, stripe, b.stripe(key))
	}
}

func TestStripeRing_Distribution(t *testing.T) {
	stripes := 5
	keys := 500_000
	marginOfError := 0.1
	expected := keys / stripes

	r := newStripeRing(uint(stripes), 200)

	hits := make(map[int]int)
	for i := 0; i < keys; i++ {
		hits[r.stripe(accountKey(i))]++
	}

	assert.Len(t, hits, stripes)
	for stripe, count := range hits {
		assert.True(t, math.Abs(float64(count-expected)) <= marginOfError*float64(expected), "stripe %d has %d keys", stripe, count)
	}
}

func TestStripeRing_SingleStripe(t *testing.T) {
	r := newStripeRing(1, 1)
	for i := 0; i < 128; i++ {
		assert.Equal(t, 0, r.stripe(accountKey(i)))
	}
}
