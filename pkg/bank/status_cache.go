package bank

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/code-payments/reward-center/pkg/solana"
)

const statusCacheFalsePositiveRate = 0.001

// statusCache remembers the signatures of committed transactions for as long
// as their blockhash is valid. The bloom filter answers the common case of a
// new signature without touching the exact set.
type statusCache struct {
	mu sync.Mutex

	capacity uint
	filter   *bloom.BloomFilter
	added    uint

	signatures  map[solana.Signature]struct{}
	byBlockhash map[solana.Blockhash][]solana.Signature
}

func newStatusCache(capacity uint) *statusCache {
	return &statusCache{
		capacity:    capacity,
		filter:      bloom.NewWithEstimates(capacity, statusCacheFalsePositiveRate),
		signatures:  make(map[solana.Signature]struct{}),
		byBlockhash: make(map[solana.Blockhash][]solana.Signature),
	}
}

func (c *statusCache) contains(sig solana.Signature) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filter.Test(sig[:]) {
		return false
	}

	_, ok := c.signatures[sig]
	return ok
}

func (c *statusCache) add(hash solana.Blockhash, sig solana.Signature) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.signatures[sig] = struct{}{}
	c.byBlockhash[hash] = append(c.byBlockhash[hash], sig)

	c.filter.Add(sig[:])
	c.added++

	if c.added > c.capacity {
		c.rebuild()
	}
}

// purge forgets every signature that referenced an expired blockhash.
func (c *statusCache) purge(hash solana.Blockhash) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sig := range c.byBlockhash[hash] {
		delete(c.signatures, sig)
	}
	delete(c.byBlockhash, hash)
}

// rebuild drops expired signatures from the filter. Must be called with mu
// held.
func (c *statusCache) rebuild() {
	size := c.capacity
	if live := uint(len(c.signatures)); 2*live > size {
		size = 2 * live
		c.capacity = size
	}

	c.filter = bloom.NewWithEstimates(size, statusCacheFalsePositiveRate)
	for sig := range c.signatures {
		c.filter.Add(sig[:])
	}
	c.added = uint(len(c.signatures))
}
