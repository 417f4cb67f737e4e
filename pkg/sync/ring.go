package sync

import (
	"encoding/binary"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/spaolacci/murmur3"
)

// stripeRing consistently hashes keys onto a fixed number of stripes. Each
// stripe owns replicas points on the ring so keys spread evenly.
type stripeRing struct {
	points *treemap.Map

	// first is the stripe owning the lowest point, where lookups wrap to.
	// treemap.Map.Min is O(log n).
	first int
}

func newStripeRing(stripes, replicas uint) *stripeRing {
	points := treemap.NewWith(utils.Int64Comparator)

	var buf [8]byte
	for stripe := 0; stripe < int(stripes); stripe++ {
		for replica := 0; replica < int(replicas); replica++ {
			binary.LittleEndian.PutUint32(buf[:4], uint32(stripe))
			binary.LittleEndian.PutUint32(buf[4:], uint32(replica))
			points.Put(hashKey(buf[:]), stripe)
		}
	}

	r := &stripeRing{points: points}
	if _, first := points.Min(); first != nil {
		r.first = first.(int)
	}
	return r
}

// stripe returns the stripe owning the first point at or after the key's hash.
func (r *stripeRing) stripe(key []byte) int {
	if _, stripe := r.points.Ceiling(hashKey(key)); stripe != nil {
		return stripe.(int)
	}
	return r.first
}

func hashKey(key []byte) int64 {
	h, _ := murmur3.Sum128(key)
	return int64(h)
}
