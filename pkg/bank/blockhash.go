package bank

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/code-payments/reward-center/pkg/solana"
)

// maxRecentBlockhashes is how many slots a blockhash stays valid for.
const maxRecentBlockhashes = 150

type blockhashEntry struct {
	hash solana.Blockhash
	slot uint64
}

// blockhashQueue tracks the recent blockhashes a transaction may reference,
// oldest first.
type blockhashQueue struct {
	entries *doublylinkedlist.List
	bySlot  map[solana.Blockhash]uint64
}

func newBlockhashQueue(genesis solana.Blockhash) *blockhashQueue {
	q := &blockhashQueue{
		entries: doublylinkedlist.New(),
		bySlot:  make(map[solana.Blockhash]uint64),
	}
	q.push(genesis, 0)
	return q
}

// push registers a new blockhash, returning the one that fell out of the
// queue, if any.
func (q *blockhashQueue) push(hash solana.Blockhash, slot uint64) (evicted *solana.Blockhash) {
	q.entries.Add(&blockhashEntry{hash: hash, slot: slot})
	q.bySlot[hash] = slot

	if q.entries.Size() <= maxRecentBlockhashes {
		return nil
	}

	v, _ := q.entries.Get(0)
	q.entries.Remove(0)

	oldest := v.(*blockhashEntry)
	delete(q.bySlot, oldest.hash)
	return &oldest.hash
}

func (q *blockhashQueue) contains(hash solana.Blockhash) bool {
	_, ok := q.bySlot[hash]
	return ok
}

func (q *blockhashQueue) latest() solana.Blockhash {
	v, _ := q.entries.Get(q.entries.Size() - 1)
	return v.(*blockhashEntry).hash
}

// nextBlockhash chains the previous hash with the new slot.
func nextBlockhash(prev solana.Blockhash, slot uint64) solana.Blockhash {
	var slotBytes [8]byte
	binary.LittleEndian.PutUint64(slotBytes[:], slot)

	h := sha256.New()
	h.Write(prev[:])
	h.Write(slotBytes[:])

	var next solana.Blockhash
	copy(next[:], h.Sum(nil))
	return next
}
