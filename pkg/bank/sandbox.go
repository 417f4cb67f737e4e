package bank

import (
	"crypto/ed25519"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
)

// sandbox holds the working copies of every account a transaction loaded. The
// account store isn't touched until the sandbox is committed, so dropping a
// sandbox is all it takes to undo a failed transaction.
type sandbox struct {
	// base58 address -> *sandboxEntry, ordered so commits are deterministic
	entries *treemap.Map
}

type sandboxEntry struct {
	key       ed25519.PublicKey
	original  *Account
	current   *Account
	persisted bool
}

func newSandbox() *sandbox {
	return &sandbox{
		entries: treemap.NewWithStringComparator(),
	}
}

// load adds an account to the sandbox. Accounts that don't exist in the store
// are loaded as empty system accounts with persisted set to false.
func (s *sandbox) load(key ed25519.PublicKey, original *Account, persisted bool) {
	s.entries.Put(base58.Encode(key), &sandboxEntry{
		key:       key,
		original:  original,
		current:   original.Clone(),
		persisted: persisted,
	})
}

func (s *sandbox) get(key ed25519.PublicKey) (*Account, bool) {
	v, ok := s.entries.Get(base58.Encode(key))
	if !ok {
		return nil, false
	}
	return v.(*sandboxEntry).current, true
}

// persisted reports whether the account existed in the store when loaded.
func (s *sandbox) persisted(key ed25519.PublicKey) bool {
	v, ok := s.entries.Get(base58.Encode(key))
	return ok && v.(*sandboxEntry).persisted
}

// changed returns the entries whose state differs from what was loaded, in
// address order.
func (s *sandbox) changed() []*sandboxEntry {
	var res []*sandboxEntry
	it := s.entries.Iterator()
	for it.Next() {
		entry := it.Value().(*sandboxEntry)
		if !entry.current.equal(entry.original) {
			res = append(res, entry)
		}
	}
	return res
}

// diff computes the store changes for a commit. Accounts left without
// lamports are purged, so a closed account can't be revived by a later
// transaction that references it.
func (s *sandbox) diff() (updates []*accounts.Record, deletes []string) {
	for _, entry := range s.changed() {
		if entry.current.Lamports == 0 {
			if entry.persisted {
				deletes = append(deletes, base58.Encode(entry.key))
			}
			continue
		}

		updates = append(updates, toRecord(entry.key, entry.current))
	}
	return updates, deletes
}
