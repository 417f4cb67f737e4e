package memory

import (
	"context"
	"sync"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
)

type store struct {
	mu      sync.RWMutex
	records map[string]*accounts.Record
}

// New returns a new in memory accounts.Store
func New() accounts.Store {
	return &store{
		records: make(map[string]*accounts.Record),
	}
}

// Get implements accounts.Store.Get
func (s *store) Get(_ context.Context, address string) (*accounts.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.records[address]
	if !ok {
		return nil, accounts.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetMany implements accounts.Store.GetMany
func (s *store) GetMany(_ context.Context, addresses ...string) ([]*accounts.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*accounts.Record
	for _, address := range addresses {
		item, ok := s.records[address]
		if !ok {
			continue
		}

		cloned := item.Clone()
		res = append(res, &cloned)
	}
	return res, nil
}

// Apply implements accounts.Store.Apply
func (s *store) Apply(_ context.Context, slot uint64, updates []*accounts.Record, deletes []string) error {
	if err := accounts.ValidateBatch(updates, deletes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, update := range updates {
		cloned := update.Clone()
		cloned.Slot = slot
		s.records[cloned.Address] = &cloned

		update.Slot = slot
	}

	for _, address := range deletes {
		delete(s.records, address)
	}

	return nil
}

// Count implements accounts.Store.Count
func (s *store) Count(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.records)), nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*accounts.Record)
}
