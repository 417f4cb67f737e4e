package accounts

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrInvalidRecord = errors.New("invalid account record")
)

// Record is the persisted state of a single ledger account. Accounts with zero
// lamports are never stored.
type Record struct {
	Address    string
	Lamports   uint64
	Owner      string
	Executable bool
	Data       []byte

	// Slot at which the account was last written
	Slot uint64
}

type Store interface {
	// Get gets an account by its base58 address. ErrNotFound is returned if
	// the account doesn't exist.
	Get(ctx context.Context, address string) (*Record, error)

	// GetMany gets the accounts that exist for the provided addresses. Missing
	// accounts are omitted from the result.
	GetMany(ctx context.Context, addresses ...string) ([]*Record, error)

	// Apply atomically writes updates and removes deletes at the provided slot.
	// Either every change is applied, or none are.
	Apply(ctx context.Context, slot uint64, updates []*Record, deletes []string) error

	// Count returns the number of stored accounts
	Count(ctx context.Context) (uint64, error)
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.Wrap(ErrInvalidRecord, "address is required")
	}

	if len(r.Owner) == 0 {
		return errors.Wrapf(ErrInvalidRecord, "%s: owner is required", r.Address)
	}

	if r.Lamports == 0 {
		return errors.Wrapf(ErrInvalidRecord, "%s: zero lamport accounts must be deleted", r.Address)
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Address:    r.Address,
		Lamports:   r.Lamports,
		Owner:      r.Owner,
		Executable: r.Executable,
		Data:       append([]byte{}, r.Data...),

		Slot: r.Slot,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Address = r.Address
	dst.Lamports = r.Lamports
	dst.Owner = r.Owner
	dst.Executable = r.Executable
	dst.Data = append([]byte{}, r.Data...)

	dst.Slot = r.Slot
}

// ValidateBatch checks an Apply batch before anything is written.
func ValidateBatch(updates []*Record, deletes []string) error {
	seen := make(map[string]struct{}, len(updates)+len(deletes))
	for _, update := range updates {
		if err := update.Validate(); err != nil {
			return err
		}

		if _, ok := seen[update.Address]; ok {
			return errors.Wrapf(ErrInvalidRecord, "%s: duplicate address in batch", update.Address)
		}
		seen[update.Address] = struct{}{}
	}

	for _, address := range deletes {
		if len(address) == 0 {
			return errors.Wrap(ErrInvalidRecord, "delete address is required")
		}

		if _, ok := seen[address]; ok {
			return errors.Wrapf(ErrInvalidRecord, "%s: duplicate address in batch", address)
		}
		seen[address] = struct{}{}
	}

	return nil
}
