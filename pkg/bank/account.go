package bank

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
	"github.com/code-payments/reward-center/pkg/solana/system"
)

// NativeLoader owns the accounts of builtin programs.
//
// Current key: NativeLoader1111111111111111111111111111111
var NativeLoader ed25519.PublicKey

func init() {
	var err error
	NativeLoader, err = base58.Decode("NativeLoader1111111111111111111111111111111")
	if err != nil {
		panic(err)
	}
}

// Account is the state of a ledger account as seen by programs.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      ed25519.PublicKey
	Executable bool
}

// AccountInfo is an account as passed to a program, with the privileges the
// calling instruction granted it. Changes made through the embedded Account
// are visible to every frame of the transaction.
type AccountInfo struct {
	Key        ed25519.PublicKey
	IsSigner   bool
	IsWritable bool

	*Account
}

func newEmptyAccount() *Account {
	return &Account{
		Owner: system.ProgramKey[:],
	}
}

func (a *Account) Clone() *Account {
	return &Account{
		Lamports:   a.Lamports,
		Data:       append([]byte{}, a.Data...),
		Owner:      append(ed25519.PublicKey{}, a.Owner...),
		Executable: a.Executable,
	}
}

func (a *Account) equal(other *Account) bool {
	return a.Lamports == other.Lamports &&
		a.Executable == other.Executable &&
		bytes.Equal(a.Owner, other.Owner) &&
		bytes.Equal(a.Data, other.Data)
}

// IsOwnedBy reports whether program owns the account.
func (a *Account) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

// IsEmpty reports whether the account has never been funded or has been
// closed: no lamports, no data and owned by the system program.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && a.IsOwnedBy(system.ProgramKey[:])
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

func toRecord(address ed25519.PublicKey, a *Account) *accounts.Record {
	return &accounts.Record{
		Address:    base58.Encode(address),
		Lamports:   a.Lamports,
		Owner:      base58.Encode(a.Owner),
		Executable: a.Executable,
		Data:       append([]byte{}, a.Data...),
	}
}

func fromRecord(r *accounts.Record) (*Account, error) {
	owner, err := base58.Decode(r.Owner)
	if err != nil {
		return nil, err
	}

	return &Account{
		Lamports:   r.Lamports,
		Data:       append([]byte{}, r.Data...),
		Owner:      owner,
		Executable: r.Executable,
	}, nil
}
