package solana

import (
	"bytes"
	"crypto/ed25519"
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta names an account an instruction reads or writes, and the
// privileges it needs.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta returns a writable AccountMeta.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta returns a readonly AccountMeta.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey: pub,
		IsSigner:  isSigner,
	}
}

// merge promotes m to the union of both metas' privileges.
func (m *AccountMeta) merge(other AccountMeta) {
	m.IsSigner = m.IsSigner || other.IsSigner
	m.IsWritable = m.IsWritable || other.IsWritable
	m.isPayer = m.isPayer || other.isPayer
}

// rank orders metas within a message: the payer, then writable signers,
// readonly signers, writable accounts, readonly accounts and finally programs.
func (m AccountMeta) rank() int {
	switch {
	case m.isPayer:
		return 0
	case m.isProgram && !m.IsSigner && !m.IsWritable:
		return 5
	case m.IsSigner && m.IsWritable:
		return 1
	case m.IsSigner:
		return 2
	case m.IsWritable:
		return 3
	default:
		return 4
	}
}

// sortAccountMetas sorts metas into message order, breaking ties by key.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
func sortAccountMetas(accounts []AccountMeta) {
	sort.SliceStable(accounts, func(i, j int) bool {
		ri, rj := accounts[i].rank(), accounts[j].rank()
		if ri != rj {
			return ri < rj
		}
		return bytes.Compare(accounts[i].PublicKey, accounts[j].PublicKey) < 0
	})
}

// Instruction is a program invocation before it's compiled into a message.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// CompiledInstruction is an Instruction whose program and accounts are indexes
// into its message's account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
