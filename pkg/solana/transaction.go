package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

var (
	ErrSignatureFailure     = errors.New("transaction did not pass signature verification")
	ErrMissingSignatures    = errors.New("transaction is missing signatures")
	ErrInvalidAccountIndex  = errors.New("transaction contains an invalid account reference")
	ErrTransactionMalformed = errors.New("transaction failed to sanitize")
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy Solana message. Address lookup tables aren't supported.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy message with the payer
// as the first signer.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}

	for _, i := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: i.Program,
			isProgram: true,
		})
		accounts = append(accounts, i.Accounts...)
	}

	// Sort the account meta's based on:
	//   1. Payer is always the first account / signer.
	//   2. All signers are before non-signers.
	//   3. Writable accounts before read-only accounts.
	//   4. Programs last
	accounts = filterUnique(accounts)
	sortAccountMetas(accounts)

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		if account.IsSigner {
			m.Header.NumSignatures++

			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		} else if !account.IsWritable {
			m.Header.NumReadOnly++
		}
	}

	for _, i := range instructions {
		c := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, i.Program)),
			Data:         i.Data,
		}

		for _, a := range i.Accounts {
			c.Accounts = append(c.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}

		m.Instructions = append(m.Instructions, c)
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Signature returns the first signature, which identifies the transaction.
func (t *Transaction) Signature() Signature {
	if len(t.Signatures) == 0 {
		return Signature{}
	}
	return t.Signatures[0]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

// validate checks the header's counts against the number of accounts. The fee
// payer is always a writable signer.
func (h Header) validate(accountLen int) error {
	switch {
	case h.NumSignatures == 0:
		return errors.Wrap(ErrTransactionMalformed, "no fee payer")
	case int(h.NumSignatures)+int(h.NumReadOnly) > accountLen:
		return errors.Wrap(ErrTransactionMalformed, "header exceeds account list")
	case h.NumReadonlySigned >= h.NumSignatures:
		return errors.Wrap(ErrTransactionMalformed, "fee payer must be writable")
	}
	return nil
}

// Sanitize validates the structure of the message: header counts, account
// uniqueness and instruction index bounds.
func (t *Transaction) Sanitize() error {
	m := t.Message

	if int(m.Header.NumSignatures) != len(t.Signatures) {
		return errors.Wrapf(ErrMissingSignatures, "expected %d signatures, got %d", m.Header.NumSignatures, len(t.Signatures))
	}
	if err := m.Header.validate(len(m.Accounts)); err != nil {
		return err
	}

	for i := range m.Accounts {
		if len(m.Accounts[i]) != ed25519.PublicKeySize {
			return errors.Wrapf(ErrTransactionMalformed, "account %d has invalid length", i)
		}
		for j := 0; j < i; j++ {
			if bytes.Equal(m.Accounts[i], m.Accounts[j]) {
				return errors.Wrapf(ErrTransactionMalformed, "account %s loaded twice", base58.Encode(m.Accounts[i]))
			}
		}
	}

	for i, c := range m.Instructions {
		if int(c.ProgramIndex) >= len(m.Accounts) || c.ProgramIndex == 0 {
			return errors.Wrapf(ErrInvalidAccountIndex, "instruction %d program index %d", i, c.ProgramIndex)
		}
		for _, index := range c.Accounts {
			if int(index) >= len(m.Accounts) {
				return errors.Wrapf(ErrInvalidAccountIndex, "instruction %d account index %d", i, index)
			}
		}
	}

	return nil
}

// VerifySignatures checks every required signature against the marshalled
// message.
func (t *Transaction) VerifySignatures() error {
	if len(t.Signatures) < int(t.Message.Header.NumSignatures) {
		return ErrMissingSignatures
	}

	messageBytes := t.Message.Marshal()
	for i := 0; i < int(t.Message.Header.NumSignatures); i++ {
		if !ed25519.Verify(t.Message.Accounts[i], messageBytes, t.Signatures[i][:]) {
			return errors.Wrapf(ErrSignatureFailure, "invalid signature for %s", base58.Encode(t.Message.Accounts[i]))
		}
	}
	return nil
}

// Payer returns the fee payer, which is always the first account.
func (m *Message) Payer() ed25519.PublicKey {
	if len(m.Accounts) == 0 {
		return nil
	}
	return m.Accounts[0]
}

// IsSigner reports whether the account at index signed the message.
func (m *Message) IsSigner(index int) bool {
	return index < int(m.Header.NumSignatures)
}

// IsWritable reports whether the account at index is writable according to the
// header layout.
func (m *Message) IsWritable(index int) bool {
	numSigned := int(m.Header.NumSignatures)
	if index < numSigned {
		return index < numSigned-int(m.Header.NumReadonlySigned)
	}
	return index < len(m.Accounts)-int(m.Header.NumReadOnly)
}

// DecompileInstructions expands the compiled instructions back into full
// instructions, with signer and writable flags taken from the header.
func (m *Message) DecompileInstructions() ([]Instruction, error) {
	instructions := make([]Instruction, len(m.Instructions))
	for i, c := range m.Instructions {
		if int(c.ProgramIndex) >= len(m.Accounts) {
			return nil, errors.Wrapf(ErrInvalidAccountIndex, "instruction %d", i)
		}

		accounts := make([]AccountMeta, len(c.Accounts))
		for j, index := range c.Accounts {
			if int(index) >= len(m.Accounts) {
				return nil, errors.Wrapf(ErrInvalidAccountIndex, "instruction %d", i)
			}

			accounts[j] = AccountMeta{
				PublicKey:  m.Accounts[index],
				IsSigner:   m.IsSigner(int(index)),
				IsWritable: m.IsWritable(int(index)),
			}
		}

		instructions[i] = Instruction{
			Program:  m.Accounts[c.ProgramIndex],
			Accounts: accounts,
			Data:     c.Data,
		}
	}
	return instructions, nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, s))
	}
	sb.WriteString("Message:\n")
	sb.WriteString("  Header:\n")
	sb.WriteString(fmt.Sprintf("    NumSignatures: %d\n", t.Message.Header.NumSignatures))
	sb.WriteString(fmt.Sprintf("    NumReadOnly: %d\n", t.Message.Header.NumReadOnly))
	sb.WriteString(fmt.Sprintf("    NumReadOnlySigned: %d\n", t.Message.Header.NumReadonlySigned))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s\n", i, base58.Encode(a)))
	}
	sb.WriteString("  Instructions:\n")
	for i := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d:\n", i))
		sb.WriteString(fmt.Sprintf("      ProgramIndex: %d\n", t.Message.Instructions[i].ProgramIndex))
		sb.WriteString(fmt.Sprintf("      Accounts: %v\n", t.Message.Instructions[i].Accounts))
		sb.WriteString(fmt.Sprintf("      Data: %v\n", t.Message.Instructions[i].Data))
	}
	return sb.String()
}

func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

	for _, account := range accounts {
		// Promote permissions when an account shows up more than once
		idx := -1
		for j := range filtered {
			if bytes.Equal(account.PublicKey, filtered[j].PublicKey) {
				idx = j
				break
			}
		}

		if idx < 0 {
			filtered = append(filtered, account)
			continue
		}
		filtered[idx].merge(account)
	}

	return filtered
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
