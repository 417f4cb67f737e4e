package bank

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"math/bits"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/system"
)

// Program is a program that runs on the ledger.
type Program interface {
	// Process executes a single instruction. Returning an error aborts the
	// entire transaction.
	Process(ctx *InvokeContext) error
}

// ProgramFunc adapts a function to a Program.
type ProgramFunc func(ctx *InvokeContext) error

func (f ProgramFunc) Process(ctx *InvokeContext) error {
	return f(ctx)
}

// txnContext is the state shared by every instruction frame of a transaction.
type txnContext struct {
	ctx      context.Context
	bank     *Bank
	sandbox  *sandbox
	clock    system.ClockAccount
	rent     system.RentAccount
	maxDepth int

	stack []ed25519.PublicKey
	logs  []string
}

func (t *txnContext) log(format string, args ...interface{}) {
	t.logs = append(t.logs, fmt.Sprintf(format, args...))
}

func (t *txnContext) execute(program ed25519.PublicKey, infos []*AccountInfo, data []byte) error {
	p, ok := t.bank.getProgram(program)
	if !ok {
		return solana.InstructionErrorUnsupportedProgramID
	}

	ictx := &InvokeContext{
		txn:      t,
		program:  program,
		accounts: infos,
		data:     data,
	}
	ictx.snapshot()

	t.stack = append(t.stack, program)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()

	t.log("Program %s invoke [%d]", base58.Encode(program), len(t.stack))

	err := p.Process(ictx)
	if err == nil {
		err = ictx.verify()
	}
	if err != nil {
		t.log("Program %s failed: %v", base58.Encode(program), err)
		return err
	}

	t.log("Program %s success", base58.Encode(program))
	return nil
}

type accountSnapshot struct {
	account  *Account
	writable bool
	pre      *Account
}

// InvokeContext is handed to a program for one instruction frame. It gives the
// program its accounts and instruction data, sysvars, logging, and delegated
// calls into other programs.
type InvokeContext struct {
	txn      *txnContext
	program  ed25519.PublicKey
	accounts []*AccountInfo
	data     []byte

	snapshots []*accountSnapshot
}

func (c *InvokeContext) Context() context.Context {
	return c.txn.ctx
}

func (c *InvokeContext) ProgramID() ed25519.PublicKey {
	return c.program
}

func (c *InvokeContext) Data() []byte {
	return c.data
}

func (c *InvokeContext) Accounts() []*AccountInfo {
	return c.accounts
}

// Account returns the account at index i of the instruction.
func (c *InvokeContext) Account(i int) (*AccountInfo, error) {
	if i < 0 || i >= len(c.accounts) {
		return nil, solana.InstructionErrorNotEnoughAccountKeys
	}
	return c.accounts[i], nil
}

func (c *InvokeContext) Clock() system.ClockAccount {
	return c.txn.clock
}

func (c *InvokeContext) Rent() system.RentAccount {
	return c.txn.rent
}

// StackHeight is 1 for top level instructions, and increments with each
// nested call.
func (c *InvokeContext) StackHeight() int {
	return len(c.txn.stack)
}

// Log appends a program log line to the transaction logs.
func (c *InvokeContext) Log(format string, args ...interface{}) {
	c.txn.log("Program log: "+format, args...)
}

// Invoke calls another program with the privileges of the current instruction.
func (c *InvokeContext) Invoke(ix solana.Instruction) error {
	return c.InvokeSigned(ix)
}

// InvokeSigned calls another program. Each seed set is derived against the
// calling program, and the resulting address signs for the duration of the
// call. Every account the callee names must be available to the caller, and
// no account can gain signer or writable privileges it didn't already have.
func (c *InvokeContext) InvokeSigned(ix solana.Instruction, signerSeeds ...[][]byte) error {
	if err := c.verify(); err != nil {
		return err
	}

	if len(c.txn.stack) >= c.txn.maxDepth {
		return solana.InstructionErrorCallDepth
	}

	// A program may call itself directly, but can't be re-entered through
	// another program
	if !bytes.Equal(c.txn.stack[len(c.txn.stack)-1], ix.Program) {
		for _, caller := range c.txn.stack {
			if bytes.Equal(caller, ix.Program) {
				return solana.InstructionErrorReentrancyNotAllowed
			}
		}
	}

	signers := make(map[string]struct{})
	for _, seeds := range signerSeeds {
		pda, err := solana.CreateProgramAddress(c.program, seeds...)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidSeeds, err.Error())
		}
		signers[string(pda)] = struct{}{}
	}

	programInfo := c.find(ix.Program)
	if programInfo == nil {
		return errors.Wrapf(solana.InstructionErrorMissingAccount, "program %s", base58.Encode(ix.Program))
	}
	if !programInfo.Executable {
		return solana.InstructionErrorAccountNotExecutable
	}

	infos := make([]*AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		callerInfo := c.find(meta.PublicKey)
		if callerInfo == nil {
			return errors.Wrapf(solana.InstructionErrorMissingAccount, "account %s", base58.Encode(meta.PublicKey))
		}

		_, isDerivedSigner := signers[string(meta.PublicKey)]
		if meta.IsSigner && !callerInfo.IsSigner && !isDerivedSigner {
			return errors.Wrapf(solana.InstructionErrorPrivilegeEscalation, "%s signer", base58.Encode(meta.PublicKey))
		}
		if meta.IsWritable && !callerInfo.IsWritable {
			return errors.Wrapf(solana.InstructionErrorPrivilegeEscalation, "%s writable", base58.Encode(meta.PublicKey))
		}

		infos[i] = &AccountInfo{
			Key:        meta.PublicKey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    callerInfo.Account,
		}
	}

	if err := c.txn.execute(ix.Program, infos, ix.Data); err != nil {
		return err
	}

	// The callee's changes are now the baseline for the rest of this frame
	c.snapshot()
	return nil
}

func (c *InvokeContext) find(key ed25519.PublicKey) *AccountInfo {
	var res *AccountInfo
	for _, info := range c.accounts {
		if !bytes.Equal(info.Key, key) {
			continue
		}

		if res == nil {
			res = &AccountInfo{Key: info.Key, Account: info.Account}
		}
		res.IsSigner = res.IsSigner || info.IsSigner
		res.IsWritable = res.IsWritable || info.IsWritable
	}
	return res
}

func (c *InvokeContext) snapshot() {
	c.snapshots = c.snapshots[:0]

	byAccount := make(map[*Account]*accountSnapshot)
	for _, info := range c.accounts {
		if s, ok := byAccount[info.Account]; ok {
			s.writable = s.writable || info.IsWritable
			continue
		}

		s := &accountSnapshot{
			account:  info.Account,
			writable: info.IsWritable,
			pre:      info.Account.Clone(),
		}
		byAccount[info.Account] = s
		c.snapshots = append(c.snapshots, s)
	}
}

// verify checks the changes made during this frame against the rules every
// program is held to.
func (c *InvokeContext) verify() error {
	var preHi, preLo, postHi, postLo, carry uint64
	for _, s := range c.snapshots {
		if err := verifyAccountChange(c.program, s.pre, s.account, s.writable); err != nil {
			return err
		}

		preLo, carry = bits.Add64(preLo, s.pre.Lamports, 0)
		preHi += carry
		postLo, carry = bits.Add64(postLo, s.account.Lamports, 0)
		postHi += carry
	}

	if preHi != postHi || preLo != postLo {
		return solana.InstructionErrorUnbalancedInstruction
	}
	return nil
}

func verifyAccountChange(program ed25519.PublicKey, pre, post *Account, writable bool) error {
	ownedByProgram := pre.IsOwnedBy(program)

	if !bytes.Equal(pre.Owner, post.Owner) {
		if !writable || !ownedByProgram || !isZeroed(post.Data) {
			return solana.InstructionErrorModifiedProgramID
		}
	}

	if pre.Executable != post.Executable {
		return solana.InstructionErrorExecutableModified
	}
	if pre.Executable {
		if pre.Lamports != post.Lamports {
			return solana.InstructionErrorExecutableLamportChange
		}
		if !bytes.Equal(pre.Data, post.Data) {
			return solana.InstructionErrorExecutableDataModified
		}
	}

	if pre.Lamports != post.Lamports {
		if !writable {
			return solana.InstructionErrorReadonlyLamportChange
		}
		if post.Lamports < pre.Lamports && !ownedByProgram {
			return solana.InstructionErrorExternalAccountLamportSpend
		}
	}

	if !bytes.Equal(pre.Data, post.Data) {
		if !writable {
			return solana.InstructionErrorReadonlyDataModified
		}
		if !ownedByProgram {
			return solana.InstructionErrorExternalAccountDataModified
		}
	}

	return nil
}

// MoveLamports moves amount lamports between two accounts. The debited account
// must be owned by the running program.
func MoveLamports(from, to *AccountInfo, amount uint64) error {
	if from.Lamports < amount {
		return solana.InstructionErrorInsufficientFunds
	}
	if to.Account != from.Account && to.Lamports+amount < to.Lamports {
		return solana.InstructionErrorArithmeticOverflow
	}

	from.Lamports -= amount
	to.Lamports += amount
	return nil
}
