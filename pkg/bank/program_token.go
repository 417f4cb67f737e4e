package bank

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/solana/token"
)

// tokenProgram supports the subset of the token program needed to hold reward
// tokens: initializing token accounts.
type tokenProgram struct{}

func (tokenProgram) Process(ctx *InvokeContext) error {
	ix := solana.Instruction{
		Program:  ctx.ProgramID(),
		Data:     ctx.Data(),
		Accounts: accountMetas(ctx.Accounts()),
	}

	command, err := token.GetCommand(ix)
	if err != nil {
		return token.ErrorInvalidInstruction
	}

	switch command {
	case token.CommandInitializeAccount:
		decompiled, err := token.DecompileInitializeAccount(ix)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}
		return initializeTokenAccount(ctx, decompiled)
	default:
		return errors.Wrapf(token.ErrorInvalidInstruction, "unsupported token command %d", command)
	}
}

func initializeTokenAccount(ctx *InvokeContext, args *token.DecompiledInitializeAccount) error {
	account, _ := ctx.Account(0)
	mint, _ := ctx.Account(1)

	if !account.IsOwnedBy(token.ProgramKey) {
		return solana.InstructionErrorIncorrectProgramID
	}
	if len(account.Data) != token.AccountSize {
		return solana.InstructionErrorInvalidAccountData
	}

	var existing token.Account
	if existing.Unmarshal(account.Data) && existing.State != token.AccountStateUninitialized {
		return token.ErrorAlreadyInUse
	}

	var mintState token.Mint
	if !mint.IsOwnedBy(token.ProgramKey) || !mintState.Unmarshal(mint.Data) || !mintState.IsInitialized {
		return token.ErrorInvalidMint
	}

	rent := ctx.Rent()
	reserve := rent.MinimumBalance(token.AccountSize)
	if account.Lamports < reserve {
		return token.ErrorNotRentExempt
	}

	initialized := token.Account{
		Mint:  args.Mint,
		Owner: args.Owner,
		State: token.AccountStateInitialized,
	}
	if bytes.Equal(args.Mint, token.NativeMint) {
		initialized.IsNative = &reserve
		initialized.Amount = account.Lamports - reserve
	}

	account.Data = initialized.Marshal()
	return nil
}

// associatedTokenProgram creates token accounts at the address derived from
// a wallet and mint.
type associatedTokenProgram struct{}

func (associatedTokenProgram) Process(ctx *InvokeContext) error {
	ix := solana.Instruction{
		Program:  ctx.ProgramID(),
		Data:     ctx.Data(),
		Accounts: accountMetas(ctx.Accounts()),
	}

	args, err := token.DecompileCreateAssociatedAccount(ix)
	if err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
	}

	expected, bump, err := token.GetAssociatedAccountAndBump(args.Owner, args.Mint)
	if err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidSeeds, err.Error())
	}
	if !bytes.Equal(expected, args.Address) {
		ctx.Log("Error: Associated address does not match seed derivation")
		return solana.InstructionErrorInvalidSeeds
	}

	associated, _ := ctx.Account(1)
	if args.Idempotent && associated.IsOwnedBy(token.ProgramKey) {
		var existing token.Account
		if existing.Unmarshal(associated.Data) && bytes.Equal(existing.Owner, args.Owner) && bytes.Equal(existing.Mint, args.Mint) {
			return nil
		}
		return solana.InstructionErrorIllegalOwner
	}

	rent := ctx.Rent()
	err = ctx.InvokeSigned(
		system.CreateAccount(
			args.Subsidizer,
			args.Address,
			token.ProgramKey,
			rent.MinimumBalance(token.AccountSize),
			token.AccountSize,
		),
		[][]byte{args.Owner, token.ProgramKey, args.Mint, {bump}},
	)
	if err != nil {
		return err
	}

	return ctx.Invoke(token.InitializeAccount(args.Address, args.Mint, args.Owner))
}

// ownerOnlyProgram exists so accounts can be owned by a program the ledger
// doesn't otherwise implement, like token metadata.
type ownerOnlyProgram struct {
	name string
}

func (p ownerOnlyProgram) Process(_ *InvokeContext) error {
	return errors.Wrapf(solana.InstructionErrorInvalidInstructionData, "%s instructions are not supported", p.name)
}
