package bank

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/system"
)

type systemProgram struct{}

func (systemProgram) Process(ctx *InvokeContext) error {
	ix := solana.Instruction{
		Program:  ctx.ProgramID(),
		Data:     ctx.Data(),
		Accounts: accountMetas(ctx.Accounts()),
	}

	command, err := system.GetCommand(ix.Data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	switch command {
	case system.CommandCreateAccount:
		decompiled, err := system.DecompileCreateAccount(ix)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}
		return createAccount(ctx, decompiled)
	case system.CommandTransfer:
		decompiled, err := system.DecompileTransfer(ix)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}
		return transfer(ctx, decompiled)
	case system.CommandAssign:
		decompiled, err := system.DecompileAssign(ix)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}
		return assign(ctx, decompiled)
	case system.CommandAllocate:
		decompiled, err := system.DecompileAllocate(ix)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}
		return allocate(ctx, decompiled)
	default:
		return errors.Wrapf(solana.InstructionErrorInvalidInstructionData, "unsupported system command %s", command)
	}
}

func createAccount(ctx *InvokeContext, args *system.DecompiledCreateAccount) error {
	funder, _ := ctx.Account(0)
	address, _ := ctx.Account(1)

	if !funder.IsSigner || !address.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	if address.Lamports > 0 || len(address.Data) > 0 || !address.IsOwnedBy(system.ProgramKey[:]) {
		ctx.Log("Create Account: account %s already in use", base58.Encode(address.Key))
		return system.ErrAccountAlreadyInUse
	}

	if args.Size > system.MaxPermittedDataLength {
		return system.ErrInvalidAccountDataLength
	}

	if funder.Lamports < args.Lamports {
		return system.ErrResultWithNegativeLamports
	}

	address.Data = make([]byte, args.Size)
	address.Owner = args.Owner
	return MoveLamports(funder, address, args.Lamports)
}

func transfer(ctx *InvokeContext, args *system.DecompiledTransfer) error {
	from, _ := ctx.Account(0)
	to, _ := ctx.Account(1)

	if !from.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	if len(from.Data) > 0 {
		return errors.Wrap(solana.InstructionErrorInvalidArgument, "transfer: from must not carry data")
	}

	if from.Lamports < args.Lamports {
		return system.ErrResultWithNegativeLamports
	}

	return MoveLamports(from, to, args.Lamports)
}

func assign(ctx *InvokeContext, args *system.DecompiledAssign) error {
	address, _ := ctx.Account(0)

	if address.IsOwnedBy(args.Owner) {
		return nil
	}

	if !address.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	address.Owner = args.Owner
	return nil
}

func allocate(ctx *InvokeContext, args *system.DecompiledAllocate) error {
	address, _ := ctx.Account(0)

	if !address.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	if len(address.Data) > 0 || !address.IsOwnedBy(system.ProgramKey[:]) {
		return system.ErrAccountAlreadyInUse
	}

	if args.Size > system.MaxPermittedDataLength {
		return system.ErrInvalidAccountDataLength
	}

	address.Data = make([]byte, args.Size)
	return nil
}

func accountMetas(infos []*AccountInfo) []solana.AccountMeta {
	metas := make([]solana.AccountMeta, len(infos))
	for i, info := range infos {
		metas[i] = solana.AccountMeta{
			PublicKey:  info.Key,
			IsSigner:   info.IsSigner,
			IsWritable: info.IsWritable,
		}
	}
	return metas
}
