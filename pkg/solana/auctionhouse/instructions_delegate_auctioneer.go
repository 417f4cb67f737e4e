package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

type DelegateAuctioneerInstructionArgs struct {
	Scopes []AuthorityScope
}

type DelegateAuctioneerInstructionAccounts struct {
	AuctionHouse        ed25519.PublicKey
	Authority           ed25519.PublicKey
	AuctioneerAuthority ed25519.PublicKey
	AhAuctioneerPda     ed25519.PublicKey
}

func NewDelegateAuctioneerInstruction(
	accounts *DelegateAuctioneerInstructionAccounts,
	args *DelegateAuctioneerInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(delegateAuctioneerInstructionDiscriminator)+4+len(args.Scopes))

	binary.PutDiscriminator(data[offset:], delegateAuctioneerInstructionDiscriminator, &offset)
	binary.PutUint32(data[offset:], uint32(len(args.Scopes)), &offset)
	for _, scope := range args.Scopes {
		binary.PutUint8(data[offset:], uint8(scope), &offset)
	}

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.AuctionHouse,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.AuctioneerAuthority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AhAuctioneerPda,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func DelegateAuctioneerInstructionArgsFromBinary(data []byte) (*DelegateAuctioneerInstructionArgs, error) {
	if !hasDiscriminator(data, delegateAuctioneerInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	offset := len(delegateAuctioneerInstructionDiscriminator)
	if len(data) < offset+4 {
		return nil, ErrInvalidInstructionData
	}

	var count uint32
	binary.GetUint32(data[offset:], &count, &offset)
	if uint64(len(data)-offset) < uint64(count) {
		return nil, ErrInvalidInstructionData
	}

	args := &DelegateAuctioneerInstructionArgs{
		Scopes: make([]AuthorityScope, count),
	}
	for i := range args.Scopes {
		var scope uint8
		binary.GetUint8(data[offset:], &scope, &offset)
		args.Scopes[i] = AuthorityScope(scope)
	}

	return args, nil
}
