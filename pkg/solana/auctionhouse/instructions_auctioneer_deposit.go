package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctioneerDepositInstructionArgsSize = (1 + // escrow_payment_bump
		8) // amount
)

type AuctioneerDepositInstructionArgs struct {
	EscrowPaymentBump uint8
	Amount            uint64
}

type AuctioneerDepositInstructionAccounts struct {
	Wallet                 ed25519.PublicKey
	PaymentAccount         ed25519.PublicKey
	TransferAuthority      ed25519.PublicKey
	EscrowPaymentAccount   ed25519.PublicKey
	TreasuryMint           ed25519.PublicKey
	Authority              ed25519.PublicKey
	AuctioneerAuthority    ed25519.PublicKey
	AuctionHouse           ed25519.PublicKey
	AuctionHouseFeeAccount ed25519.PublicKey
	AhAuctioneerPda        ed25519.PublicKey
}

func NewAuctioneerDepositInstruction(
	accounts *AuctioneerDepositInstructionAccounts,
	args *AuctioneerDepositInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(auctioneerDepositInstructionDiscriminator)+AuctioneerDepositInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], auctioneerDepositInstructionDiscriminator, &offset)
	binary.PutUint8(data[offset:], args.EscrowPaymentBump, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Wallet,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.PaymentAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TransferAuthority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.EscrowPaymentAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TreasuryMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctioneerAuthority,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.AuctionHouse,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouseFeeAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AhAuctioneerPda,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func AuctioneerDepositInstructionArgsFromBinary(data []byte) (*AuctioneerDepositInstructionArgs, error) {
	if !hasDiscriminator(data, auctioneerDepositInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(auctioneerDepositInstructionDiscriminator)+AuctioneerDepositInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args AuctioneerDepositInstructionArgs
	offset := len(auctioneerDepositInstructionDiscriminator)
	binary.GetUint8(data[offset:], &args.EscrowPaymentBump, &offset)
	binary.GetUint64(data[offset:], &args.Amount, &offset)

	return &args, nil
}
