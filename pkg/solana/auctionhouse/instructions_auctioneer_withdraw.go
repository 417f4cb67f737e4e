package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctioneerWithdrawInstructionArgsSize = (1 + // escrow_payment_bump
		8) // amount
)

type AuctioneerWithdrawInstructionArgs struct {
	EscrowPaymentBump uint8
	Amount            uint64
}

type AuctioneerWithdrawInstructionAccounts struct {
	Wallet                 ed25519.PublicKey
	ReceiptAccount         ed25519.PublicKey
	EscrowPaymentAccount   ed25519.PublicKey
	TreasuryMint           ed25519.PublicKey
	Authority              ed25519.PublicKey
	AuctioneerAuthority    ed25519.PublicKey
	AuctionHouse           ed25519.PublicKey
	AuctionHouseFeeAccount ed25519.PublicKey
	AhAuctioneerPda        ed25519.PublicKey
}

func NewAuctioneerWithdrawInstruction(
	accounts *AuctioneerWithdrawInstructionAccounts,
	args *AuctioneerWithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(auctioneerWithdrawInstructionDiscriminator)+AuctioneerWithdrawInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], auctioneerWithdrawInstructionDiscriminator, &offset)
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
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ReceiptAccount,
				IsWritable: true,
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
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
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

func AuctioneerWithdrawInstructionArgsFromBinary(data []byte) (*AuctioneerWithdrawInstructionArgs, error) {
	if !hasDiscriminator(data, auctioneerWithdrawInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(auctioneerWithdrawInstructionDiscriminator)+AuctioneerWithdrawInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args AuctioneerWithdrawInstructionArgs
	offset := len(auctioneerWithdrawInstructionDiscriminator)
	binary.GetUint8(data[offset:], &args.EscrowPaymentBump, &offset)
	binary.GetUint64(data[offset:], &args.Amount, &offset)

	return &args, nil
}
