package rewardcenter

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	CloseOfferInstructionArgsSize = 1 // escrow_payment_bump
)

type CloseOfferInstructionArgs struct {
	EscrowPaymentBump uint8
}

type CloseOfferInstructionAccounts struct {
	Wallet                 ed25519.PublicKey
	Offer                  ed25519.PublicKey
	TreasuryMint           ed25519.PublicKey
	TokenAccount           ed25519.PublicKey
	ReceiptAccount         ed25519.PublicKey
	EscrowPaymentAccount   ed25519.PublicKey
	Metadata               ed25519.PublicKey
	TokenMint              ed25519.PublicKey
	Authority              ed25519.PublicKey
	RewardCenter           ed25519.PublicKey
	AuctionHouse           ed25519.PublicKey
	AuctionHouseFeeAccount ed25519.PublicKey
	TradeState             ed25519.PublicKey
	AhAuctioneerPda        ed25519.PublicKey
}

func NewCloseOfferInstruction(
	accounts *CloseOfferInstructionAccounts,
	args *CloseOfferInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(closeOfferInstructionDiscriminator)+CloseOfferInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], closeOfferInstructionDiscriminator, &offset)
	binary.PutUint8(data[offset:], args.EscrowPaymentBump, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Wallet,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Offer,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TreasuryMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenAccount,
				IsWritable: true,
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
				PublicKey:  accounts.Metadata,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.RewardCenter,
				IsWritable: false,
				IsSigner:   false,
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
				PublicKey:  accounts.TradeState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AhAuctioneerPda,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  AUCTION_HOUSE_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
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

func CloseOfferInstructionArgsFromBinary(data []byte) (*CloseOfferInstructionArgs, error) {
	if !hasDiscriminator(data, closeOfferInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(closeOfferInstructionDiscriminator)+CloseOfferInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args CloseOfferInstructionArgs
	offset := len(closeOfferInstructionDiscriminator)
	binary.GetUint8(data[offset:], &args.EscrowPaymentBump, &offset)

	return &args, nil
}
