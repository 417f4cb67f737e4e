package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctioneerCancelInstructionArgsSize = (8 + // buyer_price
		8) // token_size
)

type AuctioneerCancelInstructionArgs struct {
	BuyerPrice uint64
	TokenSize  uint64
}

type AuctioneerCancelInstructionAccounts struct {
	Wallet                 ed25519.PublicKey
	TokenAccount           ed25519.PublicKey
	TokenMint              ed25519.PublicKey
	AuctionHouse           ed25519.PublicKey
	AuctionHouseFeeAccount ed25519.PublicKey
	TradeState             ed25519.PublicKey
	Authority              ed25519.PublicKey
	AuctioneerAuthority    ed25519.PublicKey
	AhAuctioneerPda        ed25519.PublicKey
}

func NewAuctioneerCancelInstruction(
	accounts *AuctioneerCancelInstructionAccounts,
	args *AuctioneerCancelInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(auctioneerCancelInstructionDiscriminator)+AuctioneerCancelInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], auctioneerCancelInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.BuyerPrice, &offset)
	binary.PutUint64(data[offset:], args.TokenSize, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Wallet,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenMint,
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
				PublicKey:  accounts.AhAuctioneerPda,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func AuctioneerCancelInstructionArgsFromBinary(data []byte) (*AuctioneerCancelInstructionArgs, error) {
	if !hasDiscriminator(data, auctioneerCancelInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(auctioneerCancelInstructionDiscriminator)+AuctioneerCancelInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args AuctioneerCancelInstructionArgs
	offset := len(auctioneerCancelInstructionDiscriminator)
	binary.GetUint64(data[offset:], &args.BuyerPrice, &offset)
	binary.GetUint64(data[offset:], &args.TokenSize, &offset)

	return &args, nil
}
