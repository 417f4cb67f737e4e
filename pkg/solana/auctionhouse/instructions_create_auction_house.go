package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	CreateAuctionHouseInstructionArgsSize = (1 + // bump
		1 + // fee_payer_bump
		1 + // treasury_bump
		2 + // seller_fee_basis_points
		1 + // requires_sign_off
		1) // can_change_sale_price
)

type CreateAuctionHouseInstructionArgs struct {
	Bump                 uint8
	FeePayerBump         uint8
	TreasuryBump         uint8
	SellerFeeBasisPoints uint16
	RequiresSignOff      bool
	CanChangeSalePrice   bool
}

type CreateAuctionHouseInstructionAccounts struct {
	Payer                         ed25519.PublicKey
	Authority                     ed25519.PublicKey
	TreasuryMint                  ed25519.PublicKey
	FeeWithdrawalDestination      ed25519.PublicKey
	TreasuryWithdrawalDestination ed25519.PublicKey
	AuctionHouse                  ed25519.PublicKey
	AuctionHouseFeeAccount        ed25519.PublicKey
	AuctionHouseTreasury          ed25519.PublicKey
}

func NewCreateAuctionHouseInstruction(
	accounts *CreateAuctionHouseInstructionAccounts,
	args *CreateAuctionHouseInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(createAuctionHouseInstructionDiscriminator)+CreateAuctionHouseInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], createAuctionHouseInstructionDiscriminator, &offset)
	binary.PutUint8(data[offset:], args.Bump, &offset)
	binary.PutUint8(data[offset:], args.FeePayerBump, &offset)
	binary.PutUint8(data[offset:], args.TreasuryBump, &offset)
	binary.PutUint16(data[offset:], args.SellerFeeBasisPoints, &offset)
	binary.PutBool(data[offset:], args.RequiresSignOff, &offset)
	binary.PutBool(data[offset:], args.CanChangeSalePrice, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TreasuryMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.FeeWithdrawalDestination,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TreasuryWithdrawalDestination,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouse,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouseFeeAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouseTreasury,
				IsWritable: true,
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

func CreateAuctionHouseInstructionArgsFromBinary(data []byte) (*CreateAuctionHouseInstructionArgs, error) {
	if !hasDiscriminator(data, createAuctionHouseInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(createAuctionHouseInstructionDiscriminator)+CreateAuctionHouseInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args CreateAuctionHouseInstructionArgs
	offset := len(createAuctionHouseInstructionDiscriminator)
	binary.GetUint8(data[offset:], &args.Bump, &offset)
	binary.GetUint8(data[offset:], &args.FeePayerBump, &offset)
	binary.GetUint8(data[offset:], &args.TreasuryBump, &offset)
	binary.GetUint16(data[offset:], &args.SellerFeeBasisPoints, &offset)
	binary.GetBool(data[offset:], &args.RequiresSignOff, &offset)
	binary.GetBool(data[offset:], &args.CanChangeSalePrice, &offset)

	return &args, nil
}
