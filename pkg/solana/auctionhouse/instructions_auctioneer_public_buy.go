package auctionhouse

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctioneerPublicBuyInstructionArgsSize = (1 + // trade_state_bump
		1 + // escrow_payment_bump
		8 + // buyer_price
		8) // token_size
)

type AuctioneerPublicBuyInstructionArgs struct {
	TradeStateBump    uint8
	EscrowPaymentBump uint8
	BuyerPrice        uint64
	TokenSize         uint64
}

type AuctioneerPublicBuyInstructionAccounts struct {
	Wallet                 ed25519.PublicKey
	PaymentAccount         ed25519.PublicKey
	TransferAuthority      ed25519.PublicKey
	TreasuryMint           ed25519.PublicKey
	TokenAccount           ed25519.PublicKey
	Metadata               ed25519.PublicKey
	EscrowPaymentAccount   ed25519.PublicKey
	Authority              ed25519.PublicKey
	AuctioneerAuthority    ed25519.PublicKey
	AuctionHouse           ed25519.PublicKey
	AuctionHouseFeeAccount ed25519.PublicKey
	BuyerTradeState        ed25519.PublicKey
	AhAuctioneerPda        ed25519.PublicKey
}

func NewAuctioneerPublicBuyInstruction(
	accounts *AuctioneerPublicBuyInstructionAccounts,
	args *AuctioneerPublicBuyInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(auctioneerPublicBuyInstructionDiscriminator)+AuctioneerPublicBuyInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], auctioneerPublicBuyInstructionDiscriminator, &offset)
	binary.PutUint8(data[offset:], args.TradeStateBump, &offset)
	binary.PutUint8(data[offset:], args.EscrowPaymentBump, &offset)
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
				PublicKey:  accounts.TreasuryMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenAccount,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Metadata,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.EscrowPaymentAccount,
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
				PublicKey:  accounts.BuyerTradeState,
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

func AuctioneerPublicBuyInstructionArgsFromBinary(data []byte) (*AuctioneerPublicBuyInstructionArgs, error) {
	if !hasDiscriminator(data, auctioneerPublicBuyInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(auctioneerPublicBuyInstructionDiscriminator)+AuctioneerPublicBuyInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args AuctioneerPublicBuyInstructionArgs
	offset := len(auctioneerPublicBuyInstructionDiscriminator)
	binary.GetUint8(data[offset:], &args.TradeStateBump, &offset)
	binary.GetUint8(data[offset:], &args.EscrowPaymentBump, &offset)
	binary.GetUint64(data[offset:], &args.BuyerPrice, &offset)
	binary.GetUint64(data[offset:], &args.TokenSize, &offset)

	return &args, nil
}
