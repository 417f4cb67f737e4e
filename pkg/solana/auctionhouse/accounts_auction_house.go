package auctionhouse

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctionHouseAccountSize = (8 + // discriminator
		32 + // auction_house_fee_account
		32 + // auction_house_treasury
		32 + // treasury_withdrawal_destination
		32 + // fee_withdrawal_destination
		32 + // treasury_mint
		32 + // authority
		32 + // creator
		1 + // bump
		1 + // treasury_bump
		1 + // fee_payer_bump
		2 + // seller_fee_basis_points
		1 + // requires_sign_off
		1 + // can_change_sale_price
		1 + // escrow_payment_bump
		1 + // has_auctioneer
		32) // auctioneer_address
)

var AuctionHouseAccountDiscriminator = []byte{40, 108, 215, 107, 213, 85, 245, 48}

type AuctionHouseAccount struct {
	AuctionHouseFeeAccount        ed25519.PublicKey
	AuctionHouseTreasury          ed25519.PublicKey
	TreasuryWithdrawalDestination ed25519.PublicKey
	FeeWithdrawalDestination      ed25519.PublicKey
	TreasuryMint                  ed25519.PublicKey
	Authority                     ed25519.PublicKey
	Creator                       ed25519.PublicKey
	Bump                          uint8
	TreasuryBump                  uint8
	FeePayerBump                  uint8
	SellerFeeBasisPoints          uint16
	RequiresSignOff               bool
	CanChangeSalePrice            bool
	EscrowPaymentBump             uint8
	HasAuctioneer                 bool
	AuctioneerAddress             ed25519.PublicKey
}

func (obj *AuctionHouseAccount) Marshal() []byte {
	data := make([]byte, AuctionHouseAccountSize)

	var offset int
	binary.PutDiscriminator(data[offset:], AuctionHouseAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.AuctionHouseFeeAccount, &offset)
	binary.PutKey32(data[offset:], obj.AuctionHouseTreasury, &offset)
	binary.PutKey32(data[offset:], obj.TreasuryWithdrawalDestination, &offset)
	binary.PutKey32(data[offset:], obj.FeeWithdrawalDestination, &offset)
	binary.PutKey32(data[offset:], obj.TreasuryMint, &offset)
	binary.PutKey32(data[offset:], obj.Authority, &offset)
	binary.PutKey32(data[offset:], obj.Creator, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)
	binary.PutUint8(data[offset:], obj.TreasuryBump, &offset)
	binary.PutUint8(data[offset:], obj.FeePayerBump, &offset)
	binary.PutUint16(data[offset:], obj.SellerFeeBasisPoints, &offset)
	binary.PutBool(data[offset:], obj.RequiresSignOff, &offset)
	binary.PutBool(data[offset:], obj.CanChangeSalePrice, &offset)
	binary.PutUint8(data[offset:], obj.EscrowPaymentBump, &offset)
	binary.PutBool(data[offset:], obj.HasAuctioneer, &offset)
	binary.PutKey32(data[offset:], obj.AuctioneerAddress, &offset)

	return data
}

func (obj *AuctionHouseAccount) Unmarshal(data []byte) error {
	if len(data) < AuctionHouseAccountSize {
		return ErrInvalidAccountData
	}
	if !hasDiscriminator(data, AuctionHouseAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := len(AuctionHouseAccountDiscriminator)
	binary.GetKey32(data[offset:], &obj.AuctionHouseFeeAccount, &offset)
	binary.GetKey32(data[offset:], &obj.AuctionHouseTreasury, &offset)
	binary.GetKey32(data[offset:], &obj.TreasuryWithdrawalDestination, &offset)
	binary.GetKey32(data[offset:], &obj.FeeWithdrawalDestination, &offset)
	binary.GetKey32(data[offset:], &obj.TreasuryMint, &offset)
	binary.GetKey32(data[offset:], &obj.Authority, &offset)
	binary.GetKey32(data[offset:], &obj.Creator, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)
	binary.GetUint8(data[offset:], &obj.TreasuryBump, &offset)
	binary.GetUint8(data[offset:], &obj.FeePayerBump, &offset)
	binary.GetUint16(data[offset:], &obj.SellerFeeBasisPoints, &offset)
	binary.GetBool(data[offset:], &obj.RequiresSignOff, &offset)
	binary.GetBool(data[offset:], &obj.CanChangeSalePrice, &offset)
	binary.GetUint8(data[offset:], &obj.EscrowPaymentBump, &offset)
	binary.GetBool(data[offset:], &obj.HasAuctioneer, &offset)
	binary.GetKey32(data[offset:], &obj.AuctioneerAddress, &offset)

	return nil
}

func (obj *AuctionHouseAccount) String() string {
	return fmt.Sprintf(
		"AuctionHouseAccount{authority=%s,treasury_mint=%s,fee_account=%s,bump=%d,fee_payer_bump=%d,seller_fee_basis_points=%d,has_auctioneer=%v,auctioneer_address=%s}",
		base58.Encode(obj.Authority),
		base58.Encode(obj.TreasuryMint),
		base58.Encode(obj.AuctionHouseFeeAccount),
		obj.Bump,
		obj.FeePayerBump,
		obj.SellerFeeBasisPoints,
		obj.HasAuctioneer,
		base58.Encode(obj.AuctioneerAddress),
	)
}
