package auctionhouse

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/code-payments/reward-center/pkg/solana"
)

var (
	AuctionHousePrefix = []byte("auction_house")
	FeePayerPrefix     = []byte("fee_payer")
	TreasuryPrefix     = []byte("treasury")
	AuctioneerPrefix   = []byte("auctioneer")
)

type GetAuctionHouseAddressArgs struct {
	Authority    ed25519.PublicKey
	TreasuryMint ed25519.PublicKey
}

func AuctionHouseSeeds(args *GetAuctionHouseAddressArgs) [][]byte {
	return [][]byte{
		AuctionHousePrefix,
		args.Authority,
		args.TreasuryMint,
	}
}

func GetAuctionHouseAddress(args *GetAuctionHouseAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AuctionHouseSeeds(args)...,
	)
}

type GetAuctionHouseFeeAccountAddressArgs struct {
	AuctionHouse ed25519.PublicKey
}

func AuctionHouseFeeAccountSeeds(args *GetAuctionHouseFeeAccountAddressArgs) [][]byte {
	return [][]byte{
		AuctionHousePrefix,
		args.AuctionHouse,
		FeePayerPrefix,
	}
}

func GetAuctionHouseFeeAccountAddress(args *GetAuctionHouseFeeAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AuctionHouseFeeAccountSeeds(args)...,
	)
}

type GetAuctionHouseTreasuryAddressArgs struct {
	AuctionHouse ed25519.PublicKey
}

func AuctionHouseTreasurySeeds(args *GetAuctionHouseTreasuryAddressArgs) [][]byte {
	return [][]byte{
		AuctionHousePrefix,
		args.AuctionHouse,
		TreasuryPrefix,
	}
}

func GetAuctionHouseTreasuryAddress(args *GetAuctionHouseTreasuryAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AuctionHouseTreasurySeeds(args)...,
	)
}

type GetEscrowPaymentAddressArgs struct {
	AuctionHouse ed25519.PublicKey
	Wallet       ed25519.PublicKey
}

func EscrowPaymentSeeds(args *GetEscrowPaymentAddressArgs) [][]byte {
	return [][]byte{
		AuctionHousePrefix,
		args.AuctionHouse,
		args.Wallet,
	}
}

func GetEscrowPaymentAddress(args *GetEscrowPaymentAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		EscrowPaymentSeeds(args)...,
	)
}

type GetAuctioneerAddressArgs struct {
	AuctionHouse        ed25519.PublicKey
	AuctioneerAuthority ed25519.PublicKey
}

func AuctioneerSeeds(args *GetAuctioneerAddressArgs) [][]byte {
	return [][]byte{
		AuctioneerPrefix,
		args.AuctionHouse,
		args.AuctioneerAuthority,
	}
}

func GetAuctioneerAddress(args *GetAuctioneerAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AuctioneerSeeds(args)...,
	)
}

// GetTradeStateAddressArgs identifies a bid. A nil TokenAccount identifies a
// public bid, which is open to any holder of the mint.
type GetTradeStateAddressArgs struct {
	Wallet       ed25519.PublicKey
	AuctionHouse ed25519.PublicKey
	TokenAccount ed25519.PublicKey
	TreasuryMint ed25519.PublicKey
	TokenMint    ed25519.PublicKey
	Price        uint64
	TokenSize    uint64
}

func TradeStateSeeds(args *GetTradeStateAddressArgs) [][]byte {
	price := make([]byte, 8)
	binary.LittleEndian.PutUint64(price, args.Price)
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, args.TokenSize)

	seeds := [][]byte{
		AuctionHousePrefix,
		args.Wallet,
		args.AuctionHouse,
	}
	if len(args.TokenAccount) > 0 {
		seeds = append(seeds, args.TokenAccount)
	}
	return append(seeds, args.TreasuryMint, args.TokenMint, price, size)
}

func GetTradeStateAddress(args *GetTradeStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		TradeStateSeeds(args)...,
	)
}
