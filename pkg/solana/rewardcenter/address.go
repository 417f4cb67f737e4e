package rewardcenter

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
)

var (
	RewardCenterPrefix = []byte("reward_center")
	OfferPrefix        = []byte("offer")
)

type GetRewardCenterAddressArgs struct {
	AuctionHouse ed25519.PublicKey
}

func RewardCenterSeeds(args *GetRewardCenterAddressArgs) [][]byte {
	return [][]byte{
		RewardCenterPrefix,
		args.AuctionHouse,
	}
}

func GetRewardCenterAddress(args *GetRewardCenterAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		RewardCenterSeeds(args)...,
	)
}

// RewardCenterSignerSeeds are the seeds a reward center signs delegated calls
// with.
func RewardCenterSignerSeeds(auctionHouse ed25519.PublicKey, bump uint8) [][]byte {
	return append(RewardCenterSeeds(&GetRewardCenterAddressArgs{AuctionHouse: auctionHouse}), []byte{bump})
}

type GetOfferAddressArgs struct {
	Wallet       ed25519.PublicKey
	Metadata     ed25519.PublicKey
	RewardCenter ed25519.PublicKey
}

func OfferSeeds(args *GetOfferAddressArgs) [][]byte {
	return [][]byte{
		OfferPrefix,
		args.Wallet,
		args.Metadata,
		args.RewardCenter,
	}
}

func GetOfferAddress(args *GetOfferAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		OfferSeeds(args)...,
	)
}
