package rewardcenter

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	RewardCenterAccountSize = (8 + // discriminator
		32 + // token_mint
		32 + // auction_house
		RewardRulesSize + // reward_rules
		1) // bump
)

var RewardCenterAccountDiscriminator = []byte{28, 31, 56, 90, 176, 54, 120, 105}

type RewardCenterAccount struct {
	TokenMint    ed25519.PublicKey
	AuctionHouse ed25519.PublicKey
	RewardRules  RewardRules
	Bump         uint8
}

func (obj *RewardCenterAccount) Marshal() []byte {
	data := make([]byte, RewardCenterAccountSize)

	var offset int
	binary.PutDiscriminator(data[offset:], RewardCenterAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.TokenMint, &offset)
	binary.PutKey32(data[offset:], obj.AuctionHouse, &offset)
	putRewardRules(data[offset:], &obj.RewardRules, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *RewardCenterAccount) Unmarshal(data []byte) error {
	if len(data) < RewardCenterAccountSize {
		return ErrInvalidAccountData
	}
	if !hasDiscriminator(data, RewardCenterAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := len(RewardCenterAccountDiscriminator)
	binary.GetKey32(data[offset:], &obj.TokenMint, &offset)
	binary.GetKey32(data[offset:], &obj.AuctionHouse, &offset)
	getRewardRules(data[offset:], &obj.RewardRules, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *RewardCenterAccount) String() string {
	return fmt.Sprintf(
		"RewardCenterAccount{token_mint=%s,auction_house=%s,reward_rules=%s,bump=%d}",
		base58.Encode(obj.TokenMint),
		base58.Encode(obj.AuctionHouse),
		obj.RewardRules,
		obj.Bump,
	)
}
