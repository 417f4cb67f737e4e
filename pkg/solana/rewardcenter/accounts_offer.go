package rewardcenter

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	OfferAccountSize = (8 + // discriminator
		32 + // reward_center
		32 + // buyer
		32 + // metadata
		8 + // price
		8 + // token_size
		8 + // created_at
		1) // bump
)

var OfferAccountDiscriminator = []byte{215, 88, 60, 71, 170, 162, 73, 229}

type OfferAccount struct {
	RewardCenter ed25519.PublicKey
	Buyer        ed25519.PublicKey
	Metadata     ed25519.PublicKey
	Price        uint64
	TokenSize    uint64
	CreatedAt    int64
	Bump         uint8
}

func (obj *OfferAccount) Marshal() []byte {
	data := make([]byte, OfferAccountSize)

	var offset int
	binary.PutDiscriminator(data[offset:], OfferAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.RewardCenter, &offset)
	binary.PutKey32(data[offset:], obj.Buyer, &offset)
	binary.PutKey32(data[offset:], obj.Metadata, &offset)
	binary.PutUint64(data[offset:], obj.Price, &offset)
	binary.PutUint64(data[offset:], obj.TokenSize, &offset)
	binary.PutInt64(data[offset:], obj.CreatedAt, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *OfferAccount) Unmarshal(data []byte) error {
	if len(data) < OfferAccountSize {
		return ErrInvalidAccountData
	}
	if !hasDiscriminator(data, OfferAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := len(OfferAccountDiscriminator)
	binary.GetKey32(data[offset:], &obj.RewardCenter, &offset)
	binary.GetKey32(data[offset:], &obj.Buyer, &offset)
	binary.GetKey32(data[offset:], &obj.Metadata, &offset)
	binary.GetUint64(data[offset:], &obj.Price, &offset)
	binary.GetUint64(data[offset:], &obj.TokenSize, &offset)
	binary.GetInt64(data[offset:], &obj.CreatedAt, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *OfferAccount) String() string {
	return fmt.Sprintf(
		"OfferAccount{reward_center=%s,buyer=%s,metadata=%s,price=%d,token_size=%d,created_at=%d,bump=%d}",
		base58.Encode(obj.RewardCenter),
		base58.Encode(obj.Buyer),
		base58.Encode(obj.Metadata),
		obj.Price,
		obj.TokenSize,
		obj.CreatedAt,
		obj.Bump,
	)
}
