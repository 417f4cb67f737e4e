package auctionhouse

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	AuctioneerAccountSize = (8 + // discriminator
		32 + // auctioneer_authority
		32 + // auction_house
		MaxNumScopes + // scopes
		1) // bump
)

var AuctioneerAccountDiscriminator = []byte{46, 101, 92, 150, 138, 30, 245, 120}

type AuctioneerAccount struct {
	AuctioneerAuthority ed25519.PublicKey
	AuctionHouse        ed25519.PublicKey
	Scopes              [MaxNumScopes]bool
	Bump                uint8
}

// HasScope reports whether the auctioneer was granted scope.
func (obj *AuctioneerAccount) HasScope(scope AuthorityScope) bool {
	if int(scope) >= MaxNumScopes {
		return false
	}
	return obj.Scopes[scope]
}

func (obj *AuctioneerAccount) Marshal() []byte {
	data := make([]byte, AuctioneerAccountSize)

	var offset int
	binary.PutDiscriminator(data[offset:], AuctioneerAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.AuctioneerAuthority, &offset)
	binary.PutKey32(data[offset:], obj.AuctionHouse, &offset)
	for _, granted := range obj.Scopes {
		binary.PutBool(data[offset:], granted, &offset)
	}
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *AuctioneerAccount) Unmarshal(data []byte) error {
	if len(data) < AuctioneerAccountSize {
		return ErrInvalidAccountData
	}
	if !hasDiscriminator(data, AuctioneerAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := len(AuctioneerAccountDiscriminator)
	binary.GetKey32(data[offset:], &obj.AuctioneerAuthority, &offset)
	binary.GetKey32(data[offset:], &obj.AuctionHouse, &offset)
	for i := range obj.Scopes {
		binary.GetBool(data[offset:], &obj.Scopes[i], &offset)
	}
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *AuctioneerAccount) String() string {
	var scopes []string
	for i, granted := range obj.Scopes {
		if granted {
			scopes = append(scopes, AuthorityScope(i).String())
		}
	}

	return fmt.Sprintf(
		"AuctioneerAccount{auctioneer_authority=%s,auction_house=%s,scopes=%v,bump=%d}",
		base58.Encode(obj.AuctioneerAuthority),
		base58.Encode(obj.AuctionHouse),
		scopes,
		obj.Bump,
	)
}
