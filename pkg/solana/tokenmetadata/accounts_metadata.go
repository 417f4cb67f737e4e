package tokenmetadata

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

// Key is the leading tag of every token metadata account.
type Key uint8

const (
	KeyUninitialized Key = iota
	KeyEditionV1
	KeyMasterEditionV1
	KeyReservationListV1
	KeyMetadataV1
)

const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxUriLength    = 200
)

const minMetadataAccountSize = (1 + // key
	32 + // update_authority
	32) // mint

// MetadataAccount is the leading portion of a metadata account. Creators,
// collection and edition fields that follow are not decoded.
type MetadataAccount struct {
	Key             Key
	UpdateAuthority ed25519.PublicKey
	Mint            ed25519.PublicKey
	Name            string
	Symbol          string
	Uri             string
}

func (obj *MetadataAccount) Marshal() []byte {
	data := make([]byte, minMetadataAccountSize+3*4+len(obj.Name)+len(obj.Symbol)+len(obj.Uri))

	var offset int
	binary.PutUint8(data[offset:], uint8(obj.Key), &offset)
	binary.PutKey32(data[offset:], obj.UpdateAuthority, &offset)
	binary.PutKey32(data[offset:], obj.Mint, &offset)
	binary.PutString(data[offset:], obj.Name, &offset)
	binary.PutString(data[offset:], obj.Symbol, &offset)
	binary.PutString(data[offset:], obj.Uri, &offset)

	return data
}

func (obj *MetadataAccount) Unmarshal(data []byte) error {
	if len(data) < minMetadataAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var key uint8
	binary.GetUint8(data[offset:], &key, &offset)
	if Key(key) != KeyMetadataV1 {
		return ErrInvalidAccountData
	}
	obj.Key = Key(key)

	binary.GetKey32(data[offset:], &obj.UpdateAuthority, &offset)
	binary.GetKey32(data[offset:], &obj.Mint, &offset)

	// Older fixtures only carry the fixed prefix
	if offset == len(data) {
		return nil
	}

	if !binary.GetString(data[offset:], &obj.Name, &offset) {
		return ErrInvalidAccountData
	}
	if !binary.GetString(data[offset:], &obj.Symbol, &offset) {
		return ErrInvalidAccountData
	}
	if !binary.GetString(data[offset:], &obj.Uri, &offset) {
		return ErrInvalidAccountData
	}

	return nil
}

func (obj *MetadataAccount) String() string {
	return fmt.Sprintf(
		"MetadataAccount{update_authority=%s,mint=%s,name=%q,symbol=%q}",
		base58.Encode(obj.UpdateAuthority),
		base58.Encode(obj.Mint),
		obj.Name,
		obj.Symbol,
	)
}
