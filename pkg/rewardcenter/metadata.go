package rewardcenter

import (
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/bank"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
	rewardcenter_client "github.com/code-payments/reward-center/pkg/solana/rewardcenter"
	"github.com/code-payments/reward-center/pkg/solana/token"
	"github.com/code-payments/reward-center/pkg/solana/tokenmetadata"
)

// MetadataValidator checks that a metadata account describes the item held
// in a token account.
type MetadataValidator interface {
	Validate(metadata *bank.AccountInfo, tokenAccount *token.Account) error
}

type tokenMetadataValidator struct{}

// NewTokenMetadataValidator returns a MetadataValidator that requires the
// metadata account to be the created metadata account of the token's mint.
func NewTokenMetadataValidator() MetadataValidator {
	return tokenMetadataValidator{}
}

func (tokenMetadataValidator) Validate(metadata *bank.AccountInfo, tokenAccount *token.Account) error {
	err := tokenmetadata.AssertMetadataValid(metadata.Key, metadata.Data, tokenAccount.Mint)
	switch err {
	case nil:
		return nil
	case tokenmetadata.ErrDerivedKeyInvalid:
		return errors.Wrap(auctionhouse_client.ErrDerivedKeyInvalid, "metadata")
	case tokenmetadata.ErrMetadataDoesntExist:
		return rewardcenter_client.ErrMetadataDoesntExist
	default:
		return err
	}
}

type passthroughValidator struct{}

// NewPassthroughValidator returns a MetadataValidator that accepts anything.
// It's only meant for local fixtures that don't carry metadata accounts.
func NewPassthroughValidator() MetadataValidator {
	return passthroughValidator{}
}

func (passthroughValidator) Validate(_ *bank.AccountInfo, _ *token.Account) error {
	return nil
}
