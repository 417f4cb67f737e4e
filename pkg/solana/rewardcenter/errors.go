package rewardcenter

import "fmt"

type RewardCenterError uint32

const (
	// Bump seed not in hash map
	ErrBumpSeedNotInHashMap RewardCenterError = iota + 0x1770

	// Unauthorized signer
	ErrSignerNotAuthorized

	// Auction House treasury mint does not match
	ErrAuctionHouseTreasuryMismatch

	// Bump seed does not match the canonical bump
	ErrBumpMismatch

	// Derived address does not match the provided account
	ErrAddressMismatch

	// Metadata doesn't exist
	ErrMetadataDoesntExist

	// Unexpected account data
	ErrInvalidAccountData

	// Numerical overflow
	ErrNumericalOverflow
)

var errorNames = []string{
	"BumpSeedNotInHashMap",
	"SignerNotAuthorized",
	"AuctionHouseTreasuryMismatch",
	"BumpMismatch",
	"AddressMismatch",
	"MetadataDoesntExist",
	"InvalidAccountData",
	"NumericalOverflow",
}

func (e RewardCenterError) Error() string {
	index := int(e) - int(ErrBumpSeedNotInHashMap)
	if index >= 0 && index < len(errorNames) {
		return fmt.Sprintf("reward center error 0x%x: %s", uint32(e), errorNames[index])
	}
	return fmt.Sprintf("reward center error 0x%x", uint32(e))
}

func (e RewardCenterError) Code() uint32 {
	return uint32(e)
}
