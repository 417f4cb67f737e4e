package auctionhouse

import "fmt"

type AuctionHouseError uint32

const (
	// PublicKeyMismatch
	ErrPublicKeyMismatch AuctionHouseError = iota + 0x1770

	// InvalidMintAuthority
	ErrInvalidMintAuthority

	// UninitializedAccount
	ErrUninitializedAccount

	// IncorrectOwner
	ErrIncorrectOwner

	// PublicKeysShouldBeUnique
	ErrPublicKeysShouldBeUnique

	// StatementFalse
	ErrStatementFalse

	// NotRentExempt
	ErrNotRentExempt

	// NumericalOverflow
	ErrNumericalOverflow

	// Expected a sol account but got an spl token account instead
	ErrExpectedSolAccount

	// Cannot exchange sol for sol
	ErrCannotExchangeSOLForSol

	// If paying with sol, sol wallet must be signer
	ErrSOLWalletMustSign

	// Cannot take this action without auction house signing too
	ErrCannotTakeThisActionWithoutAuctionHouseSignOff

	// No payer present on this txn
	ErrNoPayerPresent

	// Derived key invalid
	ErrDerivedKeyInvalid

	// Metadata doesn't exist
	ErrMetadataDoesntExist

	// Invalid token amount
	ErrInvalidTokenAmount

	// Both parties need to agree to this sale
	ErrBothPartiesNeedToAgreeToSale

	// Cannot match free sales unless the auction house or seller signs off
	ErrCannotMatchFreeSalesWithoutAuctionHouseOrSellerSignoff

	// This sale requires a signer
	ErrSaleRequiresSigner

	// Old seller not initialized
	ErrOldSellerNotInitialized

	// Seller ata cannot have a delegate set
	ErrSellerATACannotHaveDelegate

	// Buyer ata cannot have a delegate set
	ErrBuyerATACannotHaveDelegate

	// No valid signer present
	ErrNoValidSignerPresent

	// BP must be less than or equal to 10000
	ErrInvalidBasisPoints

	// The trade state account does not exist
	ErrTradeStateDoesntExist

	// The trade state is not empty
	ErrTradeStateIsNotEmpty

	// The receipt is empty
	ErrReceiptIsEmpty

	// The instruction does not match
	ErrInstructionMismatch

	// Invalid Auctioneer for this Auction House instance.
	ErrInvalidAuctioneer

	// The Auctioneer does not have the correct scope for this action.
	ErrMissingAuctioneerScope

	// Must use auctioneer handler.
	ErrMustUseAuctioneerHandler

	// No Auctioneer program set.
	ErrNoAuctioneerProgramSet

	// Too many scopes.
	ErrTooManyScopes

	// Auction House already delegated.
	ErrAuctionHouseAlreadyDelegated

	// Bump seed not in hash map.
	ErrBumpSeedNotInHashMap

	// The instruction would drain the escrow below rent exemption threshold
	ErrEscrowUnderRentExemption

	// Invalid seeds or Auction House not delegated
	ErrInvalidSeedsOrAuctionHouseNotDelegated
)

var errorNames = []string{
	"PublicKeyMismatch",
	"InvalidMintAuthority",
	"UninitializedAccount",
	"IncorrectOwner",
	"PublicKeysShouldBeUnique",
	"StatementFalse",
	"NotRentExempt",
	"NumericalOverflow",
	"ExpectedSolAccount",
	"CannotExchangeSOLForSol",
	"SOLWalletMustSign",
	"CannotTakeThisActionWithoutAuctionHouseSignOff",
	"NoPayerPresent",
	"DerivedKeyInvalid",
	"MetadataDoesntExist",
	"InvalidTokenAmount",
	"BothPartiesNeedToAgreeToSale",
	"CannotMatchFreeSalesWithoutAuctionHouseOrSellerSignoff",
	"SaleRequiresSigner",
	"OldSellerNotInitialized",
	"SellerATACannotHaveDelegate",
	"BuyerATACannotHaveDelegate",
	"NoValidSignerPresent",
	"InvalidBasisPoints",
	"TradeStateDoesntExist",
	"TradeStateIsNotEmpty",
	"ReceiptIsEmpty",
	"InstructionMismatch",
	"InvalidAuctioneer",
	"MissingAuctioneerScope",
	"MustUseAuctioneerHandler",
	"NoAuctioneerProgramSet",
	"TooManyScopes",
	"AuctionHouseAlreadyDelegated",
	"BumpSeedNotInHashMap",
	"EscrowUnderRentExemption",
	"InvalidSeedsOrAuctionHouseNotDelegated",
}

func (e AuctionHouseError) Error() string {
	index := int(e) - int(ErrPublicKeyMismatch)
	if index >= 0 && index < len(errorNames) {
		return fmt.Sprintf("auction house error 0x%x: %s", uint32(e), errorNames[index])
	}
	return fmt.Sprintf("auction house error 0x%x", uint32(e))
}

func (e AuctionHouseError) Code() uint32 {
	return uint32(e)
}
