package auctionhouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/testutil"
)

func TestInstructionArgs(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 16)

	createArgs := &CreateAuctionHouseInstructionArgs{
		Bump:                 255,
		FeePayerBump:         254,
		TreasuryBump:         253,
		SellerFeeBasisPoints: 500,
		CanChangeSalePrice:   true,
	}
	ix := NewCreateAuctionHouseInstruction(&CreateAuctionHouseInstructionAccounts{
		Payer:                         keys[0],
		Authority:                     keys[0],
		TreasuryMint:                  keys[1],
		FeeWithdrawalDestination:      keys[0],
		TreasuryWithdrawalDestination: keys[0],
		AuctionHouse:                  keys[2],
		AuctionHouseFeeAccount:        keys[3],
		AuctionHouseTreasury:          keys[4],
	}, createArgs)
	assert.Equal(t, InstructionTypeCreateAuctionHouse, GetInstructionType(ix.Data))
	require.Len(t, ix.Accounts, 12)
	assert.True(t, ix.Accounts[0].IsSigner)
	actualCreateArgs, err := CreateAuctionHouseInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, createArgs, actualCreateArgs)

	delegateArgs := &DelegateAuctioneerInstructionArgs{Scopes: AllAuthorityScopes}
	ix = NewDelegateAuctioneerInstruction(&DelegateAuctioneerInstructionAccounts{
		AuctionHouse:        keys[2],
		Authority:           keys[0],
		AuctioneerAuthority: keys[5],
		AhAuctioneerPda:     keys[6],
	}, delegateArgs)
	assert.Equal(t, InstructionTypeDelegateAuctioneer, GetInstructionType(ix.Data))
	actualDelegateArgs, err := DelegateAuctioneerInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, delegateArgs, actualDelegateArgs)
	_, err = DelegateAuctioneerInstructionArgsFromBinary(ix.Data[:len(ix.Data)-1])
	assert.Equal(t, ErrInvalidInstructionData, err)

	depositArgs := &AuctioneerDepositInstructionArgs{EscrowPaymentBump: 250, Amount: 7_000_000_000}
	ix = NewAuctioneerDepositInstruction(&AuctioneerDepositInstructionAccounts{
		Wallet:                 keys[7],
		PaymentAccount:         keys[7],
		TransferAuthority:      keys[7],
		EscrowPaymentAccount:   keys[8],
		TreasuryMint:           keys[1],
		Authority:              keys[0],
		AuctioneerAuthority:    keys[5],
		AuctionHouse:           keys[2],
		AuctionHouseFeeAccount: keys[3],
		AhAuctioneerPda:        keys[6],
	}, depositArgs)
	assert.Equal(t, InstructionTypeAuctioneerDeposit, GetInstructionType(ix.Data))
	require.Len(t, ix.Accounts, 13)
	assert.True(t, ix.Accounts[6].IsSigner)
	actualDepositArgs, err := AuctioneerDepositInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, depositArgs, actualDepositArgs)

	buyArgs := &AuctioneerPublicBuyInstructionArgs{TradeStateBump: 251, EscrowPaymentBump: 250, BuyerPrice: 7_000_000_000, TokenSize: 1}
	ix = NewAuctioneerPublicBuyInstruction(&AuctioneerPublicBuyInstructionAccounts{
		Wallet:                 keys[7],
		PaymentAccount:         keys[7],
		TransferAuthority:      keys[7],
		TreasuryMint:           keys[1],
		TokenAccount:           keys[9],
		Metadata:               keys[10],
		EscrowPaymentAccount:   keys[8],
		Authority:              keys[0],
		AuctioneerAuthority:    keys[5],
		AuctionHouse:           keys[2],
		AuctionHouseFeeAccount: keys[3],
		BuyerTradeState:        keys[11],
		AhAuctioneerPda:        keys[6],
	}, buyArgs)
	assert.Equal(t, InstructionTypeAuctioneerPublicBuy, GetInstructionType(ix.Data))
	require.Len(t, ix.Accounts, 16)
	actualBuyArgs, err := AuctioneerPublicBuyInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, buyArgs, actualBuyArgs)

	// Discriminators are not interchangeable
	_, err = AuctioneerWithdrawInstructionArgsFromBinary(ix.Data)
	assert.Equal(t, ErrInvalidInstructionData, err)

	withdrawArgs := &AuctioneerWithdrawInstructionArgs{EscrowPaymentBump: 250, Amount: 1}
	ix = NewAuctioneerWithdrawInstruction(&AuctioneerWithdrawInstructionAccounts{
		Wallet:                 keys[7],
		ReceiptAccount:         keys[7],
		EscrowPaymentAccount:   keys[8],
		TreasuryMint:           keys[1],
		Authority:              keys[0],
		AuctioneerAuthority:    keys[5],
		AuctionHouse:           keys[2],
		AuctionHouseFeeAccount: keys[3],
		AhAuctioneerPda:        keys[6],
	}, withdrawArgs)
	assert.Equal(t, InstructionTypeAuctioneerWithdraw, GetInstructionType(ix.Data))
	actualWithdrawArgs, err := AuctioneerWithdrawInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, withdrawArgs, actualWithdrawArgs)

	cancelArgs := &AuctioneerCancelInstructionArgs{BuyerPrice: 7_000_000_000, TokenSize: 1}
	ix = NewAuctioneerCancelInstruction(&AuctioneerCancelInstructionAccounts{
		Wallet:                 keys[7],
		TokenAccount:           keys[9],
		TokenMint:              keys[12],
		AuctionHouse:           keys[2],
		AuctionHouseFeeAccount: keys[3],
		TradeState:             keys[11],
		Authority:              keys[0],
		AuctioneerAuthority:    keys[5],
		AhAuctioneerPda:        keys[6],
	}, cancelArgs)
	assert.Equal(t, InstructionTypeAuctioneerCancel, GetInstructionType(ix.Data))
	require.Len(t, ix.Accounts, 10)
	actualCancelArgs, err := AuctioneerCancelInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, cancelArgs, actualCancelArgs)
	_, err = AuctioneerCancelInstructionArgsFromBinary(ix.Data[:12])
	assert.Equal(t, ErrInvalidInstructionData, err)

	assert.Equal(t, InstructionTypeUnknown, GetInstructionType([]byte{1, 2, 3}))
}

func TestErrorCodes(t *testing.T) {
	assert.EqualValues(t, 6000, ErrPublicKeyMismatch.Code())
	assert.EqualValues(t, 6008, ErrExpectedSolAccount.Code())
	assert.EqualValues(t, 6029, ErrMissingAuctioneerScope.Code())
	assert.EqualValues(t, 6031, ErrNoAuctioneerProgramSet.Code())
	assert.EqualValues(t, 6036, ErrInvalidSeedsOrAuctionHouseNotDelegated.Code())
	assert.Contains(t, ErrMissingAuctioneerScope.Error(), "MissingAuctioneerScope")
	assert.Equal(t, "auction house error 0x1", AuctionHouseError(1).Error())
}
