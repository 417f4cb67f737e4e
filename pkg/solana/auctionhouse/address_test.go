package auctionhouse

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/testutil"
)

func TestProgramAddress(t *testing.T) {
	assert.Equal(t, "hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk", base58.Encode(PROGRAM_ADDRESS))
}

func TestDerivedAddresses(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 5)
	authority, treasuryMint, wallet, tokenAccount, tokenMint := keys[0], keys[1], keys[2], keys[3], keys[4]

	auctionHouse, bump, err := GetAuctionHouseAddress(&GetAuctionHouseAddressArgs{
		Authority:    authority,
		TreasuryMint: treasuryMint,
	})
	require.NoError(t, err)
	require.NoError(t, solana.AssertDerivationWithBump(PROGRAM_ID, auctionHouse, bump, AuctionHousePrefix, authority, treasuryMint))

	feeAccount, _, err := GetAuctionHouseFeeAccountAddress(&GetAuctionHouseFeeAccountAddressArgs{AuctionHouse: auctionHouse})
	require.NoError(t, err)
	treasury, _, err := GetAuctionHouseTreasuryAddress(&GetAuctionHouseTreasuryAddressArgs{AuctionHouse: auctionHouse})
	require.NoError(t, err)
	escrow, _, err := GetEscrowPaymentAddress(&GetEscrowPaymentAddressArgs{AuctionHouse: auctionHouse, Wallet: wallet})
	require.NoError(t, err)
	auctioneer, _, err := GetAuctioneerAddress(&GetAuctioneerAddressArgs{AuctionHouse: auctionHouse, AuctioneerAuthority: wallet})
	require.NoError(t, err)

	publicBid := &GetTradeStateAddressArgs{
		Wallet:       wallet,
		AuctionHouse: auctionHouse,
		TreasuryMint: treasuryMint,
		TokenMint:    tokenMint,
		Price:        7_000_000_000,
		TokenSize:    1,
	}
	publicTradeState, _, err := GetTradeStateAddress(publicBid)
	require.NoError(t, err)
	assert.Len(t, TradeStateSeeds(publicBid), 7)

	privateBid := *publicBid
	privateBid.TokenAccount = tokenAccount
	privateTradeState, _, err := GetTradeStateAddress(&privateBid)
	require.NoError(t, err)
	assert.Len(t, TradeStateSeeds(&privateBid), 8)

	otherPrice := *publicBid
	otherPrice.Price++
	otherTradeState, _, err := GetTradeStateAddress(&otherPrice)
	require.NoError(t, err)

	unique := map[string]struct{}{}
	for _, addr := range [][]byte{auctionHouse, feeAccount, treasury, escrow, auctioneer, publicTradeState, privateTradeState, otherTradeState} {
		unique[base58.Encode(addr)] = struct{}{}
		assert.False(t, solana.IsOnCurve(addr))
	}
	assert.Len(t, unique, 8)
}
