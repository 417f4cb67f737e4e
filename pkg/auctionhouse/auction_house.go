package auctionhouse

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/solana"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/solana/token"
)

const maxBasisPoints = 10_000

func (p *Program) createAuctionHouse(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.CreateAuctionHouseInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 12)
	if err != nil {
		return err
	}
	payer := accounts[0]
	authority := accounts[1]
	treasuryMint := accounts[2]
	feeWithdrawalDestination := accounts[3]
	treasuryWithdrawalDestination := accounts[4]
	auctionHouseInfo := accounts[5]
	feeAccount := accounts[6]
	treasury := accounts[7]

	if !payer.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "payer")
	}

	if !bytes.Equal(treasuryMint.Key, token.NativeMint) {
		return errors.Wrapf(solana.InstructionErrorInvalidArgument, "unsupported treasury mint %s", base58.Encode(treasuryMint.Key))
	}

	if args.SellerFeeBasisPoints > maxBasisPoints {
		return auctionhouse_client.ErrInvalidBasisPoints
	}

	auctionHouseSeeds := auctionhouse_client.AuctionHouseSeeds(&auctionhouse_client.GetAuctionHouseAddressArgs{
		Authority:    authority.Key,
		TreasuryMint: treasuryMint.Key,
	})
	if err := assertDerived(auctionHouseInfo.Key, args.Bump, auctionHouseSeeds); err != nil {
		return err
	}

	feeAccountSeeds := auctionhouse_client.AuctionHouseFeeAccountSeeds(&auctionhouse_client.GetAuctionHouseFeeAccountAddressArgs{
		AuctionHouse: auctionHouseInfo.Key,
	})
	if err := assertDerived(feeAccount.Key, args.FeePayerBump, feeAccountSeeds); err != nil {
		return err
	}

	treasurySeeds := auctionhouse_client.AuctionHouseTreasurySeeds(&auctionhouse_client.GetAuctionHouseTreasuryAddressArgs{
		AuctionHouse: auctionHouseInfo.Key,
	})
	if err := assertDerived(treasury.Key, args.TreasuryBump, treasurySeeds); err != nil {
		return err
	}

	rent := ctx.Rent()
	err = ctx.InvokeSigned(
		system.CreateAccount(
			payer.Key,
			auctionHouseInfo.Key,
			auctionhouse_client.PROGRAM_ID,
			rent.MinimumBalance(auctionhouse_client.AuctionHouseAccountSize),
			auctionhouse_client.AuctionHouseAccountSize,
		),
		withBump(auctionHouseSeeds, args.Bump),
	)
	if err != nil {
		return err
	}

	auctionHouse := &auctionhouse_client.AuctionHouseAccount{
		AuctionHouseFeeAccount:        feeAccount.Key,
		AuctionHouseTreasury:          treasury.Key,
		TreasuryWithdrawalDestination: treasuryWithdrawalDestination.Key,
		FeeWithdrawalDestination:      feeWithdrawalDestination.Key,
		TreasuryMint:                  treasuryMint.Key,
		Authority:                     authority.Key,
		Creator:                       authority.Key,
		Bump:                          args.Bump,
		TreasuryBump:                  args.TreasuryBump,
		FeePayerBump:                  args.FeePayerBump,
		SellerFeeBasisPoints:          args.SellerFeeBasisPoints,
		RequiresSignOff:               args.RequiresSignOff,
		CanChangeSalePrice:            args.CanChangeSalePrice,
	}
	auctionHouseInfo.Data = auctionHouse.Marshal()

	return nil
}

func (p *Program) delegateAuctioneer(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.DelegateAuctioneerInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 5)
	if err != nil {
		return err
	}
	auctionHouseInfo := accounts[0]
	authority := accounts[1]
	auctioneerAuthority := accounts[2]
	auctioneerPda := accounts[3]

	if !authority.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "authority")
	}

	auctionHouse, err := loadAuctionHouse(auctionHouseInfo)
	if err != nil {
		return err
	}
	if err := assertKeysEqual(authority.Key, auctionHouse.Authority); err != nil {
		return err
	}

	if auctionHouse.HasAuctioneer {
		return auctionhouse_client.ErrAuctionHouseAlreadyDelegated
	}

	if len(args.Scopes) > auctionhouse_client.MaxNumScopes {
		return auctionhouse_client.ErrTooManyScopes
	}

	auctioneer := &auctionhouse_client.AuctioneerAccount{
		AuctioneerAuthority: auctioneerAuthority.Key,
		AuctionHouse:        auctionHouseInfo.Key,
	}
	for _, scope := range args.Scopes {
		if int(scope) >= auctionhouse_client.MaxNumScopes {
			return errors.Wrapf(solana.InstructionErrorInvalidInstructionData, "unknown scope %d", scope)
		}
		auctioneer.Scopes[scope] = true
	}

	auctioneerSeeds := auctionhouse_client.AuctioneerSeeds(&auctionhouse_client.GetAuctioneerAddressArgs{
		AuctionHouse:        auctionHouseInfo.Key,
		AuctioneerAuthority: auctioneerAuthority.Key,
	})
	bump, err := solana.AssertDerivation(auctionhouse_client.PROGRAM_ID, auctioneerPda.Key, auctioneerSeeds...)
	if err != nil {
		return errors.Wrap(auctionhouse_client.ErrInvalidSeedsOrAuctionHouseNotDelegated, err.Error())
	}
	auctioneer.Bump = bump

	rent := ctx.Rent()
	err = ctx.InvokeSigned(
		system.CreateAccount(
			authority.Key,
			auctioneerPda.Key,
			auctionhouse_client.PROGRAM_ID,
			rent.MinimumBalance(auctionhouse_client.AuctioneerAccountSize),
			auctionhouse_client.AuctioneerAccountSize,
		),
		withBump(auctioneerSeeds, bump),
	)
	if err != nil {
		return err
	}
	auctioneerPda.Data = auctioneer.Marshal()

	auctionHouse.HasAuctioneer = true
	auctionHouse.AuctioneerAddress = auctioneerPda.Key
	auctionHouseInfo.Data = auctionHouse.Marshal()

	return nil
}
