package rewardcenter

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/solana"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
	rewardcenter_client "github.com/code-payments/reward-center/pkg/solana/rewardcenter"
)

// boundAccounts are the accounts every offer instruction names to reach the
// auction house through the reward center.
type boundAccounts struct {
	treasuryMint  *bank.AccountInfo
	authority     *bank.AccountInfo
	rewardCenter  *bank.AccountInfo
	auctionHouse  *bank.AccountInfo
	feeAccount    *bank.AccountInfo
	auctioneerPda *bank.AccountInfo
}

// loadBound validates that the reward center is bound to the auction house,
// and that every auction house account matches what the auction house
// records or derives.
func loadBound(accts *boundAccounts) (*auctionhouse_client.AuctionHouseAccount, *rewardcenter_client.RewardCenterAccount, error) {
	auctionHouse, err := loadAuctionHouse(accts.auctionHouse)
	if err != nil {
		return nil, nil, err
	}

	if !bytes.Equal(accts.authority.Key, auctionHouse.Authority) {
		return nil, nil, errors.Wrap(rewardcenter_client.ErrAddressMismatch, "auction house authority")
	}
	if !bytes.Equal(accts.treasuryMint.Key, auctionHouse.TreasuryMint) {
		return nil, nil, rewardcenter_client.ErrAuctionHouseTreasuryMismatch
	}

	feeAccountSeeds := auctionhouse_client.AuctionHouseFeeAccountSeeds(&auctionhouse_client.GetAuctionHouseFeeAccountAddressArgs{
		AuctionHouse: accts.auctionHouse.Key,
	})
	if err := assertDerived(auctionhouse_client.PROGRAM_ID, accts.feeAccount.Key, auctionHouse.FeePayerBump, feeAccountSeeds); err != nil {
		return nil, nil, err
	}

	rewardCenter, err := loadRewardCenter(accts.rewardCenter, accts.auctionHouse)
	if err != nil {
		return nil, nil, err
	}

	auctioneerSeeds := auctionhouse_client.AuctioneerSeeds(&auctionhouse_client.GetAuctioneerAddressArgs{
		AuctionHouse:        accts.auctionHouse.Key,
		AuctioneerAuthority: accts.rewardCenter.Key,
	})
	if _, err := assertDerivedCanonical(auctionhouse_client.PROGRAM_ID, accts.auctioneerPda.Key, auctioneerSeeds); err != nil {
		return nil, nil, err
	}

	return auctionHouse, rewardCenter, nil
}

func assertEscrow(escrow, auctionHouse, wallet *bank.AccountInfo, bump uint8) error {
	seeds := auctionhouse_client.EscrowPaymentSeeds(&auctionhouse_client.GetEscrowPaymentAddressArgs{
		AuctionHouse: auctionHouse.Key,
		Wallet:       wallet.Key,
	})
	return assertDerived(auctionhouse_client.PROGRAM_ID, escrow.Key, bump, seeds)
}

func offerSeeds(wallet, metadata, rewardCenter *bank.AccountInfo) [][]byte {
	return rewardcenter_client.OfferSeeds(&rewardcenter_client.GetOfferAddressArgs{
		Wallet:       wallet.Key,
		Metadata:     metadata.Key,
		RewardCenter: rewardCenter.Key,
	})
}

func (p *Program) createOffer(ctx *bank.InvokeContext) error {
	args, err := rewardcenter_client.CreateOfferInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 18)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	offerInfo := accounts[1]
	paymentAccount := accounts[2]
	transferAuthority := accounts[3]
	tokenAccountInfo := accounts[5]
	metadata := accounts[6]
	escrow := accounts[7]
	bound := &boundAccounts{
		treasuryMint:  accounts[4],
		authority:     accounts[8],
		rewardCenter:  accounts[9],
		auctionHouse:  accounts[10],
		feeAccount:    accounts[11],
		auctioneerPda: accounts[13],
	}
	tradeState := accounts[12]

	if !wallet.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "wallet")
	}

	_, rewardCenter, err := loadBound(bound)
	if err != nil {
		return err
	}

	tokenAccount, err := loadTokenAccount(tokenAccountInfo)
	if err != nil {
		return err
	}

	if err := assertEscrow(escrow, bound.auctionHouse, wallet, args.EscrowPaymentBump); err != nil {
		return err
	}

	tradeStateSeeds := auctionhouse_client.TradeStateSeeds(&auctionhouse_client.GetTradeStateAddressArgs{
		Wallet:       wallet.Key,
		AuctionHouse: bound.auctionHouse.Key,
		TreasuryMint: bound.treasuryMint.Key,
		TokenMint:    tokenAccount.Mint,
		Price:        args.BuyerPrice,
		TokenSize:    args.TokenSize,
	})
	if err := assertDerived(auctionhouse_client.PROGRAM_ID, tradeState.Key, args.TradeStateBump, tradeStateSeeds); err != nil {
		return err
	}

	seeds := offerSeeds(wallet, metadata, bound.rewardCenter)
	bump, err := assertDerivedCanonical(ctx.ProgramID(), offerInfo.Key, seeds)
	if err != nil {
		return err
	}

	// Fails if an offer already lives at this address
	if err := createDerivedAccount(ctx, wallet, offerInfo, rewardcenter_client.OfferAccountSize, seeds, bump); err != nil {
		return err
	}

	clock := ctx.Clock()
	offer := &rewardcenter_client.OfferAccount{
		RewardCenter: bound.rewardCenter.Key,
		Buyer:        wallet.Key,
		Metadata:     metadata.Key,
		Price:        args.BuyerPrice,
		TokenSize:    args.TokenSize,
		CreatedAt:    clock.UnixTimestamp,
		Bump:         bump,
	}
	offerInfo.Data = offer.Marshal()

	if err := p.metadataValidator(ctx.Context()).Validate(metadata, tokenAccount); err != nil {
		return err
	}

	signer := rewardcenter_client.RewardCenterSignerSeeds(bound.auctionHouse.Key, rewardCenter.Bump)

	deposit := auctionhouse_client.NewAuctioneerDepositInstruction(
		&auctionhouse_client.AuctioneerDepositInstructionAccounts{
			Wallet:                 wallet.Key,
			PaymentAccount:         paymentAccount.Key,
			TransferAuthority:      transferAuthority.Key,
			EscrowPaymentAccount:   escrow.Key,
			TreasuryMint:           bound.treasuryMint.Key,
			Authority:              bound.authority.Key,
			AuctioneerAuthority:    bound.rewardCenter.Key,
			AuctionHouse:           bound.auctionHouse.Key,
			AuctionHouseFeeAccount: bound.feeAccount.Key,
			AhAuctioneerPda:        bound.auctioneerPda.Key,
		},
		&auctionhouse_client.AuctioneerDepositInstructionArgs{
			EscrowPaymentBump: args.EscrowPaymentBump,
			Amount:            args.BuyerPrice,
		},
	)
	if err := ctx.InvokeSigned(deposit, signer); err != nil {
		return err
	}

	publicBuy := auctionhouse_client.NewAuctioneerPublicBuyInstruction(
		&auctionhouse_client.AuctioneerPublicBuyInstructionAccounts{
			Wallet:                 wallet.Key,
			PaymentAccount:         paymentAccount.Key,
			TransferAuthority:      transferAuthority.Key,
			TreasuryMint:           bound.treasuryMint.Key,
			TokenAccount:           tokenAccountInfo.Key,
			Metadata:               metadata.Key,
			EscrowPaymentAccount:   escrow.Key,
			Authority:              bound.authority.Key,
			AuctioneerAuthority:    bound.rewardCenter.Key,
			AuctionHouse:           bound.auctionHouse.Key,
			AuctionHouseFeeAccount: bound.feeAccount.Key,
			BuyerTradeState:        tradeState.Key,
			AhAuctioneerPda:        bound.auctioneerPda.Key,
		},
		&auctionhouse_client.AuctioneerPublicBuyInstructionArgs{
			TradeStateBump:    args.TradeStateBump,
			EscrowPaymentBump: args.EscrowPaymentBump,
			BuyerPrice:        args.BuyerPrice,
			TokenSize:         args.TokenSize,
		},
	)
	return ctx.InvokeSigned(publicBuy, signer)
}

func (p *Program) closeOffer(ctx *bank.InvokeContext) error {
	args, err := rewardcenter_client.CloseOfferInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 19)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	offerInfo := accounts[1]
	tokenAccountInfo := accounts[3]
	receiptAccount := accounts[4]
	escrow := accounts[5]
	metadata := accounts[6]
	tokenMint := accounts[7]
	bound := &boundAccounts{
		treasuryMint:  accounts[2],
		authority:     accounts[8],
		rewardCenter:  accounts[9],
		auctionHouse:  accounts[10],
		feeAccount:    accounts[11],
		auctioneerPda: accounts[13],
	}
	tradeState := accounts[12]

	if !wallet.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "wallet")
	}

	_, rewardCenter, err := loadBound(bound)
	if err != nil {
		return err
	}

	bump, err := assertDerivedCanonical(ctx.ProgramID(), offerInfo.Key, offerSeeds(wallet, metadata, bound.rewardCenter))
	if err != nil {
		return err
	}

	if !offerInfo.IsOwnedBy(ctx.ProgramID()) {
		return errors.Wrap(solana.InstructionErrorIllegalOwner, "offer")
	}
	var offer rewardcenter_client.OfferAccount
	if err := offer.Unmarshal(offerInfo.Data); err != nil {
		return rewardcenter_client.ErrInvalidAccountData
	}
	if offer.Bump != bump {
		return errors.Wrapf(rewardcenter_client.ErrBumpMismatch, "offer bump %d (expected %d)", offer.Bump, bump)
	}

	if err := assertEscrow(escrow, bound.auctionHouse, wallet, args.EscrowPaymentBump); err != nil {
		return err
	}

	tokenAccount, err := loadTokenAccount(tokenAccountInfo)
	if err != nil {
		return err
	}
	if err := p.metadataValidator(ctx.Context()).Validate(metadata, tokenAccount); err != nil {
		return err
	}

	signer := rewardcenter_client.RewardCenterSignerSeeds(bound.auctionHouse.Key, rewardCenter.Bump)

	withdraw := auctionhouse_client.NewAuctioneerWithdrawInstruction(
		&auctionhouse_client.AuctioneerWithdrawInstructionAccounts{
			Wallet:                 wallet.Key,
			ReceiptAccount:         receiptAccount.Key,
			EscrowPaymentAccount:   escrow.Key,
			TreasuryMint:           bound.treasuryMint.Key,
			Authority:              bound.authority.Key,
			AuctioneerAuthority:    bound.rewardCenter.Key,
			AuctionHouse:           bound.auctionHouse.Key,
			AuctionHouseFeeAccount: bound.feeAccount.Key,
			AhAuctioneerPda:        bound.auctioneerPda.Key,
		},
		&auctionhouse_client.AuctioneerWithdrawInstructionArgs{
			EscrowPaymentBump: args.EscrowPaymentBump,
			Amount:            offer.Price,
		},
	)
	if err := ctx.InvokeSigned(withdraw, signer); err != nil {
		return err
	}

	cancel := auctionhouse_client.NewAuctioneerCancelInstruction(
		&auctionhouse_client.AuctioneerCancelInstructionAccounts{
			Wallet:                 wallet.Key,
			TokenAccount:           tokenAccountInfo.Key,
			TokenMint:              tokenMint.Key,
			AuctionHouse:           bound.auctionHouse.Key,
			AuctionHouseFeeAccount: bound.feeAccount.Key,
			TradeState:             tradeState.Key,
			Authority:              bound.authority.Key,
			AuctioneerAuthority:    bound.rewardCenter.Key,
			AhAuctioneerPda:        bound.auctioneerPda.Key,
		},
		&auctionhouse_client.AuctioneerCancelInstructionArgs{
			BuyerPrice: offer.Price,
			TokenSize:  offer.TokenSize,
		},
	)
	if err := ctx.InvokeSigned(cancel, signer); err != nil {
		return err
	}

	return closeAccount(offerInfo, wallet)
}
