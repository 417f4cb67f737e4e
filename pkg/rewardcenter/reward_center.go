package rewardcenter

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/solana"
	rewardcenter_client "github.com/code-payments/reward-center/pkg/solana/rewardcenter"
	"github.com/code-payments/reward-center/pkg/solana/token"
)

func (p *Program) createRewardCenter(ctx *bank.InvokeContext) error {
	args, err := rewardcenter_client.CreateRewardCenterInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 10)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	mint := accounts[1]
	treasuryMint := accounts[2]
	associatedTokenAccount := accounts[3]
	auctionHouseInfo := accounts[4]
	rewardCenterInfo := accounts[5]

	if !wallet.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "wallet")
	}

	auctionHouse, err := loadAuctionHouse(auctionHouseInfo)
	if err != nil {
		return err
	}

	if !bytes.Equal(wallet.Key, auctionHouse.Authority) {
		return rewardcenter_client.ErrSignerNotAuthorized
	}
	if !bytes.Equal(treasuryMint.Key, auctionHouse.TreasuryMint) {
		return rewardcenter_client.ErrAuctionHouseTreasuryMismatch
	}

	var mintState token.Mint
	if !mint.IsOwnedBy(token.ProgramKey) || !mintState.Unmarshal(mint.Data) || !mintState.IsInitialized {
		return errors.Wrap(rewardcenter_client.ErrInvalidAccountData, "reward mint")
	}

	seeds := rewardcenter_client.RewardCenterSeeds(&rewardcenter_client.GetRewardCenterAddressArgs{
		AuctionHouse: auctionHouseInfo.Key,
	})
	bump, err := assertDerivedCanonical(ctx.ProgramID(), rewardCenterInfo.Key, seeds)
	if err != nil {
		return err
	}

	// The reward token account is owned by the reward center, which doesn't
	// need to exist yet for its address to be derived
	createAssociatedTokenAccount, address, err := token.CreateAssociatedTokenAccount(wallet.Key, rewardCenterInfo.Key, mint.Key)
	if err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidSeeds, err.Error())
	}
	if !bytes.Equal(address, associatedTokenAccount.Key) {
		return errors.Wrap(rewardcenter_client.ErrAddressMismatch, "associated token account")
	}
	if err := ctx.Invoke(createAssociatedTokenAccount); err != nil {
		return err
	}

	if err := createDerivedAccount(ctx, wallet, rewardCenterInfo, rewardcenter_client.RewardCenterAccountSize, seeds, bump); err != nil {
		return err
	}

	rewardCenter := &rewardcenter_client.RewardCenterAccount{
		TokenMint:    mint.Key,
		AuctionHouse: auctionHouseInfo.Key,
		RewardRules:  args.RewardRules,
		Bump:         bump,
	}
	rewardCenterInfo.Data = rewardCenter.Marshal()

	ctx.Log("Created reward center with %s", args.RewardRules)
	return nil
}

func (p *Program) editRewardCenter(ctx *bank.InvokeContext) error {
	args, err := rewardcenter_client.EditRewardCenterInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 3)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	auctionHouseInfo := accounts[1]
	rewardCenterInfo := accounts[2]

	if !wallet.IsSigner {
		return errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "wallet")
	}

	auctionHouse, err := loadAuctionHouse(auctionHouseInfo)
	if err != nil {
		return err
	}
	if !bytes.Equal(wallet.Key, auctionHouse.Authority) {
		return rewardcenter_client.ErrSignerNotAuthorized
	}

	rewardCenter, err := loadRewardCenter(rewardCenterInfo, auctionHouseInfo)
	if err != nil {
		return err
	}

	// Only the rules can change. The mint and auction house are fixed at
	// creation.
	rewardCenter.RewardRules = args.RewardRules
	rewardCenterInfo.Data = rewardCenter.Marshal()

	ctx.Log("Updated reward rules to %s", args.RewardRules)
	return nil
}
