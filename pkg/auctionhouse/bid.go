package auctionhouse

import (
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/solana"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/solana/token"
)

const tradeStateSize = 1

// Auctioneer handlers only support native SOL auction houses, so the escrow is
// a system account derived from the auction house and buyer wallet.

func escrowSeeds(auctionHouse, wallet *bank.AccountInfo) [][]byte {
	return auctionhouse_client.EscrowPaymentSeeds(&auctionhouse_client.GetEscrowPaymentAddressArgs{
		AuctionHouse: auctionHouse.Key,
		Wallet:       wallet.Key,
	})
}

func (p *Program) deposit(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.AuctioneerDepositInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 13)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	paymentAccount := accounts[1]
	escrow := accounts[3]

	auctionHouse, err := assertAuctioneer(&auctioneerAccounts{
		treasuryMint:        accounts[4],
		authority:           accounts[5],
		auctioneerAuthority: accounts[6],
		auctionHouse:        accounts[7],
		feeAccount:          accounts[8],
		auctioneerPda:       accounts[9],
	}, auctionhouse_client.AuthorityScopeDeposit)
	if err != nil {
		return err
	}

	if !wallet.IsSigner {
		return auctionhouse_client.ErrSOLWalletMustSign
	}

	if err := assertDerived(escrow.Key, args.EscrowPaymentBump, escrowSeeds(accounts[7], wallet)); err != nil {
		return err
	}

	balance := escrow.Lamports + args.Amount
	if balance < escrow.Lamports {
		return auctionhouse_client.ErrNumericalOverflow
	}
	rent := ctx.Rent()
	if balance < rent.MinimumBalance(uint64(len(escrow.Data))) {
		return auctionhouse_client.ErrEscrowUnderRentExemption
	}

	ctx.Log("Depositing %d lamports into escrow for auction house with fee %d bps", args.Amount, auctionHouse.SellerFeeBasisPoints)
	return ctx.Invoke(system.Transfer(paymentAccount.Key, escrow.Key, args.Amount))
}

func (p *Program) publicBuy(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.AuctioneerPublicBuyInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 16)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	paymentAccount := accounts[1]
	treasuryMint := accounts[3]
	tokenAccountInfo := accounts[4]
	escrow := accounts[6]
	auctionHouseInfo := accounts[9]
	feeAccount := accounts[10]
	tradeState := accounts[11]

	auctionHouse, err := assertAuctioneer(&auctioneerAccounts{
		treasuryMint:        treasuryMint,
		authority:           accounts[7],
		auctioneerAuthority: accounts[8],
		auctionHouse:        auctionHouseInfo,
		feeAccount:          feeAccount,
		auctioneerPda:       accounts[12],
	}, auctionhouse_client.AuthorityScopePublicBuy)
	if err != nil {
		return err
	}

	if !wallet.IsSigner {
		return auctionhouse_client.ErrSOLWalletMustSign
	}

	if args.TokenSize == 0 {
		return auctionhouse_client.ErrInvalidTokenAmount
	}

	tokenAccount, err := loadTokenAccount(tokenAccountInfo)
	if err != nil {
		return err
	}

	if err := assertDerived(escrow.Key, args.EscrowPaymentBump, escrowSeeds(auctionHouseInfo, wallet)); err != nil {
		return err
	}

	tradeStateSeeds := auctionhouse_client.TradeStateSeeds(&auctionhouse_client.GetTradeStateAddressArgs{
		Wallet:       wallet.Key,
		AuctionHouse: auctionHouseInfo.Key,
		TreasuryMint: treasuryMint.Key,
		TokenMint:    tokenAccount.Mint,
		Price:        args.BuyerPrice,
		TokenSize:    args.TokenSize,
	})
	if err := assertDerived(tradeState.Key, args.TradeStateBump, tradeStateSeeds); err != nil {
		return err
	}

	if escrow.Lamports < args.BuyerPrice {
		shortfall := args.BuyerPrice - escrow.Lamports
		if err := ctx.Invoke(system.Transfer(paymentAccount.Key, escrow.Key, shortfall)); err != nil {
			return err
		}
	}

	if tradeState.Lamports > 0 || len(tradeState.Data) > 0 {
		return auctionhouse_client.ErrTradeStateIsNotEmpty
	}

	feeAccountSeeds := auctionhouse_client.AuctionHouseFeeAccountSeeds(&auctionhouse_client.GetAuctionHouseFeeAccountAddressArgs{
		AuctionHouse: auctionHouseInfo.Key,
	})

	rent := ctx.Rent()
	err = ctx.InvokeSigned(
		system.CreateAccount(
			feeAccount.Key,
			tradeState.Key,
			auctionhouse_client.PROGRAM_ID,
			rent.MinimumBalance(tradeStateSize),
			tradeStateSize,
		),
		withBump(feeAccountSeeds, auctionHouse.FeePayerBump),
		withBump(tradeStateSeeds, args.TradeStateBump),
	)
	if err != nil {
		return err
	}
	tradeState.Data[0] = args.TradeStateBump

	return nil
}

func (p *Program) withdraw(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.AuctioneerWithdrawInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 13)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	receiptAccount := accounts[1]
	escrow := accounts[2]
	auctionHouseInfo := accounts[6]

	_, err = assertAuctioneer(&auctioneerAccounts{
		treasuryMint:        accounts[3],
		authority:           accounts[4],
		auctioneerAuthority: accounts[5],
		auctionHouse:        auctionHouseInfo,
		feeAccount:          accounts[7],
		auctioneerPda:       accounts[8],
	}, auctionhouse_client.AuthorityScopeWithdraw)
	if err != nil {
		return err
	}

	// Native funds can only be returned to the wallet that deposited them
	if err := assertKeysEqual(receiptAccount.Key, wallet.Key); err != nil {
		return err
	}

	seeds := escrowSeeds(auctionHouseInfo, wallet)
	if err := assertDerived(escrow.Key, args.EscrowPaymentBump, seeds); err != nil {
		return err
	}

	if escrow.Lamports < args.Amount {
		return errors.Wrapf(solana.InstructionErrorInsufficientFunds, "escrow holds %d lamports", escrow.Lamports)
	}
	remaining := escrow.Lamports - args.Amount
	rent := ctx.Rent()
	if remaining > 0 && remaining < rent.MinimumBalance(uint64(len(escrow.Data))) {
		return auctionhouse_client.ErrEscrowUnderRentExemption
	}

	return ctx.InvokeSigned(
		system.Transfer(escrow.Key, receiptAccount.Key, args.Amount),
		withBump(seeds, args.EscrowPaymentBump),
	)
}

func (p *Program) cancel(ctx *bank.InvokeContext) error {
	args, err := auctionhouse_client.AuctioneerCancelInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	accounts, err := requireAccounts(ctx, 10)
	if err != nil {
		return err
	}
	wallet := accounts[0]
	tokenAccountInfo := accounts[1]
	tokenMint := accounts[2]
	auctionHouseInfo := accounts[3]
	feeAccount := accounts[4]
	tradeState := accounts[5]

	auctionHouse, err := assertAuctioneer(&auctioneerAccounts{
		auctionHouse:        auctionHouseInfo,
		feeAccount:          feeAccount,
		authority:           accounts[6],
		auctioneerAuthority: accounts[7],
		auctioneerPda:       accounts[8],
	}, auctionhouse_client.AuthorityScopeCancel)
	if err != nil {
		return err
	}

	tokenAccount, err := loadTokenAccount(tokenAccountInfo)
	if err != nil {
		return err
	}
	if err := assertKeysEqual(tokenAccount.Mint, tokenMint.Key); err != nil {
		return err
	}

	// Both public bids and bids on a specific token account can be cancelled
	tradeStateArgs := &auctionhouse_client.GetTradeStateAddressArgs{
		Wallet:       wallet.Key,
		AuctionHouse: auctionHouseInfo.Key,
		TreasuryMint: auctionHouse.TreasuryMint,
		TokenMint:    tokenMint.Key,
		Price:        args.BuyerPrice,
		TokenSize:    args.TokenSize,
	}
	_, publicErr := solana.AssertDerivation(auctionhouse_client.PROGRAM_ID, tradeState.Key, auctionhouse_client.TradeStateSeeds(tradeStateArgs)...)
	if publicErr != nil {
		tradeStateArgs.TokenAccount = tokenAccountInfo.Key
		_, privateErr := solana.AssertDerivation(auctionhouse_client.PROGRAM_ID, tradeState.Key, auctionhouse_client.TradeStateSeeds(tradeStateArgs)...)
		if privateErr != nil {
			return errors.Wrap(auctionhouse_client.ErrDerivedKeyInvalid, "trade state")
		}
	}

	if tradeState.Lamports == 0 || !tradeState.IsOwnedBy(auctionhouse_client.PROGRAM_ID) {
		return auctionhouse_client.ErrTradeStateDoesntExist
	}

	if err := bank.MoveLamports(tradeState, feeAccount, tradeState.Lamports); err != nil {
		return err
	}
	tradeState.Data = nil
	tradeState.Owner = system.ProgramKey[:]

	return nil
}

func loadTokenAccount(info *bank.AccountInfo) (*token.Account, error) {
	if !info.IsOwnedBy(token.ProgramKey) {
		return nil, auctionhouse_client.ErrIncorrectOwner
	}

	var account token.Account
	if !account.Unmarshal(info.Data) || account.State == token.AccountStateUninitialized {
		return nil, auctionhouse_client.ErrUninitializedAccount
	}
	return &account, nil
}
