package auctionhouse

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/solana"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
)

// Program is an in process auction engine. It supports creating native SOL
// auction houses, delegating them to an auctioneer, and the auctioneer
// handlers for bids: deposit, public buy, withdraw and cancel.
type Program struct {
	log *logrus.Entry
}

func New() *Program {
	return &Program{
		log: logrus.StandardLogger().WithField("type", "auctionhouse/program"),
	}
}

// Register adds the program to the ledger at the auction house program address.
func Register(ctx context.Context, b *bank.Bank) error {
	return b.RegisterProgram(ctx, auctionhouse_client.PROGRAM_ID, New())
}

func (p *Program) Process(ctx *bank.InvokeContext) error {
	instructionType := auctionhouse_client.GetInstructionType(ctx.Data())
	if instructionType == auctionhouse_client.InstructionTypeUnknown {
		return solana.InstructionErrorInvalidInstructionData
	}

	ctx.Log("Instruction: %s", instructionType)

	var err error
	switch instructionType {
	case auctionhouse_client.InstructionTypeCreateAuctionHouse:
		err = p.createAuctionHouse(ctx)
	case auctionhouse_client.InstructionTypeDelegateAuctioneer:
		err = p.delegateAuctioneer(ctx)
	case auctionhouse_client.InstructionTypeAuctioneerDeposit:
		err = p.deposit(ctx)
	case auctionhouse_client.InstructionTypeAuctioneerPublicBuy:
		err = p.publicBuy(ctx)
	case auctionhouse_client.InstructionTypeAuctioneerWithdraw:
		err = p.withdraw(ctx)
	case auctionhouse_client.InstructionTypeAuctioneerCancel:
		err = p.cancel(ctx)
	}

	if err != nil {
		p.log.WithError(err).WithField("instruction", instructionType.String()).Debug("instruction rejected")
	}
	return err
}

func requireAccounts(ctx *bank.InvokeContext, n int) ([]*bank.AccountInfo, error) {
	accounts := ctx.Accounts()
	if len(accounts) < n {
		return nil, solana.InstructionErrorNotEnoughAccountKeys
	}
	return accounts, nil
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	return append(seeds, []byte{bump})
}

func loadAuctionHouse(info *bank.AccountInfo) (*auctionhouse_client.AuctionHouseAccount, error) {
	if !info.IsOwnedBy(auctionhouse_client.PROGRAM_ID) {
		return nil, auctionhouse_client.ErrIncorrectOwner
	}

	var auctionHouse auctionhouse_client.AuctionHouseAccount
	if err := auctionHouse.Unmarshal(info.Data); err != nil {
		return nil, solana.InstructionErrorInvalidAccountData
	}
	return &auctionHouse, nil
}

func assertKeysEqual(actual, expected ed25519.PublicKey) error {
	if !bytes.Equal(actual, expected) {
		return errors.Wrapf(
			auctionhouse_client.ErrPublicKeyMismatch,
			"%s (expected %s)",
			base58.Encode(actual),
			base58.Encode(expected),
		)
	}
	return nil
}

// assertDerived maps a failed derivation check to the engine's error code.
func assertDerived(claimed ed25519.PublicKey, bump uint8, seeds [][]byte) error {
	err := solana.AssertDerivationWithBump(auctionhouse_client.PROGRAM_ID, claimed, bump, seeds...)
	if err != nil {
		return errors.Wrap(auctionhouse_client.ErrDerivedKeyInvalid, err.Error())
	}
	return nil
}

// auctioneerAccounts are the accounts every auctioneer handler is passed to
// prove the call was delegated.
type auctioneerAccounts struct {
	auctionHouse        *bank.AccountInfo
	authority           *bank.AccountInfo
	auctioneerAuthority *bank.AccountInfo
	auctioneerPda       *bank.AccountInfo
	feeAccount          *bank.AccountInfo
	treasuryMint        *bank.AccountInfo
}

// assertAuctioneer checks that the auctioneer authority signed, that it's the
// auctioneer the auction house delegated to, and that it was granted scope.
// The auction house is returned on success.
func assertAuctioneer(accounts *auctioneerAccounts, scope auctionhouse_client.AuthorityScope) (*auctionhouse_client.AuctionHouseAccount, error) {
	auctionHouse, err := loadAuctionHouse(accounts.auctionHouse)
	if err != nil {
		return nil, err
	}

	if err := assertKeysEqual(accounts.authority.Key, auctionHouse.Authority); err != nil {
		return nil, err
	}
	if err := assertKeysEqual(accounts.feeAccount.Key, auctionHouse.AuctionHouseFeeAccount); err != nil {
		return nil, err
	}
	if accounts.treasuryMint != nil {
		if err := assertKeysEqual(accounts.treasuryMint.Key, auctionHouse.TreasuryMint); err != nil {
			return nil, err
		}
	}

	if !accounts.auctioneerAuthority.IsSigner {
		return nil, errors.Wrap(solana.InstructionErrorMissingRequiredSignature, "auctioneer authority")
	}

	if !auctionHouse.HasAuctioneer {
		return nil, auctionhouse_client.ErrNoAuctioneerProgramSet
	}
	if !bytes.Equal(auctionHouse.AuctioneerAddress, accounts.auctioneerPda.Key) {
		return nil, auctionhouse_client.ErrInvalidAuctioneer
	}

	_, err = solana.AssertDerivation(
		auctionhouse_client.PROGRAM_ID,
		accounts.auctioneerPda.Key,
		auctionhouse_client.AuctioneerSeeds(&auctionhouse_client.GetAuctioneerAddressArgs{
			AuctionHouse:        accounts.auctionHouse.Key,
			AuctioneerAuthority: accounts.auctioneerAuthority.Key,
		})...,
	)
	if err != nil {
		return nil, errors.Wrap(auctionhouse_client.ErrInvalidAuctioneer, err.Error())
	}

	if !accounts.auctioneerPda.IsOwnedBy(auctionhouse_client.PROGRAM_ID) {
		return nil, auctionhouse_client.ErrInvalidAuctioneer
	}
	var auctioneer auctionhouse_client.AuctioneerAccount
	if err := auctioneer.Unmarshal(accounts.auctioneerPda.Data); err != nil {
		return nil, auctionhouse_client.ErrInvalidAuctioneer
	}

	if !auctioneer.HasScope(scope) {
		return nil, errors.Wrapf(auctionhouse_client.ErrMissingAuctioneerScope, "scope %s not granted", scope)
	}

	return auctionHouse, nil
}
