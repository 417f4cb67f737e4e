package rewardcenter

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/metrics"
	"github.com/code-payments/reward-center/pkg/solana"
	auctionhouse_client "github.com/code-payments/reward-center/pkg/solana/auctionhouse"
	rewardcenter_client "github.com/code-payments/reward-center/pkg/solana/rewardcenter"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/solana/token"
)

const (
	instructionProcessedMetricName = "RewardCenter/%s/processed"
	instructionFailedMetricName    = "RewardCenter/%s/failed"
)

// Program is the reward center: an auctioneer for an auction house that
// places and removes bids on a buyer's behalf, signing for the auction house
// with the reward center's derived address.
type Program struct {
	log       *logrus.Entry
	conf      *conf
	validator MetadataValidator
}

func New(configProvider ConfigProvider) *Program {
	return &Program{
		log:       logrus.StandardLogger().WithField("type", "rewardcenter/program"),
		conf:      configProvider(),
		validator: NewTokenMetadataValidator(),
	}
}

// Register adds the program to the ledger at the reward center program address.
func Register(ctx context.Context, b *bank.Bank, configProvider ConfigProvider) error {
	return b.RegisterProgram(ctx, rewardcenter_client.PROGRAM_ID, New(configProvider))
}

func (p *Program) Process(ctx *bank.InvokeContext) error {
	instructionType := rewardcenter_client.GetInstructionType(ctx.Data())
	if instructionType == rewardcenter_client.InstructionTypeUnknown {
		return solana.InstructionErrorInvalidInstructionData
	}

	ctx.Log("Instruction: %s", instructionType)

	var err error
	switch instructionType {
	case rewardcenter_client.InstructionTypeCreateRewardCenter:
		err = p.createRewardCenter(ctx)
	case rewardcenter_client.InstructionTypeEditRewardCenter:
		err = p.editRewardCenter(ctx)
	case rewardcenter_client.InstructionTypeCreateOffer:
		err = p.createOffer(ctx)
	case rewardcenter_client.InstructionTypeCloseOffer:
		err = p.closeOffer(ctx)
	case rewardcenter_client.InstructionTypeAttribute:
		err = p.attribute(ctx)
	}

	if err != nil {
		metrics.RecordCount(ctx.Context(), metricName(instructionFailedMetricName, instructionType), 1)
		p.log.WithError(err).WithField("instruction", instructionType.String()).Debug("instruction failed")
		return err
	}

	metrics.RecordCount(ctx.Context(), metricName(instructionProcessedMetricName, instructionType), 1)
	return nil
}

func metricName(format string, instructionType rewardcenter_client.InstructionType) string {
	return fmt.Sprintf(format, instructionType)
}

func (p *Program) metadataValidator(ctx context.Context) MetadataValidator {
	if p.conf.disableMetadataValidation.Get(ctx) {
		return NewPassthroughValidator()
	}
	return p.validator
}

func (p *Program) attribute(ctx *bank.InvokeContext) error {
	args, err := rewardcenter_client.AttributeInstructionArgsFromBinary(ctx.Data())
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	ctx.Log("Memo: %s", args.Memo)
	return nil
}

func requireAccounts(ctx *bank.InvokeContext, n int) ([]*bank.AccountInfo, error) {
	accounts := ctx.Accounts()
	if len(accounts) < n {
		return nil, solana.InstructionErrorNotEnoughAccountKeys
	}
	return accounts, nil
}

// derivationError maps a failed address check to a reward center error.
func derivationError(err error) error {
	switch {
	case errors.Is(err, solana.ErrBumpMismatch):
		return errors.Wrap(rewardcenter_client.ErrBumpMismatch, err.Error())
	case errors.Is(err, solana.ErrAddressMismatch):
		return errors.Wrap(rewardcenter_client.ErrAddressMismatch, err.Error())
	case errors.Is(err, solana.ErrBumpSeedNotFound):
		return rewardcenter_client.ErrBumpSeedNotInHashMap
	}
	return err
}

// assertDerived validates a caller supplied address and bump against seeds
// of program.
func assertDerived(program, claimed ed25519.PublicKey, bump uint8, seeds [][]byte) error {
	if err := solana.AssertDerivationWithBump(program, claimed, bump, seeds...); err != nil {
		return derivationError(err)
	}
	return nil
}

// assertDerivedCanonical validates a caller supplied address, returning the
// canonical bump it derives with.
func assertDerivedCanonical(program, claimed ed25519.PublicKey, seeds [][]byte) (uint8, error) {
	bump, err := solana.AssertDerivation(program, claimed, seeds...)
	if err != nil {
		return 0, derivationError(err)
	}
	return bump, nil
}

// loadAuctionHouse reads an auction house, checking it's owned by the auction
// house program and lives at its derived address.
func loadAuctionHouse(info *bank.AccountInfo) (*auctionhouse_client.AuctionHouseAccount, error) {
	if !info.IsOwnedBy(auctionhouse_client.PROGRAM_ID) {
		return nil, errors.Wrap(solana.InstructionErrorIncorrectProgramID, "auction house")
	}

	var auctionHouse auctionhouse_client.AuctionHouseAccount
	if err := auctionHouse.Unmarshal(info.Data); err != nil {
		return nil, rewardcenter_client.ErrInvalidAccountData
	}

	seeds := auctionhouse_client.AuctionHouseSeeds(&auctionhouse_client.GetAuctionHouseAddressArgs{
		Authority:    auctionHouse.Creator,
		TreasuryMint: auctionHouse.TreasuryMint,
	})
	if err := assertDerived(auctionhouse_client.PROGRAM_ID, info.Key, auctionHouse.Bump, seeds); err != nil {
		return nil, err
	}

	return &auctionHouse, nil
}

// loadRewardCenter reads the reward center bound to auctionHouse.
func loadRewardCenter(info, auctionHouse *bank.AccountInfo) (*rewardcenter_client.RewardCenterAccount, error) {
	if !info.IsOwnedBy(rewardcenter_client.PROGRAM_ID) {
		return nil, errors.Wrap(solana.InstructionErrorIncorrectProgramID, "reward center")
	}

	var rewardCenter rewardcenter_client.RewardCenterAccount
	if err := rewardCenter.Unmarshal(info.Data); err != nil {
		return nil, rewardcenter_client.ErrInvalidAccountData
	}

	seeds := rewardcenter_client.RewardCenterSeeds(&rewardcenter_client.GetRewardCenterAddressArgs{
		AuctionHouse: auctionHouse.Key,
	})
	if err := assertDerived(rewardcenter_client.PROGRAM_ID, info.Key, rewardCenter.Bump, seeds); err != nil {
		return nil, err
	}

	return &rewardCenter, nil
}

func loadTokenAccount(info *bank.AccountInfo) (*token.Account, error) {
	if !info.IsOwnedBy(token.ProgramKey) {
		return nil, errors.Wrap(solana.InstructionErrorIncorrectProgramID, "token account")
	}

	var account token.Account
	if !account.Unmarshal(info.Data) || account.State == token.AccountStateUninitialized {
		return nil, rewardcenter_client.ErrInvalidAccountData
	}
	return &account, nil
}

// createDerivedAccount allocates a rent exempt account owned by this program at
// an address derived from seeds and bump. The payer funds it.
//
// An address that already holds lamports is still claimable as long as it
// has no data and is owned by the system program: it is topped up to the
// rent exempt minimum, then allocated and assigned in place.
func createDerivedAccount(ctx *bank.InvokeContext, payer, account *bank.AccountInfo, size uint64, seeds [][]byte, bump uint8) error {
	rent := ctx.Rent()
	minimum := rent.MinimumBalance(size)
	signer := append(seeds, []byte{bump})

	if account.Lamports == 0 {
		return ctx.InvokeSigned(
			system.CreateAccount(payer.Key, account.Key, ctx.ProgramID(), minimum, size),
			signer,
		)
	}

	if account.Lamports < minimum {
		if err := ctx.Invoke(system.Transfer(payer.Key, account.Key, minimum-account.Lamports)); err != nil {
			return err
		}
	}

	// Allocate fails with AccountAlreadyInUse if the account is in use
	if err := ctx.InvokeSigned(system.Allocate(account.Key, size), signer); err != nil {
		return err
	}
	return ctx.InvokeSigned(system.Assign(account.Key, ctx.ProgramID()), signer)
}

// closeAccount reclaims an account owned by this program. Its lamports are
// drained to destination first, then its data is emptied, and only then is
// it handed back to the system program.
func closeAccount(account, destination *bank.AccountInfo) error {
	if err := bank.MoveLamports(account, destination, account.Lamports); err != nil {
		return err
	}
	account.Data = nil
	account.Owner = system.ProgramKey[:]
	return nil
}
