package rewardcenter

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	CreateRewardCenterInstructionArgsSize = RewardRulesSize // reward_rules
)

type CreateRewardCenterInstructionArgs struct {
	RewardRules RewardRules
}

type CreateRewardCenterInstructionAccounts struct {
	Wallet                   ed25519.PublicKey
	Mint                     ed25519.PublicKey
	AuctionHouseTreasuryMint ed25519.PublicKey
	AssociatedTokenAccount   ed25519.PublicKey
	AuctionHouse             ed25519.PublicKey
	RewardCenter             ed25519.PublicKey
}

func NewCreateRewardCenterInstruction(
	accounts *CreateRewardCenterInstructionAccounts,
	args *CreateRewardCenterInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(createRewardCenterInstructionDiscriminator)+CreateRewardCenterInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], createRewardCenterInstructionDiscriminator, &offset)
	putRewardRules(data[offset:], &args.RewardRules, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Wallet,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouseTreasuryMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AssociatedTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuctionHouse,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.RewardCenter,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func CreateRewardCenterInstructionArgsFromBinary(data []byte) (*CreateRewardCenterInstructionArgs, error) {
	if !hasDiscriminator(data, createRewardCenterInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(createRewardCenterInstructionDiscriminator)+CreateRewardCenterInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args CreateRewardCenterInstructionArgs
	offset := len(createRewardCenterInstructionDiscriminator)
	getRewardRules(data[offset:], &args.RewardRules, &offset)

	return &args, nil
}
