package rewardcenter

import (
	"crypto/ed25519"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

const (
	EditRewardCenterInstructionArgsSize = RewardRulesSize // reward_rules
)

type EditRewardCenterInstructionArgs struct {
	RewardRules RewardRules
}

type EditRewardCenterInstructionAccounts struct {
	Wallet       ed25519.PublicKey
	AuctionHouse ed25519.PublicKey
	RewardCenter ed25519.PublicKey
}

func NewEditRewardCenterInstruction(
	accounts *EditRewardCenterInstructionAccounts,
	args *EditRewardCenterInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(editRewardCenterInstructionDiscriminator)+EditRewardCenterInstructionArgsSize)

	binary.PutDiscriminator(data[offset:], editRewardCenterInstructionDiscriminator, &offset)
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
				PublicKey:  accounts.AuctionHouse,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.RewardCenter,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

func EditRewardCenterInstructionArgsFromBinary(data []byte) (*EditRewardCenterInstructionArgs, error) {
	if !hasDiscriminator(data, editRewardCenterInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < len(editRewardCenterInstructionDiscriminator)+EditRewardCenterInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args EditRewardCenterInstructionArgs
	offset := len(editRewardCenterInstructionDiscriminator)
	getRewardRules(data[offset:], &args.RewardRules, &offset)

	return &args, nil
}
