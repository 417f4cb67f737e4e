package rewardcenter

import (
	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/binary"
)

type AttributeInstructionArgs struct {
	Memo string
}

// NewAttributeInstruction annotates a transaction with a memo. It names no
// accounts.
func NewAttributeInstruction(args *AttributeInstructionArgs) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(attributeInstructionDiscriminator)+4+len(args.Memo))

	binary.PutDiscriminator(data[offset:], attributeInstructionDiscriminator, &offset)
	binary.PutString(data[offset:], args.Memo, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,
	}
}

func AttributeInstructionArgsFromBinary(data []byte) (*AttributeInstructionArgs, error) {
	if !hasDiscriminator(data, attributeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args AttributeInstructionArgs
	offset := len(attributeInstructionDiscriminator)
	if !binary.GetString(data[offset:], &args.Memo, &offset) {
		return nil, ErrInvalidInstructionData
	}

	return &args, nil
}
