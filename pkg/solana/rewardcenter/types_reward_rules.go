package rewardcenter

import (
	"fmt"

	"github.com/code-payments/reward-center/pkg/solana/binary"
)

type PayoutOperation uint8

const (
	PayoutOperationMultiple PayoutOperation = iota
	PayoutOperationDivide
)

func (o PayoutOperation) String() string {
	switch o {
	case PayoutOperationMultiple:
		return "multiple"
	case PayoutOperationDivide:
		return "divide"
	}
	return "unknown"
}

const RewardRulesSize = (1 + // mathematical_operand
	2 + // seller_reward_payout_basis_points
	1) // payout_numeral

// RewardRules parameterize seller and buyer reward payouts on a sale.
type RewardRules struct {
	MathematicalOperand           PayoutOperation
	SellerRewardPayoutBasisPoints uint16
	PayoutNumeral                 uint8
}

func putRewardRules(dst []byte, v *RewardRules, offset *int) {
	binary.PutUint8(dst, uint8(v.MathematicalOperand), offset)
	binary.PutUint16(dst[1:], v.SellerRewardPayoutBasisPoints, offset)
	binary.PutUint8(dst[3:], v.PayoutNumeral, offset)
}

func getRewardRules(src []byte, dst *RewardRules, offset *int) {
	var operand uint8
	binary.GetUint8(src, &operand, offset)
	binary.GetUint16(src[1:], &dst.SellerRewardPayoutBasisPoints, offset)
	binary.GetUint8(src[3:], &dst.PayoutNumeral, offset)
	dst.MathematicalOperand = PayoutOperation(operand)
}

func (r RewardRules) String() string {
	return fmt.Sprintf(
		"RewardRules{mathematical_operand=%s,seller_reward_payout_basis_points=%d,payout_numeral=%d}",
		r.MathematicalOperand,
		r.SellerRewardPayoutBasisPoints,
		r.PayoutNumeral,
	)
}
