package system

import "fmt"

// SystemError is a custom error code returned by the system program.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L14
type SystemError uint32

const (
	// An account with the same address already exists
	ErrAccountAlreadyInUse SystemError = iota

	// Account does not have enough SOL to perform the operation
	ErrResultWithNegativeLamports

	// Cannot assign account to this program id
	ErrInvalidProgramId

	// Cannot allocate account data of this length
	ErrInvalidAccountDataLength
)

func (e SystemError) Error() string {
	switch e {
	case ErrAccountAlreadyInUse:
		return "an account with the same address already exists"
	case ErrResultWithNegativeLamports:
		return "account does not have enough SOL to perform the operation"
	case ErrInvalidProgramId:
		return "cannot assign account to this program id"
	case ErrInvalidAccountDataLength:
		return "cannot allocate account data of this length"
	}
	return fmt.Sprintf("system error %d", uint32(e))
}

func (e SystemError) Code() uint32 {
	return uint32(e)
}
