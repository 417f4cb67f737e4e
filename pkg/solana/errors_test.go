package solana

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProgramError uint32

func (e testProgramError) Error() string { return "test program error" }
func (e testProgramError) Code() uint32  { return uint32(e) }

func TestInstructionError_Custom(t *testing.T) {
	programErr := testProgramError(6001)

	e := TransactionErrorFromInstructionError(&InstructionError{
		Index: 2,
		Err:   errors.Wrap(programErr, "signer check"),
	})

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	require.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(6001), *e.InstructionError().CustomError())

	var err error = e
	assert.True(t, errors.Is(err, programErr))
	assert.False(t, errors.Is(err, testProgramError(6002)))
	assert.Contains(t, err.Error(), "Error processing Instruction 2")
}

func TestInstructionError_Builtin(t *testing.T) {
	e := TransactionErrorFromInstructionError(&InstructionError{
		Index: 0,
		Err:   errors.Wrap(InstructionErrorMissingRequiredSignature, "wallet"),
	})

	assert.Equal(t, InstructionErrorMissingRequiredSignature, e.InstructionError().ErrorKey())
	assert.Nil(t, e.InstructionError().CustomError())

	var err error = e
	assert.True(t, errors.Is(err, InstructionErrorMissingRequiredSignature))

	generic := InstructionError{Err: errors.New("unexpected")}
	assert.Equal(t, InstructionErrorGenericError, generic.ErrorKey())
}

func TestTransactionError_Key(t *testing.T) {
	e := NewTransactionError(TransactionErrorAlreadyProcessed)
	assert.Equal(t, TransactionErrorAlreadyProcessed, e.ErrorKey())
	assert.Nil(t, e.InstructionError())
	assert.Equal(t, "AlreadyProcessed", e.Error())

	var err error = e
	assert.True(t, errors.Is(err, TransactionErrorAlreadyProcessed))

	e = NewTransactionErrorWithCause(TransactionErrorInsufficientFundsForFee, errors.New("balance 0"))
	assert.Equal(t, "InsufficientFundsForFee: balance 0", e.Error())

	var txErr *TransactionError
	require.True(t, errors.As(errors.Wrap(e, "outer"), &txErr))
	assert.Equal(t, TransactionErrorInsufficientFundsForFee, txErr.ErrorKey())
}
