package solana

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransactionErrorKey is the string key reported for a failed transaction.
//
// Source: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
type TransactionErrorKey string

const (
	TransactionErrorAccountInUse               TransactionErrorKey = "AccountInUse"               // An account is already being processed in another transaction in a way that does not support parallelism
	TransactionErrorAccountLoadedTwice         TransactionErrorKey = "AccountLoadedTwice"         // A `Pubkey` appears twice in the transaction's `account_keys`
	TransactionErrorAccountNotFound            TransactionErrorKey = "AccountNotFound"            // Attempt to debit an account but found no record of a prior credit.
	TransactionErrorProgramAccountNotFound     TransactionErrorKey = "ProgramAccountNotFound"     // Attempt to load a program that does not exist
	TransactionErrorInsufficientFundsForFee    TransactionErrorKey = "InsufficientFundsForFee"    // The fee payer does not have sufficient balance to pay the fee
	TransactionErrorInvalidAccountForFee       TransactionErrorKey = "InvalidAccountForFee"       // This account may not be used to pay transaction fees
	TransactionErrorAlreadyProcessed           TransactionErrorKey = "AlreadyProcessed"           // The bank has seen this transaction before
	TransactionErrorBlockhashNotFound          TransactionErrorKey = "BlockhashNotFound"          // The bank has not seen the given `recent_blockhash`
	TransactionErrorInstructionError           TransactionErrorKey = "InstructionError"           // An error occurred while processing an instruction
	TransactionErrorMissingSignatureForFee     TransactionErrorKey = "MissingSignatureForFee"     // Transaction requires a fee but has no signature present
	TransactionErrorInvalidAccountIndex        TransactionErrorKey = "InvalidAccountIndex"        // Transaction contains an invalid account reference
	TransactionErrorSignatureFailure           TransactionErrorKey = "SignatureFailure"           // Transaction did not pass signature verification
	TransactionErrorInvalidProgramForExecution TransactionErrorKey = "InvalidProgramForExecution" // This program may not be used for executing instructions
	TransactionErrorSanitizeFailure            TransactionErrorKey = "SanitizeFailure"            // Transaction failed to sanitize accounts offsets correctly
	TransactionErrorInsufficientFundsForRent   TransactionErrorKey = "InsufficientFundsForRent"   // Transaction results in an account with insufficient funds for rent
)

func (k TransactionErrorKey) Error() string {
	return string(k)
}

// InstructionErrorKey is the string key reported for a failed instruction.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorGenericError                InstructionErrorKey = "GenericError"
	InstructionErrorInvalidArgument             InstructionErrorKey = "InvalidArgument"
	InstructionErrorInvalidInstructionData      InstructionErrorKey = "InvalidInstructionData"
	InstructionErrorInvalidAccountData          InstructionErrorKey = "InvalidAccountData"
	InstructionErrorAccountDataTooSmall         InstructionErrorKey = "AccountDataTooSmall"
	InstructionErrorInsufficientFunds           InstructionErrorKey = "InsufficientFunds"
	InstructionErrorIncorrectProgramID          InstructionErrorKey = "IncorrectProgramId"
	InstructionErrorMissingRequiredSignature    InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorAccountAlreadyInitialized   InstructionErrorKey = "AccountAlreadyInitialized"
	InstructionErrorUninitializedAccount        InstructionErrorKey = "UninitializedAccount"
	InstructionErrorUnbalancedInstruction       InstructionErrorKey = "UnbalancedInstruction"
	InstructionErrorModifiedProgramID           InstructionErrorKey = "ModifiedProgramId"
	InstructionErrorExternalAccountLamportSpend InstructionErrorKey = "ExternalAccountLamportSpend"
	InstructionErrorExternalAccountDataModified InstructionErrorKey = "ExternalAccountDataModified"
	InstructionErrorReadonlyLamportChange       InstructionErrorKey = "ReadonlyLamportChange"
	InstructionErrorReadonlyDataModified        InstructionErrorKey = "ReadonlyDataModified"
	InstructionErrorExecutableModified          InstructionErrorKey = "ExecutableModified"
	InstructionErrorNotEnoughAccountKeys        InstructionErrorKey = "NotEnoughAccountKeys"
	InstructionErrorAccountNotExecutable        InstructionErrorKey = "AccountNotExecutable"
	InstructionErrorCustom                      InstructionErrorKey = "Custom"
	InstructionErrorExecutableDataModified      InstructionErrorKey = "ExecutableDataModified"
	InstructionErrorExecutableLamportChange     InstructionErrorKey = "ExecutableLamportChange"
	InstructionErrorUnsupportedProgramID        InstructionErrorKey = "UnsupportedProgramId"
	InstructionErrorCallDepth                   InstructionErrorKey = "CallDepth"
	InstructionErrorMissingAccount              InstructionErrorKey = "MissingAccount"
	InstructionErrorReentrancyNotAllowed        InstructionErrorKey = "ReentrancyNotAllowed"
	InstructionErrorPrivilegeEscalation         InstructionErrorKey = "PrivilegeEscalation"
	InstructionErrorInvalidSeeds                InstructionErrorKey = "InvalidSeeds"
	InstructionErrorInvalidRealloc              InstructionErrorKey = "InvalidRealloc"
	InstructionErrorArithmeticOverflow          InstructionErrorKey = "ArithmeticOverflow"
	InstructionErrorIllegalOwner                InstructionErrorKey = "IllegalOwner"
)

func (k InstructionErrorKey) Error() string {
	return string(k)
}

// ProgramError is implemented by the typed error codes of individual programs,
// which surface to callers as custom instruction errors.
type ProgramError interface {
	error
	Code() uint32
}

// CustomError is the numerical error returned by a non-system program.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", uint32(c))
}

func (c CustomError) Code() uint32 {
	return uint32(c)
}

// InstructionError indicates an instruction returned an error in a transaction.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) Unwrap() error {
	return i.Err
}

func (i InstructionError) ErrorKey() InstructionErrorKey {
	if i.Err == nil {
		return ""
	}

	if i.CustomError() != nil {
		return InstructionErrorCustom
	}

	var key InstructionErrorKey
	if errors.As(i.Err, &key) {
		return key
	}

	return InstructionErrorGenericError
}

// CustomError returns the program defined error code, if the instruction failed
// with one.
func (i InstructionError) CustomError() *CustomError {
	var pe ProgramError
	if !errors.As(i.Err, &pe) {
		return nil
	}

	ce := CustomError(pe.Code())
	return &ce
}

// TransactionError contains the transaction error details.
type TransactionError struct {
	key              TransactionErrorKey
	instructionError *InstructionError
	cause            error
}

func NewTransactionError(key TransactionErrorKey) *TransactionError {
	return &TransactionError{
		key: key,
	}
}

// NewTransactionErrorWithCause is NewTransactionError with additional context
// about what triggered the failure.
func NewTransactionErrorWithCause(key TransactionErrorKey, cause error) *TransactionError {
	return &TransactionError{
		key:   key,
		cause: cause,
	}
}

func TransactionErrorFromInstructionError(err *InstructionError) *TransactionError {
	return &TransactionError{
		key:              TransactionErrorInstructionError,
		instructionError: err,
	}
}

func (t TransactionError) Error() string {
	if t.instructionError != nil {
		return t.instructionError.Error()
	}

	if t.cause != nil {
		return fmt.Sprintf("%s: %v", t.key, t.cause)
	}

	return string(t.key)
}

func (t TransactionError) ErrorKey() TransactionErrorKey {
	return t.key
}

func (t TransactionError) InstructionError() *InstructionError {
	return t.instructionError
}

// Unwrap exposes the instruction error when present so that program error
// codes can be matched with errors.Is, otherwise the transaction error key.
func (t TransactionError) Unwrap() error {
	if t.instructionError != nil {
		return *t.instructionError
	}
	return t.key
}
