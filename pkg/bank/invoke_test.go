package bank

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/testutil"
)

var vaultSeed = []byte("vault")

const (
	cmdCreateVault byte = iota
	cmdCreateVaultWrongSeeds
	cmdWriteData
	cmdMintLamports
	cmdRecurse
	cmdCloseVault
	cmdEscalateWritable
)

const vaultSize = 8

// vaultProgram exercises delegated calls and the per frame account rules.
type vaultProgram struct {
	id ed25519.PublicKey
}

func (p *vaultProgram) Process(ctx *InvokeContext) error {
	data := ctx.Data()
	if len(data) == 0 {
		return solana.InstructionErrorInvalidInstructionData
	}

	switch data[0] {
	case cmdCreateVault, cmdCreateVaultWrongSeeds:
		payer, err := ctx.Account(0)
		if err != nil {
			return err
		}
		vault, err := ctx.Account(1)
		if err != nil {
			return err
		}

		seeds := [][]byte{vaultSeed, {data[1]}}
		if data[0] == cmdCreateVaultWrongSeeds {
			_, bump, err := solana.FindProgramAddressAndBump(p.id, []byte("other"))
			if err != nil {
				return err
			}
			seeds = [][]byte{[]byte("other"), {bump}}
		}

		rent := ctx.Rent()
		return ctx.InvokeSigned(
			system.CreateAccount(payer.Key, vault.Key, p.id, rent.MinimumBalance(vaultSize), vaultSize),
			seeds,
		)
	case cmdWriteData:
		target, err := ctx.Account(0)
		if err != nil {
			return err
		}
		target.Data = append([]byte{}, data[1:]...)
		return nil
	case cmdMintLamports:
		target, err := ctx.Account(0)
		if err != nil {
			return err
		}
		target.Lamports++
		return nil
	case cmdRecurse:
		return ctx.Invoke(solana.NewInstruction(p.id, []byte{cmdRecurse}, solana.NewReadonlyAccountMeta(p.id, false)))
	case cmdCloseVault:
		vault, err := ctx.Account(0)
		if err != nil {
			return err
		}
		destination, err := ctx.Account(1)
		if err != nil {
			return err
		}
		return MoveLamports(vault, destination, vault.Lamports)
	case cmdEscalateWritable:
		target, err := ctx.Account(0)
		if err != nil {
			return err
		}
		return ctx.Invoke(solana.NewInstruction(p.id, []byte{cmdWriteData, 1}, solana.NewAccountMeta(target.Key, false)))
	default:
		return solana.InstructionErrorInvalidInstructionData
	}
}

type vaultEnv struct {
	*testEnv

	programID ed25519.PublicKey
	payer     ed25519.PrivateKey
	payerKey  ed25519.PublicKey
	vault     ed25519.PublicKey
	bump      uint8
}

func setupVault(t *testing.T) *vaultEnv {
	env := setup(t, defaultTestOverrides())

	programID := testutil.GenerateSolanaKeys(t, 1)[0]
	require.NoError(t, env.bank.RegisterProgram(env.ctx, programID, &vaultProgram{id: programID}))

	vault, bump, err := solana.FindProgramAddressAndBump(programID, vaultSeed)
	require.NoError(t, err)

	payer := env.fundedKeypair(t, 10*lamportsPerSol)

	return &vaultEnv{
		testEnv:   env,
		programID: programID,
		payer:     payer,
		payerKey:  payer.Public().(ed25519.PublicKey),
		vault:     vault,
		bump:      bump,
	}
}

func (e *vaultEnv) createVaultInstruction(cmd byte) solana.Instruction {
	return solana.NewInstruction(
		e.programID,
		[]byte{cmd, e.bump},
		solana.NewAccountMeta(e.payerKey, true),
		solana.NewAccountMeta(e.vault, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
	)
}

func TestInvokeSigned_CreatesDerivedAccount(t *testing.T) {
	env := setupVault(t)

	result, err := env.send(t, env.payer, nil, env.createVaultInstruction(cmdCreateVault))
	require.NoError(t, err)
	assert.Contains(t, result.Logs[1], "invoke [2]")

	vault, err := env.bank.GetAccount(env.ctx, env.vault)
	require.NoError(t, err)
	assert.EqualValues(t, env.programID, vault.Owner)
	assert.Len(t, vault.Data, vaultSize)

	rent := env.bank.Rent(env.ctx)
	assert.EqualValues(t, rent.MinimumBalance(vaultSize), vault.Lamports)
	assert.EqualValues(t, 10*lamportsPerSol-rent.MinimumBalance(vaultSize)-testLamportsPerSignature, env.balance(t, env.payerKey))

	// The owning program can write its data and close it
	_, err = env.send(t, env.payer, nil, solana.NewInstruction(
		env.programID,
		[]byte{cmdWriteData, 1, 2, 3, 4, 5, 6, 7, 8},
		solana.NewAccountMeta(env.vault, false),
	))
	require.NoError(t, err)

	vault, err = env.bank.GetAccount(env.ctx, env.vault)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, vault.Data)

	_, err = env.send(t, env.payer, nil, solana.NewInstruction(
		env.programID,
		[]byte{cmdCloseVault},
		solana.NewAccountMeta(env.vault, false),
		solana.NewAccountMeta(env.payerKey, true),
	))
	require.NoError(t, err)

	_, err = env.bank.GetAccount(env.ctx, env.vault)
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestInvokeSigned_WrongSeedsCannotSign(t *testing.T) {
	env := setupVault(t)

	_, err := env.send(t, env.payer, nil, env.createVaultInstruction(cmdCreateVaultWrongSeeds))
	requireTransactionError(t, err, solana.TransactionErrorInstructionError)
	assert.True(t, errors.Is(err, solana.InstructionErrorPrivilegeEscalation))

	_, err = env.bank.GetAccount(env.ctx, env.vault)
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestInvoke_MissingAccount(t *testing.T) {
	env := setupVault(t)

	// The system program isn't passed, so the delegated call can't be made
	_, err := env.send(t, env.payer, nil, solana.NewInstruction(
		env.programID,
		[]byte{cmdCreateVault, env.bump},
		solana.NewAccountMeta(env.payerKey, true),
		solana.NewAccountMeta(env.vault, false),
	))
	requireTransactionError(t, err, solana.TransactionErrorInstructionError)
	assert.True(t, errors.Is(err, solana.InstructionErrorMissingAccount))
}

func TestInvoke_CallDepth(t *testing.T) {
	env := setupVault(t)

	result, err := env.send(t, env.payer, nil, solana.NewInstruction(
		env.programID,
		[]byte{cmdRecurse},
		solana.NewReadonlyAccountMeta(env.programID, false),
	))
	requireTransactionError(t, err, solana.TransactionErrorInstructionError)
	assert.True(t, errors.Is(err, solana.InstructionErrorCallDepth))
	assert.Contains(t, result.Logs[3], "invoke [4]")
}

func TestInvoke_WritableEscalation(t *testing.T) {
	env := setupVault(t)

	_, err := env.send(t, env.payer, nil, env.createVaultInstruction(cmdCreateVault))
	require.NoError(t, err)

	_, err = env.send(t, env.payer, nil, solana.NewInstruction(
		env.programID,
		[]byte{cmdEscalateWritable},
		solana.NewReadonlyAccountMeta(env.vault, false),
		solana.NewReadonlyAccountMeta(env.programID, false),
	))
	requireTransactionError(t, err, solana.TransactionErrorInstructionError)
	assert.True(t, errors.Is(err, solana.InstructionErrorPrivilegeEscalation))
}

func TestFrameRules(t *testing.T) {
	env := setupVault(t)

	_, err := env.send(t, env.payer, nil, env.createVaultInstruction(cmdCreateVault))
	require.NoError(t, err)

	other := env.fundedKeypair(t, lamportsPerSol)
	otherKey := other.Public().(ed25519.PublicKey)

	for _, tc := range []struct {
		name        string
		instruction solana.Instruction
		expected    error
	}{
		{
			name:        "data of an account owned by another program",
			instruction: solana.NewInstruction(env.programID, []byte{cmdWriteData, 1}, solana.NewAccountMeta(otherKey, false)),
			expected:    solana.InstructionErrorExternalAccountDataModified,
		},
		{
			name:        "readonly data",
			instruction: solana.NewInstruction(env.programID, []byte{cmdWriteData, 9, 9}, solana.NewReadonlyAccountMeta(env.vault, false)),
			expected:    solana.InstructionErrorReadonlyDataModified,
		},
		{
			name:        "lamports out of nothing",
			instruction: solana.NewInstruction(env.programID, []byte{cmdMintLamports}, solana.NewAccountMeta(env.vault, false)),
			expected:    solana.InstructionErrorUnbalancedInstruction,
		},
		{
			name:        "spending from another program's account",
			instruction: solana.NewInstruction(env.programID, []byte{cmdCloseVault}, solana.NewAccountMeta(otherKey, false), solana.NewAccountMeta(env.vault, false)),
			expected:    solana.InstructionErrorExternalAccountLamportSpend,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.send(t, env.payer, nil, tc.instruction)
			requireTransactionError(t, err, solana.TransactionErrorInstructionError)
			assert.True(t, errors.Is(err, tc.expected), err.Error())
		})
	}

	assert.EqualValues(t, lamportsPerSol, env.balance(t, otherKey))
}

func TestVerifyAccountChange(t *testing.T) {
	program := testutil.GenerateSolanaKeys(t, 1)[0]
	other := testutil.GenerateSolanaKeys(t, 1)[0]

	owned := &Account{Lamports: 10, Data: []byte{1, 2}, Owner: program}

	zeroed := owned.Clone()
	zeroed.Data = []byte{0, 0}
	zeroed.Owner = other
	assert.NoError(t, verifyAccountChange(program, owned, zeroed, true))

	notZeroed := owned.Clone()
	notZeroed.Owner = other
	assert.Equal(t, solana.InstructionErrorModifiedProgramID, verifyAccountChange(program, owned, notZeroed, true))
	assert.Equal(t, solana.InstructionErrorModifiedProgramID, verifyAccountChange(program, owned, zeroed, false))
	assert.Equal(t, solana.InstructionErrorModifiedProgramID, verifyAccountChange(other, owned, zeroed, true))

	executable := &Account{Lamports: 1, Owner: NativeLoader, Executable: true}
	drained := executable.Clone()
	drained.Lamports = 0
	assert.Equal(t, solana.InstructionErrorExecutableLamportChange, verifyAccountChange(NativeLoader, executable, drained, true))

	flipped := executable.Clone()
	flipped.Executable = false
	assert.Equal(t, solana.InstructionErrorExecutableModified, verifyAccountChange(NativeLoader, executable, flipped, true))

	credited := owned.Clone()
	credited.Lamports++
	assert.NoError(t, verifyAccountChange(other, owned, credited, true))
	assert.Equal(t, solana.InstructionErrorReadonlyLamportChange, verifyAccountChange(other, owned, credited, false))
}

func TestMoveLamports(t *testing.T) {
	from := &AccountInfo{Account: &Account{Lamports: 10}}
	to := &AccountInfo{Account: &Account{Lamports: ^uint64(0) - 5}}

	assert.Equal(t, solana.InstructionErrorArithmeticOverflow, MoveLamports(from, to, 10))
	assert.Equal(t, solana.InstructionErrorInsufficientFunds, MoveLamports(from, to, 11))

	to.Lamports = 0
	require.NoError(t, MoveLamports(from, to, 4))
	assert.EqualValues(t, 6, from.Lamports)
	assert.EqualValues(t, 4, to.Lamports)
}
