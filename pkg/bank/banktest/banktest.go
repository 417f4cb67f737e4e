package banktest

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/bank"
	"github.com/code-payments/reward-center/pkg/bank/accounts/memory"
	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/token"
	"github.com/code-payments/reward-center/pkg/solana/tokenmetadata"
	"github.com/code-payments/reward-center/pkg/testutil"
)

const (
	LamportsPerSignature = 5000
	LamportsPerSol       = 1_000_000_000
)

// Env is an in memory ledger for running programs end to end in tests.
type Env struct {
	Ctx  context.Context
	Bank *bank.Bank
}

func NewEnv(t *testing.T) *Env {
	ctx := context.Background()

	b, err := bank.New(ctx, memory.New(), bank.WithTestConfigs())
	require.NoError(t, err)

	return &Env{
		Ctx:  ctx,
		Bank: b,
	}
}

func (e *Env) RegisterProgram(t *testing.T, id ed25519.PublicKey, program bank.Program) {
	require.NoError(t, e.Bank.RegisterProgram(e.Ctx, id, program))
}

func (e *Env) FundedKeypair(t *testing.T, lamports uint64) ed25519.PrivateKey {
	key := testutil.GenerateSolanaKeypair(t)
	require.NoError(t, e.Bank.Airdrop(e.Ctx, testutil.Public(key), lamports))
	return key
}

// Send signs a transaction paid for by payer and processes it against the
// latest blockhash.
func (e *Env) Send(t *testing.T, payer ed25519.PrivateKey, signers []ed25519.PrivateKey, instructions ...solana.Instruction) (*bank.Result, error) {
	txn := solana.NewTransaction(testutil.Public(payer), instructions...)
	txn.SetBlockhash(e.Bank.LatestBlockhash())
	require.NoError(t, txn.Sign(append([]ed25519.PrivateKey{payer}, signers...)...))
	return e.Bank.ProcessTransaction(e.Ctx, &txn)
}

func (e *Env) Balance(t *testing.T, address ed25519.PublicKey) uint64 {
	account, err := e.Bank.GetAccount(e.Ctx, address)
	if err == bank.ErrAccountNotFound {
		return 0
	}
	require.NoError(t, err)
	return account.Lamports
}

// Account returns the account at address, failing the test if it doesn't exist.
func (e *Env) Account(t *testing.T, address ed25519.PublicKey) *bank.Account {
	account, err := e.Bank.GetAccount(e.Ctx, address)
	require.NoError(t, err)
	return account
}

func (e *Env) RequireNotFound(t *testing.T, address ed25519.PublicKey) {
	_, err := e.Bank.GetAccount(e.Ctx, address)
	assert.Equal(t, bank.ErrAccountNotFound, err)
}

// CreateMint injects an initialized token mint.
func (e *Env) CreateMint(t *testing.T, decimals uint8) ed25519.PublicKey {
	address := testutil.GenerateSolanaKeys(t, 1)[0]
	mint := token.Mint{
		Supply:        1,
		Decimals:      decimals,
		IsInitialized: true,
	}

	e.setRentExempt(t, address, token.ProgramKey, mint.Marshal())
	return address
}

// CreateTokenAccount injects the associated token account of owner for mint
// holding amount tokens.
func (e *Env) CreateTokenAccount(t *testing.T, owner, mint ed25519.PublicKey, amount uint64) ed25519.PublicKey {
	address, err := token.GetAssociatedAccount(owner, mint)
	require.NoError(t, err)

	account := token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.AccountStateInitialized,
	}

	e.setRentExempt(t, address, token.ProgramKey, account.Marshal())
	return address
}

// CreateMetadata injects a metadata account for mint at its derived address.
func (e *Env) CreateMetadata(t *testing.T, mint, updateAuthority ed25519.PublicKey) ed25519.PublicKey {
	address, _, err := tokenmetadata.GetMetadataAddress(&tokenmetadata.GetMetadataAddressArgs{
		Mint: mint,
	})
	require.NoError(t, err)

	metadata := tokenmetadata.MetadataAccount{
		Key:             tokenmetadata.KeyMetadataV1,
		UpdateAuthority: updateAuthority,
		Mint:            mint,
	}

	e.setRentExempt(t, address, tokenmetadata.PROGRAM_ID, metadata.Marshal())
	return address
}

func (e *Env) setRentExempt(t *testing.T, address, owner ed25519.PublicKey, data []byte) {
	rent := e.Bank.Rent(e.Ctx)
	require.NoError(t, e.Bank.SetAccount(e.Ctx, address, &bank.Account{
		Lamports: rent.MinimumBalance(uint64(len(data))),
		Data:     data,
		Owner:    owner,
	}))
}

// RequireInstructionError asserts err is a failed instruction whose cause
// matches expected.
func RequireInstructionError(t *testing.T, err error, expected error) *solana.TransactionError {
	require.Error(t, err)

	var txnErr *solana.TransactionError
	require.True(t, errors.As(err, &txnErr), err.Error())
	assert.Equal(t, solana.TransactionErrorInstructionError, txnErr.ErrorKey())
	assert.True(t, errors.Is(err, expected), "expected %v, got %v", expected, err)
	return txnErr
}
