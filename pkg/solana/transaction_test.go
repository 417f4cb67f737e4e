package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generated from the Solana SDK transaction test vector, with the keypair
// corrected so the public key matches the seed.
//
// Reference: https://github.com/solana-labs/solana/blob/14339dec0a960e8161d1165b6a8e5cfb73e78f23/sdk/src/transaction.rs#L523
const rustGeneratedAdjusted = "ATMfBMZ8phHEheLph8K9TJhRKhnE4qNZvWiXdUdJRmlTCRsQjWmW2CkQJeRHBCcsqFm2gynjL40M9mTe0Dxp4QIBAAEDfEya6wnC7f3Cv53qnOEywwIJ928rIdqAlfXYI1adXroBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

func TestTransaction_CrossImpl(t *testing.T) {
	keypair := ed25519.NewKeyFromSeed([]byte{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75})
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))
	assert.Equal(t, rustGeneratedAdjusted, base64.StdEncoding.EncodeToString(tx.Marshal()))

	require.NoError(t, tx.Sanitize())
	require.NoError(t, tx.VerifySignatures())
}

func TestTransaction_MarshalRoundTrip(t *testing.T) {
	keys := generateKeys(t, 3)

	tx := NewTransaction(
		public(keys[0]),
		NewInstruction(
			public(keys[1]),
			[]byte{1, 2, 3},
			NewAccountMeta(public(keys[2]), true),
		),
	)
	tx.SetBlockhash(Blockhash{1, 2, 3})
	require.NoError(t, tx.Sign(keys[0], keys[2]))

	var rtt Transaction
	require.NoError(t, rtt.Unmarshal(tx.Marshal()))
	assert.Equal(t, tx.Marshal(), rtt.Marshal())
	assert.Equal(t, tx.Signature(), rtt.Signature())
	require.NoError(t, rtt.VerifySignatures())
}

func TestTransaction_SingleInstruction(t *testing.T) {
	keys := generateKeys(t, 2)
	payer := keys[0]
	program := keys[1]

	keys = generateKeys(t, 4)
	data := []byte{1, 2, 3}

	tx := NewTransaction(
		public(payer),
		NewInstruction(
			public(program),
			data,
			NewReadonlyAccountMeta(public(keys[0]), true),
			NewReadonlyAccountMeta(public(keys[1]), false),
			NewAccountMeta(public(keys[2]), false),
			NewAccountMeta(public(keys[3]), true),
		),
	)

	// Intentionally sign out of order to ensure ordering is fixed.
	require.NoError(t, tx.Sign(keys[0], keys[3], payer))

	require.Len(t, tx.Signatures, 3)
	require.Len(t, tx.Message.Accounts, 6)
	assert.EqualValues(t, 3, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, tx.Message.Header.NumReadOnly)

	assert.Equal(t, public(payer), tx.Message.Accounts[0])
	assert.Equal(t, public(keys[3]), tx.Message.Accounts[1])
	assert.Equal(t, public(keys[0]), tx.Message.Accounts[2])
	assert.Equal(t, public(keys[2]), tx.Message.Accounts[3])
	assert.Equal(t, public(keys[1]), tx.Message.Accounts[4])
	assert.Equal(t, public(program), tx.Message.Accounts[5])

	assert.True(t, tx.Message.IsWritable(0))
	assert.True(t, tx.Message.IsWritable(1))
	assert.False(t, tx.Message.IsWritable(2))
	assert.True(t, tx.Message.IsWritable(3))
	assert.False(t, tx.Message.IsWritable(4))
	assert.False(t, tx.Message.IsWritable(5))
	assert.True(t, tx.Message.IsSigner(2))
	assert.False(t, tx.Message.IsSigner(3))

	assert.Equal(t, byte(5), tx.Message.Instructions[0].ProgramIndex)
	assert.Equal(t, data, tx.Message.Instructions[0].Data)
	assert.Equal(t, []byte{2, 4, 3, 1}, tx.Message.Instructions[0].Accounts)

	require.NoError(t, tx.VerifySignatures())

	decompiled, err := tx.Message.DecompileInstructions()
	require.NoError(t, err)
	require.Len(t, decompiled, 1)
	assert.Equal(t, public(program), decompiled[0].Program)
	assert.Equal(t, data, decompiled[0].Data)
	require.Len(t, decompiled[0].Accounts, 4)
	assert.Equal(t, public(keys[0]), decompiled[0].Accounts[0].PublicKey)
	assert.True(t, decompiled[0].Accounts[0].IsSigner)
	assert.False(t, decompiled[0].Accounts[0].IsWritable)
	assert.Equal(t, public(keys[2]), decompiled[0].Accounts[2].PublicKey)
	assert.False(t, decompiled[0].Accounts[2].IsSigner)
	assert.True(t, decompiled[0].Accounts[2].IsWritable)
}

func TestTransaction_VerifySignatures(t *testing.T) {
	keys := generateKeys(t, 3)

	tx := NewTransaction(
		public(keys[0]),
		NewInstruction(
			public(keys[1]),
			nil,
			NewAccountMeta(public(keys[2]), true),
		),
	)

	// Only the payer signs
	require.NoError(t, tx.Sign(keys[0]))
	assert.True(t, errors.Is(tx.VerifySignatures(), ErrSignatureFailure))

	require.NoError(t, tx.Sign(keys[2]))
	require.NoError(t, tx.VerifySignatures())

	// Tampering with the message invalidates every signature
	tx.Message.Instructions[0].Data = []byte{1}
	assert.True(t, errors.Is(tx.VerifySignatures(), ErrSignatureFailure))

	other := generateKeys(t, 1)[0]
	assert.Error(t, tx.Sign(other))
}

func TestTransaction_Sanitize(t *testing.T) {
	keys := generateKeys(t, 2)

	newTx := func() Transaction {
		return NewTransaction(
			public(keys[0]),
			NewInstruction(
				public(keys[1]),
				nil,
				NewAccountMeta(public(keys[0]), true),
			),
		)
	}

	tx := newTx()
	require.NoError(t, tx.Sanitize())

	tx = newTx()
	tx.Message.Instructions[0].ProgramIndex = 2
	assert.True(t, errors.Is(tx.Sanitize(), ErrInvalidAccountIndex))

	tx = newTx()
	tx.Message.Instructions[0].ProgramIndex = 0
	assert.True(t, errors.Is(tx.Sanitize(), ErrInvalidAccountIndex))

	tx = newTx()
	tx.Message.Instructions[0].Accounts = []byte{2}
	assert.True(t, errors.Is(tx.Sanitize(), ErrInvalidAccountIndex))

	tx = newTx()
	tx.Signatures = nil
	assert.True(t, errors.Is(tx.Sanitize(), ErrMissingSignatures))

	tx = newTx()
	tx.Message.Accounts[1] = tx.Message.Accounts[0]
	assert.True(t, errors.Is(tx.Sanitize(), ErrTransactionMalformed))

	tx = newTx()
	tx.Message.Header.NumReadonlySigned = 1
	assert.True(t, errors.Is(tx.Sanitize(), ErrTransactionMalformed))
}

func TestMessage_UnmarshalRejections(t *testing.T) {
	keys := generateKeys(t, 2)

	tx := NewTransaction(
		public(keys[0]),
		NewInstruction(public(keys[1]), []byte{1}, NewAccountMeta(public(keys[0]), true)),
	)
	encoded := tx.Message.Marshal()

	var m Message
	require.NoError(t, m.Unmarshal(encoded))
	assert.Equal(t, encoded, m.Marshal())

	versioned := append([]byte{0x80}, encoded...)
	assert.True(t, errors.Is(m.Unmarshal(versioned), ErrVersionedMessage))

	trailing := append(append([]byte{}, encoded...), 0)
	assert.True(t, errors.Is(m.Unmarshal(trailing), ErrTrailingBytes))

	noPayer := append([]byte{}, encoded...)
	noPayer[0] = 0
	assert.True(t, errors.Is(m.Unmarshal(noPayer), ErrTransactionMalformed))

	readonlyPayer := append([]byte{}, encoded...)
	readonlyPayer[1] = 1
	assert.True(t, errors.Is(m.Unmarshal(readonlyPayer), ErrTransactionMalformed))

	assert.Error(t, m.Unmarshal(encoded[:len(encoded)-1]))

	var decoded Transaction
	assert.True(t, errors.Is(decoded.Unmarshal(append([]byte{0}, versioned...)), ErrVersionedMessage))
}

func generateKeys(t *testing.T, amount int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, amount)

	for i := 0; i < amount; i++ {
		_, priv, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		keys[i] = priv
	}

	return keys
}

func public(priv ed25519.PrivateKey) ed25519.PublicKey {
	return priv.Public().(ed25519.PublicKey)
}
